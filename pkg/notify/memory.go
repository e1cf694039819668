package notify

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryBroadcaster delivers notifications to in-process subscribers. A
// notification that does not fit a subscriber's buffer is dropped for that
// subscriber only. All methods are safe for concurrent use.
type MemoryBroadcaster struct {
	subs    map[*subscription]struct{}
	buffer  int
	dropped atomic.Uint64
	closed  bool
	mu      sync.RWMutex
}

// NewMemoryBroadcaster creates a broadcaster whose subscribers buffer up to
// buffer notifications; the minimum is 1.
func NewMemoryBroadcaster(buffer int) *MemoryBroadcaster {
	return &MemoryBroadcaster{
		subs:   make(map[*subscription]struct{}),
		buffer: max(buffer, 1),
	}
}

// Subscribe registers a subscription that ends with ctx or Close.
func (b *MemoryBroadcaster) Subscribe(ctx context.Context) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := newSubscription(b.buffer)
	b.subs[sub] = struct{}{}
	sub.stop = func() { b.remove(sub) }

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				_ = sub.Close()
			case <-sub.done:
			}
		}()
	}
	return sub, nil
}

// Publish delivers n to every subscriber without blocking.
func (b *MemoryBroadcaster) Publish(_ context.Context, n Notification) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	for sub := range b.subs {
		if !sub.send(n) {
			b.dropped.Add(1)
		}
	}
	return nil
}

// Dropped returns how many deliveries were skipped because a subscriber's
// buffer was full.
func (b *MemoryBroadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// Subscribers returns the number of active subscriptions.
func (b *MemoryBroadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription. Later calls to Publish and Subscribe return
// ErrClosed.
func (b *MemoryBroadcaster) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*subscription, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	clear(b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	return nil
}

func (b *MemoryBroadcaster) remove(sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, sub)
}
