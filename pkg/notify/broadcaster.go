package notify

import (
	"context"
	"sync"
)

// Subscription receives notifications from a Broadcaster.
type Subscription interface {
	// C returns the receive channel. It is closed when the subscription ends.
	C() <-chan Notification
	// Close ends the subscription. It is idempotent.
	Close() error
}

// Broadcaster fans notifications out to subscribers.
type Broadcaster interface {
	// Publish delivers n to the current subscribers without blocking on slow ones.
	Publish(ctx context.Context, n Notification) error
	// Subscribe registers a subscriber that lives until ctx is done or the
	// subscription is closed.
	Subscribe(ctx context.Context) (Subscription, error)
	Close() error
}

type subscription struct {
	ch     chan Notification
	done   chan struct{}
	closed bool
	mu     sync.RWMutex
	stop   func()
}

func newSubscription(buffer int) *subscription {
	return &subscription{ch: make(chan Notification, buffer), done: make(chan struct{})}
}

func (s *subscription) C() <-chan Notification {
	return s.ch
}

func (s *subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	close(s.done)
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	return nil
}

// send delivers n unless the buffer is full or the subscription is closed.
func (s *subscription) send(n Notification) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- n:
		return true
	default:
		return false
	}
}
