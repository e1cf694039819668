package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/lukas4311/WpfValidation/pkg/logger"
)

// RedisBroadcaster relays notifications through a Redis pub/sub channel.
// Every subscriber, in this process or another one, receives every
// notification published on the channel while it is subscribed.
type RedisBroadcaster struct {
	client  redis.UniversalClient
	channel string
	buffer  int
	logger  *slog.Logger

	mu     sync.Mutex
	subs   map[*subscription]struct{}
	closed bool
}

// RedisOption configures a RedisBroadcaster.
type RedisOption func(*RedisBroadcaster)

// WithRedisBuffer sets the per-subscriber buffer; the minimum is 1.
func WithRedisBuffer(n int) RedisOption {
	return func(b *RedisBroadcaster) { b.buffer = max(n, 1) }
}

// WithRedisLogger sets the logger for relay errors.
func WithRedisLogger(l *slog.Logger) RedisOption {
	return func(b *RedisBroadcaster) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewRedisBroadcaster relays notifications over the Redis pub/sub channel.
func NewRedisBroadcaster(client redis.UniversalClient, channel string, opts ...RedisOption) (*RedisBroadcaster, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}
	b := &RedisBroadcaster{
		client:  client,
		channel: channel,
		buffer:  64,
		logger:  logger.Discard(),
		subs:    make(map[*subscription]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Publish encodes n as JSON and publishes it on the channel.
func (b *RedisBroadcaster) Publish(ctx context.Context, n Notification) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notify: encode notification: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("notify: publish to %s: %w", b.channel, err)
	}
	return nil
}

// Subscribe opens a Redis subscription and returns once the server confirmed
// it. Messages that cannot be decoded are logged and skipped.
func (b *RedisBroadcaster) Subscribe(ctx context.Context) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	ps := b.client.Subscribe(ctx, b.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("notify: subscribe to %s: %w", b.channel, err)
	}

	sub := newSubscription(b.buffer)
	done := make(chan struct{})
	var once sync.Once
	sub.stop = func() {
		once.Do(func() {
			close(done)
			_ = ps.Close()
			b.mu.Lock()
			delete(b.subs, sub)
			b.mu.Unlock()
		})
	}
	b.subs[sub] = struct{}{}

	go b.pump(ctx, ps, sub, done)
	return sub, nil
}

func (b *RedisBroadcaster) pump(ctx context.Context, ps *redis.PubSub, sub *subscription, done <-chan struct{}) {
	defer func() { _ = sub.Close() }()

	messages := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var n Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				b.logger.WarnContext(ctx, "dropping undecodable notification",
					slog.String("channel", msg.Channel), logger.Error(err))
				continue
			}
			sub.send(n)
		}
	}
}

// Close ends every subscription. The client stays open; it belongs to the caller.
func (b *RedisBroadcaster) Close() error {
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
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	return nil
}
