package entity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/lukas4311/WpfValidation/pkg/notify"
	"github.com/lukas4311/WpfValidation/pkg/validation"
)

// Option configures an Entity.
type Option func(*settings)

type settings struct {
	id          uuid.UUID
	ctx         context.Context
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *validation.Metrics
	translator  validation.Translator
	lang        string
	broadcaster notify.Broadcaster
	feedBuffer  int
	onFault     func(ctx context.Context, err error)
	clock       func() time.Time
}

// WithID sets the instance identifier instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(s *settings) { s.id = id }
}

// WithContext sets the context of passes scheduled by Set. Once it is done,
// automatic passes stop; ForceValidate and Validate take their own context.
func WithContext(ctx context.Context) Option {
	return func(s *settings) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithLogger sets the logger shared by the engine and scheduler.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer traces every pass with t.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// WithMetrics records every pass in m.
func WithMetrics(m *validation.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithTranslator renders error messages through t in lang.
func WithTranslator(t validation.Translator, lang string) Option {
	return func(s *settings) {
		s.translator = t
		s.lang = lang
	}
}

// WithBroadcaster publishes every notification to b in addition to the
// observers. Publishing happens on a separate goroutine in notification order;
// when the feed buffer is full the notification is dropped for b.
func WithBroadcaster(b notify.Broadcaster) Option {
	return func(s *settings) { s.broadcaster = b }
}

// WithFeedBuffer sets how many notifications may wait for the broadcaster.
func WithFeedBuffer(n int) Option {
	return func(s *settings) { s.feedBuffer = max(n, 1) }
}

// WithFaultHandler receives faults of passes scheduled in the background.
// By default they are logged.
func WithFaultHandler(fn func(ctx context.Context, err error)) Option {
	return func(s *settings) { s.onFault = fn }
}

// WithClock sets the time source for notification timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.clock = now
		}
	}
}
