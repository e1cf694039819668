package validation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lukas4311/WpfValidation/pkg/logger"
)

// RunFunc executes one pass.
type RunFunc func(ctx context.Context) (Report, error)

// Scheduler serializes passes of one instance on a background goroutine.
// Schedule never blocks on a running pass: a request that arrives while a
// pass is running is coalesced into one follow-up pass.
type Scheduler struct {
	run     RunFunc
	logger  *slog.Logger
	onFault func(ctx context.Context, err error)

	mu       sync.Mutex
	running  bool
	next     *Future
	nextCtxs []context.Context
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the logger of the default fault handler.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFaultHandler replaces the default fault handler, which logs the error.
func WithFaultHandler(fn func(ctx context.Context, err error)) SchedulerOption {
	return func(s *Scheduler) {
		if fn != nil {
			s.onFault = fn
		}
	}
}

// NewScheduler creates an idle scheduler that runs passes with run.
func NewScheduler(run RunFunc, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		run:    run,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.onFault == nil {
		s.onFault = func(ctx context.Context, err error) {
			s.logger.ErrorContext(ctx, "scheduled validation pass failed", logger.Error(err))
		}
	}
	return s
}

// Schedule requests a pass and returns a future that completes after a pass
// that started after the request. ctx gates the start of that pass only: a
// request whose context is already done completes with ctx.Err() and leaves
// other requests alone. A coalesced follow-up pass is skipped only when the
// contexts of all requests merged into it are done.
func (s *Scheduler) Schedule(ctx context.Context) *Future {
	if err := ctx.Err(); err != nil {
		f := newFuture()
		f.complete(Report{}, err)
		return f
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		if s.next == nil {
			s.next = newFuture()
		}
		s.nextCtxs = append(s.nextCtxs, ctx)
		return s.next
	}

	s.running = true
	f := newFuture()
	go s.loop(ctx, f)
	return f
}

// Busy reports whether the worker goroutine is active.
func (s *Scheduler) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context, f *Future) {
	for {
		f.complete(s.pass(ctx))

		s.mu.Lock()
		if s.next == nil {
			s.running = false
			s.mu.Unlock()
			return
		}
		f, ctx = s.next, liveContext(s.nextCtxs)
		s.next, s.nextCtxs = nil, nil
		s.mu.Unlock()
	}
}

// liveContext returns the first context that is not done, or the last one
// when all are.
func liveContext(ctxs []context.Context) context.Context {
	for _, ctx := range ctxs {
		if ctx.Err() == nil {
			return ctx
		}
	}
	return ctxs[len(ctxs)-1]
}

func (s *Scheduler) pass(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	report, err := s.run(ctx)
	if err != nil {
		s.onFault(ctx, err)
	}
	return report, err
}
