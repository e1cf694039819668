package entity

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lukas4311/WpfValidation/pkg/logger"
	"github.com/lukas4311/WpfValidation/pkg/notify"
	"github.com/lukas4311/WpfValidation/pkg/property"
	"github.com/lukas4311/WpfValidation/pkg/validation"
	"github.com/lukas4311/WpfValidation/pkg/validator"
)

const defaultFeedBuffer = 256

// Entity is a property bag validated against a catalog. All methods are safe
// for concurrent use.
type Entity struct {
	id        uuid.UUID
	ctx       context.Context
	catalog   *validator.Catalog
	store     *property.Store
	engine    *validation.Engine
	scheduler *validation.Scheduler
	observers observers
	paused    atomic.Bool
	logger    *slog.Logger
	clock     func() time.Time

	feedMu     sync.RWMutex
	feed       chan Notification
	feedClosed bool
	feedDone   chan struct{}
}

// New creates an entity validated against catalog. It panics when catalog is nil.
func New(catalog *validator.Catalog, opts ...Option) *Entity {
	s := settings{
		ctx:        context.Background(),
		logger:     logger.Discard(),
		feedBuffer: defaultFeedBuffer,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.id == uuid.Nil {
		s.id = uuid.New()
	}

	e := &Entity{
		id:      s.id,
		ctx:     logger.WithEntityID(s.ctx, s.id),
		catalog: catalog,
		store:   property.NewStore(),
		logger:  s.logger,
		clock:   s.clock,
	}

	engineOpts := []validation.EngineOption{
		validation.WithLogger(e.logger),
		validation.WithMetrics(s.metrics),
		validation.WithErrorsChanged(func(name string) { e.emit(ErrorsChanged, name, false) }),
		validation.WithProgress(func(running bool) { e.emit(ValidationStateChanged, "", running) }),
	}
	if s.tracer != nil {
		engineOpts = append(engineOpts, validation.WithTracer(s.tracer))
	}
	if s.translator != nil {
		engineOpts = append(engineOpts, validation.WithTranslator(s.translator, s.lang))
	}
	e.engine = validation.NewEngine(catalog, engineOpts...)

	e.scheduler = validation.NewScheduler(e.run,
		validation.WithSchedulerLogger(e.logger),
		validation.WithFaultHandler(s.onFault),
	)

	e.store.OnChanging(func(name string) { e.emit(PropertyChanging, name, false) })
	e.store.OnChanged(func(name string) { e.emit(PropertyChanged, name, false) })

	if s.broadcaster != nil {
		e.feed = make(chan Notification, s.feedBuffer)
		e.feedDone = make(chan struct{})
		go e.relay(s.broadcaster)
	}

	return e
}

// For creates an entity validated against the catalog declared by T. The
// catalog is built on first use of T and shared by every entity of that type.
func For[T validator.Declarer](opts ...Option) (*Entity, error) {
	catalog, err := validator.CatalogFor[T]()
	if err != nil {
		return nil, err
	}
	return New(catalog, opts...), nil
}

// ID returns the instance identifier carried by every notification.
func (e *Entity) ID() uuid.UUID { return e.id }

// Catalog returns the rule catalog the entity is validated against.
func (e *Entity) Catalog() *validator.Catalog { return e.catalog }

// Get returns the value stored under name, or nil.
func (e *Entity) Get(name string) any {
	return e.store.Get(name)
}

// Value returns the value stored under name converted to T, or the zero value.
func Value[T any](e *Entity, name string) T {
	return property.Value[T](e.store, name)
}

// Lookup returns the value stored under name converted to T and whether it
// was present with that type.
func Lookup[T any](e *Entity, name string) (T, bool) {
	return property.Lookup[T](e.store, name)
}

// Set stores value under name. When the value changed it notifies observers
// and, unless validation is paused, schedules a pass. Set never waits for
// the pass.
func (e *Entity) Set(name string, value any) bool {
	if !e.store.Set(name, value) {
		return false
	}
	if !e.paused.Load() {
		e.scheduler.Schedule(e.ctx)
	}
	return true
}

// SetQuiet is Set without scheduling a pass. Use it for derived state that no
// rule reads.
func (e *Entity) SetQuiet(name string, value any) bool {
	return e.store.Set(name, value)
}

// Snapshot returns a copy of every stored value.
func (e *Entity) Snapshot() validator.Snapshot {
	return e.store.Snapshot()
}

// PauseValidation stops Set from scheduling passes, for bulk initialization.
func (e *Entity) PauseValidation() { e.paused.Store(true) }

// ResumeValidation lets Set schedule passes again. It does not schedule one
// itself; call ForceValidate to validate the values set while paused.
func (e *Entity) ResumeValidation() { e.paused.Store(false) }

// ValidationPaused reports whether Set currently skips scheduling.
func (e *Entity) ValidationPaused() bool { return e.paused.Load() }

// ForceValidate schedules a pass regardless of the pause state.
func (e *Entity) ForceValidate(ctx context.Context) *validation.Future {
	return e.scheduler.Schedule(logger.WithEntityID(ctx, e.id))
}

// Validate runs a pass on the calling goroutine and returns its report.
func (e *Entity) Validate(ctx context.Context) (validation.Report, error) {
	return e.run(logger.WithEntityID(ctx, e.id))
}

func (e *Entity) run(ctx context.Context) (validation.Report, error) {
	return e.engine.Run(ctx, e.Snapshot)
}

// HasErrors reports whether any property has an error.
func (e *Entity) HasErrors() bool { return e.engine.Errors().HasErrors() }

// GetErrors returns the current messages of name; empty when it is valid.
func (e *Entity) GetErrors(name string) []string {
	return e.engine.Errors().Errors(name)
}

// ErrorNames returns the properties that currently have errors, sorted.
func (e *Entity) ErrorNames() []string {
	return e.engine.Errors().Names()
}

// Summary returns the summary entries in display order.
func (e *Entity) Summary() []validation.SummaryEntry {
	return e.engine.Errors().Summary()
}

// SummaryText is the first error of every summarized property in summary
// order, one per line.
func (e *Entity) SummaryText() string {
	return e.engine.Errors().SummaryText()
}

// ValidationInProgress reports whether a pass is running.
func (e *Entity) ValidationInProgress() bool {
	return e.engine.InProgress()
}

// Observe registers o for every notification. The returned function removes it.
func (e *Entity) Observe(o Observer) (cancel func()) {
	return e.observers.add(o)
}

// ObserveFunc is Observe for a plain function.
func (e *Entity) ObserveFunc(fn func(n Notification)) (cancel func()) {
	return e.observers.add(ObserverFunc(fn))
}

// Close stops the broadcaster feed after delivering what is queued. The
// entity stays usable; later notifications only reach observers.
func (e *Entity) Close() error {
	if e.feed == nil {
		return nil
	}
	e.feedMu.Lock()
	if !e.feedClosed {
		e.feedClosed = true
		close(e.feed)
	}
	e.feedMu.Unlock()
	<-e.feedDone
	return nil
}

// MaySave reports whether e has no errors and every gate is true.
func MaySave(e *Entity, gates ...bool) bool {
	if e.HasErrors() {
		return false
	}
	for _, g := range gates {
		if !g {
			return false
		}
	}
	return true
}

func (e *Entity) emit(kind Kind, name string, running bool) {
	n := Notification{
		EntityID: e.id,
		Kind:     kind,
		Property: name,
		Running:  running,
		At:       e.clock(),
	}
	e.observers.notify(n)

	if e.feed == nil {
		return
	}
	e.feedMu.RLock()
	defer e.feedMu.RUnlock()
	if e.feedClosed {
		return
	}
	select {
	case e.feed <- n:
	default:
		e.logger.WarnContext(e.ctx, "notification feed full, dropping notification",
			slog.String("kind", kind.String()), logger.Property(name))
	}
}

func (e *Entity) relay(b notify.Broadcaster) {
	defer close(e.feedDone)
	for n := range e.feed {
		if err := b.Publish(e.ctx, n); err != nil {
			e.logger.WarnContext(e.ctx, "publishing notification failed",
				slog.String("kind", n.Kind.String()), logger.Property(n.Property), logger.Error(err))
		}
	}
}
