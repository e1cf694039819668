package validation

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lukas4311/WpfValidation/pkg/logger"
	"github.com/lukas4311/WpfValidation/pkg/validator"
)

const tracerName = "github.com/lukas4311/WpfValidation/pkg/validation"

// Translator renders a message key for a language, falling back to
// defaultValue. Arguments are key, value pairs.
type Translator interface {
	Td(lang, key, defaultValue string, args ...string) string
}

// Report describes a completed pass.
type Report struct {
	// Pass is the 1-based sequence number of the pass on its engine.
	Pass     uint64
	Removed  []string
	Changed  []string
	Valid    bool
	Duration time.Duration
}

// Notifications returns the number of errors-changed notifications the pass emitted.
func (r Report) Notifications() int {
	return len(r.Removed) + len(r.Changed)
}

// Engine runs validation passes for a single entity instance.
type Engine struct {
	catalog *validator.Catalog
	errors  *Aggregator
	state   passMachine
	mu      sync.Mutex
	passes  atomic.Uint64

	logger          *slog.Logger
	tracer          trace.Tracer
	metrics         *Metrics
	translator      Translator
	lang            string
	onErrorsChanged func(name string)
	onProgress      func(running bool)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger for pass results and faults.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer wraps every pass in a span started from t.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithMetrics records every pass in m. A nil m disables metrics.
func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithTranslator renders rule messages through t in lang. Rules without a
// translation key keep their default message.
func WithTranslator(t Translator, lang string) EngineOption {
	return func(e *Engine) {
		e.translator = t
		e.lang = lang
	}
}

// WithErrorsChanged registers the callback invoked once per property whose
// errors were added, replaced or removed by a pass.
func WithErrorsChanged(fn func(name string)) EngineOption {
	return func(e *Engine) { e.onErrorsChanged = fn }
}

// WithProgress registers the callback invoked when a pass starts and ends.
func WithProgress(fn func(running bool)) EngineOption {
	return func(e *Engine) { e.onProgress = fn }
}

// NewEngine creates an engine for catalog with an empty error state.
// It panics when catalog is nil.
func NewEngine(catalog *validator.Catalog, opts ...EngineOption) *Engine {
	if catalog == nil {
		panic(ErrNilCatalog)
	}
	e := &Engine{
		catalog: catalog,
		errors:  NewAggregator(),
		logger:  logger.Discard(),
		tracer:  otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine evaluates.
func (e *Engine) Catalog() *validator.Catalog { return e.catalog }

// Errors returns the authoritative error state.
func (e *Engine) Errors() *Aggregator { return e.errors }

// State returns the current pass state.
func (e *Engine) State() PassState { return e.state.Current() }

// InProgress reports whether a pass is running.
func (e *Engine) InProgress() bool { return e.state.Current() == Running }

// Passes returns the number of passes started so far.
func (e *Engine) Passes() uint64 { return e.passes.Load() }

// Run executes one pass. Passes on the same engine are serialized. snapshot is
// called once the pass holds the engine, so it observes the values current at
// that moment. A rule fault is returned as a *validator.EvaluationError and
// leaves the error state untouched.
//
// Callbacks run while the pass holds the engine and must not call Run.
func (e *Engine) Run(ctx context.Context, snapshot func() validator.Snapshot) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.Fire(eventStart); err != nil {
		return Report{}, err
	}
	start := time.Now()
	report := Report{Pass: e.passes.Add(1)}

	ctx, span := e.tracer.Start(ctx, "validation.pass",
		trace.WithAttributes(attribute.Int64("validation.pass", int64(report.Pass))),
	)
	defer span.End()

	e.progress(true)
	defer func() {
		// Finish cannot fail: the pass owns the Running state under e.mu.
		_ = e.state.Fire(eventFinish)
		e.progress(false)
	}()

	found, err := e.catalog.Evaluate(snapshot())
	if err != nil {
		report.Duration = time.Since(start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "rule evaluation fault")
		e.metrics.observePass(resultFault, report.Duration)
		e.logger.ErrorContext(ctx, "validation pass failed", logger.Pass(report.Pass), logger.Error(err))
		return report, err
	}
	candidates := e.render(found)

	for _, name := range e.errors.Names() {
		if _, ok := candidates[name]; ok {
			continue
		}
		if e.errors.Remove(name) {
			report.Removed = append(report.Removed, name)
			e.errorsChanged(name)
		}
	}

	for _, name := range found.Fields() {
		msgs := candidates[name]
		if slices.Equal(msgs, e.errors.Errors(name)) {
			continue
		}
		order, summarized := e.catalog.SummaryOrder(name)
		e.errors.Set(name, msgs, order, summarized)
		report.Changed = append(report.Changed, name)
		e.errorsChanged(name)
	}

	report.Valid = !e.errors.HasErrors()
	report.Duration = time.Since(start)

	result := resultValid
	if !report.Valid {
		result = resultInvalid
	}
	e.metrics.observePass(result, report.Duration)
	e.metrics.errorsChanged(report.Notifications())

	span.SetAttributes(
		attribute.Bool("validation.valid", report.Valid),
		attribute.Int("validation.removed", len(report.Removed)),
		attribute.Int("validation.changed", len(report.Changed)),
	)
	e.logger.DebugContext(ctx, "validation pass finished",
		logger.Pass(report.Pass),
		slog.Bool("valid", report.Valid),
		logger.Diff(report.Removed, report.Changed),
		logger.Duration(report.Duration),
	)
	return report, nil
}

// render groups the failures by property, translating messages when a
// translator is configured.
func (e *Engine) render(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, ve := range errs {
		msg := ve.Message
		if e.translator != nil && ve.TranslationKey != "" {
			msg = e.translator.Td(e.lang, ve.TranslationKey, ve.Message, ve.TranslationArgs()...)
		}
		out[ve.Field] = append(out[ve.Field], msg)
	}
	return out
}

func (e *Engine) errorsChanged(name string) {
	if e.onErrorsChanged != nil {
		e.onErrorsChanged(name)
	}
}

func (e *Engine) progress(running bool) {
	if e.onProgress != nil {
		e.onProgress(running)
	}
}
