package callbatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lukas4311/WpfValidation/pkg/entity"
	"github.com/lukas4311/WpfValidation/pkg/logger"
)

// Last-day batches cover contacts whose status changed in the day before the
// last two hours.
const (
	lastDayStateID   = 9
	lastDayBatchType = 1
	lastDayWindow    = 24 * time.Hour
	lastDayLag       = 2 * time.Hour
)

// Form is the call batch form.
type Form struct {
	*entity.Entity

	source Source
	now    func() time.Time
	logger *slog.Logger
	stop   func()
}

type Option func(*formSettings)

type formSettings struct {
	now        func() time.Time
	logger     *slog.Logger
	entityOpts []entity.Option
}

func WithClock(now func() time.Time) Option {
	return func(s *formSettings) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *formSettings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEntityOptions passes options to the underlying entity.
func WithEntityOptions(opts ...entity.Option) Option {
	return func(s *formSettings) { s.entityOpts = append(s.entityOpts, opts...) }
}

// New creates an empty form backed by source.
func New(source Source, opts ...Option) (*Form, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	s := formSettings{now: time.Now, logger: logger.Discard()}
	for _, opt := range opts {
		opt(&s)
	}

	entityOpts := append([]entity.Option{
		entity.WithLogger(s.logger),
		entity.WithClock(s.now),
	}, s.entityOpts...)
	e, err := entity.For[rules](entityOpts...)
	if err != nil {
		return nil, err
	}

	f := &Form{Entity: e, source: source, now: s.now, logger: s.logger}
	f.stop = f.ObserveFunc(f.onNotification)
	return f, nil
}

// Close detaches the form from its entity.
func (f *Form) Close() error {
	f.stop()
	return f.Entity.Close()
}

// Load reads the lookup data and selects the first contact state. It returns
// after the initial validation pass.
func (f *Form) Load(ctx context.Context) error {
	f.PauseValidation()
	err := f.load(ctx)
	f.ResumeValidation()
	if err != nil {
		return err
	}

	_, err = f.ForceValidate(ctx).AwaitContext(ctx)
	return err
}

func (f *Form) load(ctx context.Context) error {
	states, err := f.source.ContactStates(ctx)
	if err != nil {
		return fmt.Errorf("%w: contact states: %w", ErrLoadFailed, err)
	}
	if len(states) == 0 {
		return ErrNoContactState
	}
	enabled, err := f.source.AutoBatchEnabled(ctx)
	if err != nil {
		return fmt.Errorf("%w: auto batch setting: %w", ErrLoadFailed, err)
	}

	f.Set(ContactStates, states)
	first := states[0]
	f.Set(SelectedContactState, &first)
	f.Set(MinDayCount, nil)
	f.Set(MaxDayCount, nil)
	f.Set(FirstStatusChangeFrom, nil)
	f.Set(FirstStatusChangeTo, nil)
	f.SetQuiet(AutoBatchEnabled, enabled)
	return nil
}

func (f *Form) ContactStates() []ContactState {
	return entity.Value[[]ContactState](f.Entity, ContactStates)
}

func (f *Form) SelectedContactState() *ContactState {
	return entity.Value[*ContactState](f.Entity, SelectedContactState)
}

// SelectContactState selects the loaded state with the given ID.
func (f *Form) SelectContactState(id int) error {
	for _, s := range f.ContactStates() {
		if s.ID == id {
			f.Set(SelectedContactState, &s)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownState, id)
}

// ClearContactState removes the selection.
func (f *Form) ClearContactState() { f.Set(SelectedContactState, nil) }

// SetWindow sets the first-status-change window. Zero times clear its ends.
func (f *Form) SetWindow(from, to time.Time) {
	f.Set(FirstStatusChangeFrom, timeOrNil(from))
	f.Set(FirstStatusChangeTo, timeOrNil(to))
}

// SetDayRange bounds the days since the last state change; nil leaves an end open.
func (f *Form) SetDayRange(minDays, maxDays *int) {
	f.Set(MinDayCount, intOrNil(minDays))
	f.Set(MaxDayCount, intOrNil(maxDays))
}

// SetBatchType sets the zero-based batch kind.
func (f *Form) SetBatchType(t int) { f.Set(BatchType, t) }

func (f *Form) SetRegion(id int) { f.Set(RegionID, id) }

// SetAgent filters by agent; zero means any agent.
func (f *Form) SetAgent(id int) { f.Set(AgentID, id) }

// SetMarketingSource filters by marketing source; zero means any source.
func (f *Form) SetMarketingSource(id int) { f.Set(MarketingSourceID, id) }

func (f *Form) CanCreateBatch() bool { return entity.Value[bool](f.Entity, CanCreateBatch) }

func (f *Form) Result() string { return entity.Value[string](f.Entity, Result) }

func (f *Form) ResultVisible() bool { return entity.Value[bool](f.Entity, ResultVisible) }

func (f *Form) AutoBatchEnabled() bool { return entity.Value[bool](f.Entity, AutoBatchEnabled) }

// SetAutoBatchEnabled stores the automatic batch setting and mirrors it in the form.
func (f *Form) SetAutoBatchEnabled(ctx context.Context, enabled bool) error {
	if err := f.source.SetAutoBatchEnabled(ctx, enabled); err != nil {
		return err
	}
	f.SetQuiet(AutoBatchEnabled, enabled)
	return nil
}

// Request builds the batch filter from the form. Optional values default to
// zero. It fails with ErrNotReady while the form has errors.
func (f *Form) Request() (Request, error) {
	state := f.SelectedContactState()
	if state == nil || !entity.MaySave(f.Entity) {
		return Request{}, ErrNotReady
	}

	from, _ := entity.Lookup[time.Time](f.Entity, FirstStatusChangeFrom)
	to, _ := entity.Lookup[time.Time](f.Entity, FirstStatusChangeTo)
	return Request{
		BatchType:         entity.Value[int](f.Entity, BatchType) + 1,
		StatusChangeFrom:  from,
		StatusChangeTo:    to,
		StateID:           state.ID,
		RegionID:          entity.Value[int](f.Entity, RegionID),
		AgentID:           entity.Value[int](f.Entity, AgentID),
		MarketingSourceID: entity.Value[int](f.Entity, MarketingSourceID),
		MinDays:           entity.Value[int](f.Entity, MinDayCount),
		MaxDays:           entity.Value[int](f.Entity, MaxDayCount),
	}, nil
}

// LastDayRequest builds the fixed filter of the last-day batch. It ignores
// the form's filter except for the region.
func (f *Form) LastDayRequest() Request {
	now := f.now()
	return Request{
		BatchType:        lastDayBatchType,
		StatusChangeFrom: now.Add(-lastDayWindow),
		StatusChangeTo:   now.Add(-lastDayLag),
		StateID:          lastDayStateID,
		RegionID:         entity.Value[int](f.Entity, RegionID),
	}
}

// CreateBatch creates a batch from the form's filter and reports the outcome in Result.
func (f *Form) CreateBatch(ctx context.Context) (int, error) {
	r, err := f.Request()
	if err != nil {
		return 0, err
	}
	return f.create(ctx, r)
}

// CreateLastDayBatch creates the last-day batch. It does not depend on the
// form being valid.
func (f *Form) CreateLastDayBatch(ctx context.Context) (int, error) {
	return f.create(ctx, f.LastDayRequest())
}

func (f *Form) create(ctx context.Context, r Request) (int, error) {
	n, err := f.source.CreateBatch(ctx, r)
	if err != nil {
		f.logger.ErrorContext(ctx, "creating call batch failed",
			slog.Int("batch_type", r.BatchType), logger.Error(err))
		f.SetQuiet(Result, "The batch could not be created: "+err.Error())
		return 0, fmt.Errorf("%w: %w", ErrBatchFailed, err)
	}

	if n == 0 {
		f.SetQuiet(Result, "No batch was created, no contact matches the filter.")
	} else {
		f.SetQuiet(Result, fmt.Sprintf("The batch was created with %d contacts.", n))
	}
	f.logger.InfoContext(ctx, "call batch created",
		slog.Int("batch_type", r.BatchType), slog.Int("contacts", n))
	return n, nil
}

func (f *Form) onNotification(n entity.Notification) {
	switch {
	case n.Kind == entity.ErrorsChanged,
		n.Kind == entity.ValidationStateChanged && !n.Running:
		f.SetQuiet(CanCreateBatch, entity.MaySave(f.Entity))
	case n.Kind == entity.PropertyChanged && n.Property == Result:
		f.SetQuiet(ResultVisible, f.Result() != "")
	}
}

func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
