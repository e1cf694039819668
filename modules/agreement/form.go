package agreement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lukas4311/WpfValidation/pkg/entity"
	"github.com/lukas4311/WpfValidation/pkg/logger"
)

// MessageCode classifies the info banner message.
type MessageCode int

const (
	MessageNone MessageCode = iota
	MessageSuccess
	MessageError
)

func (c MessageCode) String() string {
	switch c {
	case MessageNone:
		return "none"
	case MessageSuccess:
		return "success"
	case MessageError:
		return "error"
	default:
		return fmt.Sprintf("MessageCode(%d)", int(c))
	}
}

// Form is the agent agreement form. The embedded entity exposes the generic
// property and validation API; the methods below are the typed view of it.
type Form struct {
	*entity.Entity

	storage   Storage
	now       func() time.Time
	hideAfter time.Duration
	logger    *slog.Logger
	stop      func()
}

// Option configures a Form.
type Option func(*formSettings)

type formSettings struct {
	now        func() time.Time
	hideAfter  time.Duration
	logger     *slog.Logger
	entityOpts []entity.Option
}

// WithClock sets the time source used for the current month.
func WithClock(now func() time.Time) Option {
	return func(s *formSettings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMessageHideAfter clears the info banner d after it is shown, measured
// by the form clock. Zero keeps the banner until ClearMessage.
func WithMessageHideAfter(d time.Duration) Option {
	return func(s *formSettings) { s.hideAfter = max(d, 0) }
}

// WithLogger sets the logger for load and save failures.
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

// New creates an empty form backed by storage.
func New(storage Storage, opts ...Option) (*Form, error) {
	if storage == nil {
		return nil, ErrNilStorage
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

	f := &Form{Entity: e, storage: storage, now: s.now, hideAfter: s.hideAfter, logger: s.logger}
	f.SetQuiet(FirstDayOfActualMonth, firstDayOfMonth(f.now()))
	f.SetQuiet(UserInfoMessageCode, MessageNone)
	f.stop = f.ObserveFunc(f.onNotification)
	return f, nil
}

// Close detaches the form from its entity.
func (f *Form) Close() error {
	f.stop()
	return f.Entity.Close()
}

// Load initializes the form for agentID. A nil paramID starts a new
// agreement, otherwise the stored agreement is loaded. Validation is paused
// while the values are set and one pass runs afterwards; Load returns when it
// has finished.
func (f *Form) Load(ctx context.Context, agentID int, paramID *int) error {
	f.PauseValidation()
	err := f.load(ctx, agentID, paramID)
	f.ResumeValidation()
	if err != nil {
		return err
	}

	_, err = f.ForceValidate(ctx).AwaitContext(ctx)
	return err
}

func (f *Form) load(ctx context.Context, agentID int, paramID *int) error {
	f.Set(AgentID, agentID)
	f.Set(IsNew, paramID == nil)
	f.SetQuiet(CanSave, false)
	f.SetQuiet(CanEdit, paramID == nil)
	f.Set(FirstDayOfActualMonth, firstDayOfMonth(f.now()))

	enabled, err := f.storage.UserEnabled(ctx, agentID)
	if err != nil {
		return fmt.Errorf("%w: user of agent %d: %w", ErrLoadFailed, agentID, err)
	}
	f.Set(UserIsEnabled, enabled)

	types, err := f.storage.Types(ctx)
	if err != nil {
		return fmt.Errorf("%w: agreement types: %w", ErrLoadFailed, err)
	}
	f.Set(Types, types)

	if paramID == nil {
		f.Set(ParamID, nil)
		return nil
	}

	a, err := f.storage.Agreement(ctx, *paramID)
	if err != nil {
		return fmt.Errorf("%w: agreement %d: %w", ErrLoadFailed, *paramID, err)
	}
	f.Set(ParamID, *paramID)
	f.Set(SelectedType, findType(types, a.Type.ID))
	f.SetValidFrom(a.ValidFrom)
	f.SetValidTo(a.ValidTo)
	f.Set(ActualValidTo, dateOrNil(a.ValidTo))
	return nil
}

// Record returns the agreement described by the form. It fails with
// ErrNotSavable while the form has errors or the user is disabled.
func (f *Form) Record() (Agreement, error) {
	agentID, ok := entity.Lookup[int](f.Entity, AgentID)
	if !ok {
		return Agreement{}, ErrNotLoaded
	}
	t := f.SelectedType()
	if t == nil || !entity.MaySave(f.Entity, f.UserIsEnabled()) {
		return Agreement{}, ErrNotSavable
	}

	from, _ := f.ValidFrom()
	to, _ := f.ValidTo()
	id, _ := f.ParamID()
	return Agreement{
		ID:        id,
		AgentID:   agentID,
		Type:      *t,
		ValidFrom: from,
		ValidTo:   to,
	}, nil
}

// Save persists the agreement and reports the outcome in the info banner.
func (f *Form) Save(ctx context.Context) error {
	a, err := f.Record()
	if err != nil {
		return err
	}

	id, err := f.storage.SaveAgreement(ctx, a)
	if err != nil {
		f.logger.ErrorContext(ctx, "saving agreement failed",
			slog.Int("agent_id", a.AgentID), logger.Error(err))
		f.ShowMessage("Saving failed:\n"+err.Error(), true)
		return fmt.Errorf("%w: %w", ErrSavingFailed, err)
	}

	f.SetQuiet(WasSaved, true)
	f.SetQuiet(ParamID, id)
	f.SetQuiet(CanEdit, false)
	f.ShowMessage("Saved successfully", false)
	return nil
}

// ShowMessage sets the info banner. With WithMessageHideAfter the banner
// expires after the configured delay.
func (f *Form) ShowMessage(msg string, isError bool) {
	code := MessageSuccess
	if isError {
		code = MessageError
	}
	f.SetQuiet(UserInfoMessageCode, code)
	f.SetQuiet(UserInfoMessage, msg)
	if f.hideAfter > 0 {
		f.SetQuiet(UserInfoMessageHideAt, f.now().Add(f.hideAfter))
	} else {
		f.SetQuiet(UserInfoMessageHideAt, nil)
	}
}

// ClearMessage hides the info banner.
func (f *Form) ClearMessage() {
	f.SetQuiet(UserInfoMessageCode, MessageNone)
	f.SetQuiet(UserInfoMessage, nil)
	f.SetQuiet(UserInfoMessageHideAt, nil)
}

// Message returns the info banner, clearing it first when it has expired.
func (f *Form) Message() (MessageCode, string) {
	if hideAt, ok := entity.Lookup[time.Time](f.Entity, UserInfoMessageHideAt); ok && !f.now().Before(hideAt) {
		f.ClearMessage()
	}
	return entity.Value[MessageCode](f.Entity, UserInfoMessageCode),
		entity.Value[string](f.Entity, UserInfoMessage)
}

func (f *Form) ParamID() (int, bool) { return entity.Lookup[int](f.Entity, ParamID) }

func (f *Form) ValidFrom() (time.Time, bool) { return f.date(ValidFrom) }

func (f *Form) ValidTo() (time.Time, bool) { return f.date(ValidTo) }

// SetValidFrom sets the start of validity; the zero time clears it.
func (f *Form) SetValidFrom(t time.Time) { f.Set(ValidFrom, dateOrNil(t)) }

// SetValidTo sets the end of validity; the zero time clears it.
func (f *Form) SetValidTo(t time.Time) { f.Set(ValidTo, dateOrNil(t)) }

func (f *Form) Types() []Type { return entity.Value[[]Type](f.Entity, Types) }

func (f *Form) SelectedType() *Type { return entity.Value[*Type](f.Entity, SelectedType) }

// SetType selects t; nil clears the selection.
func (f *Form) SetType(t *Type) { f.Set(SelectedType, t) }

// SelectType selects the loaded type with the given ID.
func (f *Form) SelectType(id int) error {
	t := findType(f.Types(), id)
	if t == nil {
		return fmt.Errorf("%w: %d", ErrUnknownType, id)
	}
	f.Set(SelectedType, t)
	return nil
}

func (f *Form) IsNew() bool { return entity.Value[bool](f.Entity, IsNew) }

func (f *Form) CanSave() bool { return entity.Value[bool](f.Entity, CanSave) }

func (f *Form) CanEdit() bool { return entity.Value[bool](f.Entity, CanEdit) }

func (f *Form) WasSaved() bool { return entity.Value[bool](f.Entity, WasSaved) }

func (f *Form) UserIsEnabled() bool { return entity.Value[bool](f.Entity, UserIsEnabled) }

// SetUserIsEnabled sets the user's enabled flag. Disabling the user revokes
// CanSave immediately.
func (f *Form) SetUserIsEnabled(enabled bool) { f.Set(UserIsEnabled, enabled) }

func (f *Form) date(name string) (time.Time, bool) {
	return asDate(f.Get(name))
}

// onNotification keeps CanSave in line with the error set and the user flag.
func (f *Form) onNotification(n entity.Notification) {
	switch {
	case n.Kind == entity.ErrorsChanged,
		n.Kind == entity.ValidationStateChanged && !n.Running:
		f.SetQuiet(CanSave, entity.MaySave(f.Entity, f.UserIsEnabled()))
	case n.Kind == entity.PropertyChanged && n.Property == UserIsEnabled:
		if !f.UserIsEnabled() {
			f.SetQuiet(CanSave, false)
		}
	}
}

func findType(types []Type, id int) *Type {
	for i := range types {
		if types[i].ID == id {
			t := types[i]
			return &t
		}
	}
	return nil
}

func dateOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
