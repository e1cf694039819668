package agreement_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukas4311/WpfValidation/modules/agreement"
)

var (
	gdpr      = agreement.Type{ID: 1, Code: "gdpr", Name: "GDPR"}
	marketing = agreement.Type{ID: 2, Code: "mkt", Name: "Marketing"}
)

type fakeStorage struct {
	mu         sync.Mutex
	enabled    bool
	agreements map[int]agreement.Agreement
	saved      []agreement.Agreement
	saveErr    error
	typesErr   error
	nextID     int
}

func newStorage(enabled bool) *fakeStorage {
	return &fakeStorage{enabled: enabled, agreements: map[int]agreement.Agreement{}, nextID: 100}
}

func (s *fakeStorage) UserEnabled(context.Context, int) (bool, error) {
	return s.enabled, nil
}

func (s *fakeStorage) Types(context.Context) ([]agreement.Type, error) {
	if s.typesErr != nil {
		return nil, s.typesErr
	}
	return []agreement.Type{gdpr, marketing}, nil
}

func (s *fakeStorage) Agreement(_ context.Context, id int) (agreement.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agreements[id]
	if !ok {
		return agreement.Agreement{}, errors.New("not found")
	}
	return a, nil
}

func (s *fakeStorage) SaveAgreement(_ context.Context, a agreement.Agreement) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	if a.ID == 0 {
		s.nextID++
		a.ID = s.nextID
	}
	s.saved = append(s.saved, a)
	return a.ID, nil
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func clock() time.Time {
	return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func newForm(t *testing.T, storage agreement.Storage) *agreement.Form {
	t.Helper()
	f, err := agreement.New(storage, agreement.WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func settle(t *testing.T, f *agreement.Form) {
	t.Helper()
	_, err := f.ForceValidate(context.Background()).AwaitWithTimeout(5 * time.Second)
	require.NoError(t, err)
}

func TestNew_NilStorage(t *testing.T) {
	t.Parallel()

	_, err := agreement.New(nil)
	assert.ErrorIs(t, err, agreement.ErrNilStorage)
}

func TestLoad_NewAgreement(t *testing.T) {
	t.Parallel()

	f := newForm(t, newStorage(true))
	require.NoError(t, f.Load(context.Background(), 7, nil))

	assert.True(t, f.IsNew())
	assert.True(t, f.CanEdit())
	assert.False(t, f.CanSave())
	assert.False(t, f.ValidationPaused())
	assert.Len(t, f.Types(), 2)

	assert.Equal(t, []string{"Enter a date"}, f.GetErrors(agreement.ValidFrom))
	assert.Equal(t, []string{"Valid to must not be before valid from"}, f.GetErrors(agreement.ValidTo))
	assert.Equal(t, []string{"Select an agreement type"}, f.GetErrors(agreement.SelectedType))
	assert.Equal(t,
		"Enter a date\nValid to must not be before valid from\nSelect an agreement type",
		f.SummaryText())

	_, err := f.Record()
	assert.ErrorIs(t, err, agreement.ErrNotSavable)
}

func TestForm_BecomesSavable(t *testing.T) {
	t.Parallel()

	f := newForm(t, newStorage(true))
	require.NoError(t, f.Load(context.Background(), 7, nil))

	f.SetValidFrom(day(time.March, 20))
	f.SetValidTo(day(time.December, 31))
	require.NoError(t, f.SelectType(gdpr.ID))
	settle(t, f)

	assert.False(t, f.HasErrors())
	assert.Empty(t, f.SummaryText())
	assert.True(t, f.CanSave())

	rec, err := f.Record()
	require.NoError(t, err)
	assert.Equal(t, agreement.Agreement{
		AgentID:   7,
		Type:      gdpr,
		ValidFrom: day(time.March, 20),
		ValidTo:   day(time.December, 31),
	}, rec)
}

func TestForm_DateRules(t *testing.T) {
	t.Parallel()

	f := newForm(t, newStorage(true))
	require.NoError(t, f.Load(context.Background(), 7, nil))
	f.SetType(&marketing)

	f.SetValidFrom(day(time.February, 10))
	f.SetValidTo(day(time.February, 1))
	settle(t, f)

	assert.Equal(t, []string{
		"Valid from must not be after valid to",
		"Valid from must not be in a past month",
	}, f.GetErrors(agreement.ValidFrom))
	assert.Equal(t, []string{
		"Valid to must not be before valid from",
		"Valid to must not be in a past month",
	}, f.GetErrors(agreement.ValidTo))
	assert.False(t, f.CanSave())

	f.SetValidFrom(day(time.March, 1))
	f.SetValidTo(day(time.March, 31))
	settle(t, f)

	assert.False(t, f.HasErrors())
	assert.True(t, f.CanSave())
}

func TestLoad_ExistingAgreement(t *testing.T) {
	t.Parallel()

	storage := newStorage(true)
	storage.agreements[42] = agreement.Agreement{
		ID:        42,
		AgentID:   7,
		Type:      marketing,
		ValidFrom: day(time.January, 1),
		ValidTo:   day(time.June, 30),
	}
	f := newForm(t, storage)
	paramID := 42
	require.NoError(t, f.Load(context.Background(), 7, &paramID))

	assert.False(t, f.IsNew())
	assert.False(t, f.CanEdit())
	require.NotNil(t, f.SelectedType())
	assert.Equal(t, marketing, *f.SelectedType())

	// A start in a past month is allowed for stored agreements.
	assert.False(t, f.HasErrors())
	assert.True(t, f.CanSave())

	rec, err := f.Record()
	require.NoError(t, err)
	assert.Equal(t, 42, rec.ID)
}

func TestForm_DisabledUser(t *testing.T) {
	t.Parallel()

	f := newForm(t, newStorage(true))
	require.NoError(t, f.Load(context.Background(), 7, nil))
	f.SetValidFrom(day(time.April, 1))
	f.SetValidTo(day(time.April, 30))
	f.SetType(&gdpr)
	settle(t, f)
	require.True(t, f.CanSave())

	f.SetUserIsEnabled(false)
	assert.False(t, f.CanSave(), "disabling the user revokes CanSave at once")
	settle(t, f)
	assert.False(t, f.CanSave())

	_, err := f.Record()
	assert.ErrorIs(t, err, agreement.ErrNotSavable)

	f.SetUserIsEnabled(true)
	settle(t, f)
	assert.True(t, f.CanSave())
}

func TestForm_Save(t *testing.T) {
	t.Parallel()

	storage := newStorage(true)
	f := newForm(t, storage)
	require.NoError(t, f.Load(context.Background(), 7, nil))
	f.SetValidFrom(day(time.April, 1))
	f.SetValidTo(day(time.May, 31))
	f.SetType(&gdpr)
	settle(t, f)

	require.NoError(t, f.Save(context.Background()))

	assert.True(t, f.WasSaved())
	assert.False(t, f.CanEdit())
	id, ok := f.ParamID()
	assert.True(t, ok)
	assert.Equal(t, 101, id)
	code, msg := f.Message()
	assert.Equal(t, agreement.MessageSuccess, code)
	assert.Equal(t, "Saved successfully", msg)
	require.Len(t, storage.saved, 1)
	assert.Equal(t, gdpr, storage.saved[0].Type)

	f.ClearMessage()
	code, msg = f.Message()
	assert.Equal(t, agreement.MessageNone, code)
	assert.Empty(t, msg)
}

func TestForm_MessageHideAfter(t *testing.T) {
	t.Parallel()

	var now atomic.Pointer[time.Time]
	start := clock()
	now.Store(&start)
	f, err := agreement.New(newStorage(true),
		agreement.WithClock(func() time.Time { return *now.Load() }),
		agreement.WithMessageHideAfter(5*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	f.ShowMessage("Saved successfully", false)

	later := start.Add(4 * time.Second)
	now.Store(&later)
	code, msg := f.Message()
	assert.Equal(t, agreement.MessageSuccess, code)
	assert.Equal(t, "Saved successfully", msg)

	expired := start.Add(5 * time.Second)
	now.Store(&expired)
	code, msg = f.Message()
	assert.Equal(t, agreement.MessageNone, code)
	assert.Empty(t, msg)
}

func TestForm_SaveFailure(t *testing.T) {
	t.Parallel()

	storage := newStorage(true)
	storage.saveErr = errors.New("connection lost")
	f := newForm(t, storage)
	require.NoError(t, f.Load(context.Background(), 7, nil))
	f.SetValidFrom(day(time.April, 1))
	f.SetValidTo(day(time.May, 31))
	f.SetType(&gdpr)
	settle(t, f)

	err := f.Save(context.Background())
	assert.ErrorIs(t, err, agreement.ErrSavingFailed)
	assert.False(t, f.WasSaved())

	code, msg := f.Message()
	assert.Equal(t, agreement.MessageError, code)
	assert.Contains(t, msg, "connection lost")
}

func TestLoad_Failure(t *testing.T) {
	t.Parallel()

	storage := newStorage(true)
	storage.typesErr = errors.New("timeout")
	f := newForm(t, storage)

	err := f.Load(context.Background(), 7, nil)
	assert.ErrorIs(t, err, agreement.ErrLoadFailed)
	assert.False(t, f.ValidationPaused())

	missing := 5
	storage.typesErr = nil
	err = f.Load(context.Background(), 7, &missing)
	assert.ErrorIs(t, err, agreement.ErrLoadFailed)
}

func TestForm_RecordBeforeLoad(t *testing.T) {
	t.Parallel()

	f := newForm(t, newStorage(true))
	_, err := f.Record()
	assert.ErrorIs(t, err, agreement.ErrNotLoaded)
}

func TestForm_SelectUnknownType(t *testing.T) {
	t.Parallel()

	f := newForm(t, newStorage(true))
	require.NoError(t, f.Load(context.Background(), 7, nil))
	assert.ErrorIs(t, f.SelectType(99), agreement.ErrUnknownType)
	assert.Nil(t, f.SelectedType())
}
