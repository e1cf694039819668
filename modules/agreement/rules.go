package agreement

import (
	"time"

	"github.com/lukas4311/WpfValidation/pkg/validator"
)

// Property names of the form.
const (
	AgentID               = "AgentID"
	ParamID               = "ParamID"
	ValidFrom             = "ValidFrom"
	ValidTo               = "ValidTo"
	ActualValidTo         = "ActualValidTo"
	FirstDayOfActualMonth = "FirstDayOfActualMonth"
	Types                 = "Types"
	SelectedType          = "SelectedType"
	IsNew                 = "IsNew"
	CanSave               = "CanSave"
	CanEdit               = "CanEdit"
	WasSaved              = "WasSaved"
	UserIsEnabled         = "UserIsEnabled"
	UserInfoMessageCode   = "UserInfoMessageCode"
	UserInfoMessage       = "UserInfoMessage"
	UserInfoMessageHideAt = "UserInfoMessageHideAt"
)

// Predicate names, also the suffix of the translation keys of their messages.
const (
	FromNotAfterTo     = "FromNotAfterTo"
	FromNotInPastMonth = "FromNotInPastMonth"
	ToWithinRange      = "ToWithinRange"
	ToNotInPastMonth   = "ToNotInPastMonth"
)

// rules declares the catalog shared by every agreement form.
type rules struct{}

func (rules) DeclareRules(b *validator.Builder) {
	b.Property(ValidFrom).
		Rule(required("Enter a date", "agreement.valid_from.required")).
		Condition(FromNotAfterTo, "Valid from must not be after valid to").
		Condition(FromNotInPastMonth, "Valid from must not be in a past month").
		Summary(1)
	b.Property(ValidTo).
		Condition(ToWithinRange, "Valid to must not be before valid from").
		Condition(ToNotInPastMonth, "Valid to must not be in a past month").
		Summary(2)
	b.Property(SelectedType).
		Rule(required("Select an agreement type", "agreement.type.required")).
		Summary(3)

	b.Predicate(FromNotAfterTo, fromNotAfterTo)
	b.Predicate(FromNotInPastMonth, fromNotInPastMonth)
	b.Predicate(ToWithinRange, toWithinRange)
	b.Predicate(ToNotInPastMonth, toNotInPastMonth)
}

func required(message, key string) validator.Rule {
	return validator.Required().WithMessage(message).WithKey(key)
}

func fromNotAfterTo(v any, s validator.Snapshot) bool {
	from, ok := asDate(v)
	if !ok {
		return true
	}
	to, ok := dateField(s, ValidTo)
	return !ok || !from.After(to)
}

// fromNotInPastMonth only restricts new agreements.
func fromNotInPastMonth(v any, s validator.Snapshot) bool {
	from, ok := asDate(v)
	if !ok {
		return true
	}
	isNew, _ := validator.Field[bool](s, IsNew)
	first, ok := dateField(s, FirstDayOfActualMonth)
	return !isNew || !ok || !from.Before(first)
}

// toWithinRange fails while either date is missing: an agreement needs both
// ends of its validity window.
func toWithinRange(v any, s validator.Snapshot) bool {
	to, ok := asDate(v)
	if !ok {
		return false
	}
	from, ok := dateField(s, ValidFrom)
	if !ok || to.Before(from) {
		return false
	}
	first, ok := dateField(s, FirstDayOfActualMonth)
	return !ok || !to.Before(first)
}

// toNotInPastMonth accepts a past end date on an existing agreement as long
// as it equals the stored one.
func toNotInPastMonth(v any, s validator.Snapshot) bool {
	to, ok := asDate(v)
	if !ok {
		return true
	}
	first, ok := dateField(s, FirstDayOfActualMonth)
	if !ok || !to.Before(first) {
		return true
	}
	if isNew, _ := validator.Field[bool](s, IsNew); isNew {
		return false
	}
	actual, ok := dateField(s, ActualValidTo)
	return ok && to.Equal(actual)
}

func asDate(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok && !t.IsZero()
}

func dateField(s validator.Snapshot, name string) (time.Time, bool) {
	return asDate(s.Get(name))
}

// firstDayOfMonth returns midnight of the first day of t's month in t's location.
func firstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
