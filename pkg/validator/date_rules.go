package validator

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// NotBefore validates that a date is not before min.
func NotBefore(min time.Time) Rule {
	return Rule{
		Name: "not_before",
		Check: func(value any, _ Snapshot) bool {
			t, ok := asTime(value)
			return !ok || !t.Before(min)
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("date must not be before %s", min.Format(dateLayout)),
			TranslationKey: "validation.date_not_before",
			TranslationValues: map[string]any{
				"min": min.Format(dateLayout),
			},
		},
	}
}

// NotAfter validates that a date is not after max.
func NotAfter(max time.Time) Rule {
	return Rule{
		Name: "not_after",
		Check: func(value any, _ Snapshot) bool {
			t, ok := asTime(value)
			return !ok || !t.After(max)
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("date must not be after %s", max.Format(dateLayout)),
			TranslationKey: "validation.date_not_after",
			TranslationValues: map[string]any{
				"max": max.Format(dateLayout),
			},
		},
	}
}

// NotAfterField validates that a date is not after the date stored in other.
// The rule passes while either date is missing.
func NotAfterField(other string) Rule {
	return Rule{
		Name: "not_after_field",
		Check: func(value any, s Snapshot) bool {
			t, ok := asTime(value)
			o, ook := asTime(s.Get(other))
			return !ok || !ook || !t.After(o)
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("must not be after %s", other),
			TranslationKey: "validation.date_not_after_field",
			TranslationValues: map[string]any{
				"other": other,
			},
		},
	}
}

// NotBeforeField validates that a date is not before the date stored in other.
// The rule passes while either date is missing.
func NotBeforeField(other string) Rule {
	return Rule{
		Name: "not_before_field",
		Check: func(value any, s Snapshot) bool {
			t, ok := asTime(value)
			o, ook := asTime(s.Get(other))
			return !ok || !ook || !t.Before(o)
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("must not be before %s", other),
			TranslationKey: "validation.date_not_before_field",
			TranslationValues: map[string]any{
				"other": other,
			},
		},
	}
}
