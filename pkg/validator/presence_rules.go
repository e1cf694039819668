package validator

import "strings"

// Required rejects nil values, blank strings, zero times and empty collections.
// A failing Required rule stops evaluation of the property's remaining rules.
func Required() Rule {
	return Rule{
		Name: "required",
		Check: func(value any, _ Snapshot) bool {
			return !isMissing(value)
		},
		Error: ValidationError{
			Message:        "field is required",
			TranslationKey: "validation.required",
		},
		Stop: true,
	}
}

// RequiredString requires a string value that is not blank after trimming whitespace.
func RequiredString() Rule {
	return Rule{
		Name: "required_string",
		Check: func(value any, _ Snapshot) bool {
			s, ok := asString(value)
			return ok && strings.TrimSpace(s) != ""
		},
		Error: ValidationError{
			Message:        "field is required",
			TranslationKey: "validation.required",
		},
		Stop: true,
	}
}
