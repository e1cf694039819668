package validator

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Snapshot is a read-only view of an entity's property values taken at the
// start of an evaluation. Absent names read as nil.
type Snapshot map[string]any

// Get returns the value stored under name or nil.
func (s Snapshot) Get(name string) any {
	return s[name]
}

// Has reports whether a value is present under name.
func (s Snapshot) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Field returns the value stored under name converted to T.
func Field[T any](s Snapshot, name string) (T, bool) {
	v, ok := s[name].(T)
	return v, ok
}

// Predicate checks a property value. It may read other properties from s.
type Predicate func(value any, s Snapshot) bool

// ValidationError is one failed rule of a property. Message is the default
// text; TranslationKey and TranslationValues let a translator render it in
// another language.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// TranslationArgs flattens TranslationValues into key, value pairs in the form
// message translators expect.
func (e ValidationError) TranslationArgs() []string {
	args := make([]string, 0, len(e.TranslationValues)*2)
	for _, k := range slices.Sorted(maps.Keys(e.TranslationValues)) {
		args = append(args, k, fmt.Sprint(e.TranslationValues[k]))
	}
	return args
}

// ValidationErrors is the ordered result of one catalog evaluation: one entry
// per failed rule, grouped by property in catalog order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for i, err := range ve {
		sep := "; "
		if i == 0 {
			sep = ": "
		}
		fmt.Fprintf(&b, "%s%s: %s", sep, err.Field, err.Message)
	}
	return b.String()
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(err ValidationError) bool { return err.Field == field })
}

// Get returns the messages of field in evaluation order.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve.GetErrors(field) {
		messages = append(messages, err.Message)
	}
	return messages
}

// GetErrors returns the failures of field in evaluation order.
func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Field == field {
			errs = append(errs, err)
		}
	}
	return errs
}

// Fields returns the distinct field names in order of first appearance.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, err := range ve {
		if !slices.Contains(fields, err.Field) {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule is a named predicate bound to the error it produces on failure. Rules
// are declared without a property; the catalog binds them when it evaluates.
type Rule struct {
	// Name identifies the rule in evaluation errors and logs.
	Name  string
	Check Predicate
	Error ValidationError
	// Stop skips the remaining rules of the property when this rule fails.
	Stop bool
}

// WithMessage returns a copy of r using message as the default error text.
func (r Rule) WithMessage(message string) Rule {
	r.Error.Message = message
	return r
}

// WithKey returns a copy of r using key as the translation key.
func (r Rule) WithKey(key string) Rule {
	r.Error.TranslationKey = key
	return r
}

// failure produces the error for a failed check bound to property.
func (r Rule) failure(property string) ValidationError {
	err := r.Error
	err.Field = property
	values := make(map[string]any, len(r.Error.TranslationValues)+1)
	maps.Copy(values, r.Error.TranslationValues)
	values["field"] = property
	err.TranslationValues = values
	return err
}
