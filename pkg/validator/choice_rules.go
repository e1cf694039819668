package validator

import (
	"fmt"
	"slices"
	"strings"
)

// InList validates that the value is one of allowed. Values of another type
// than T fail, a missing value passes.
func InList[T comparable](allowed ...T) Rule {
	options := make([]string, 0, len(allowed))
	for _, v := range allowed {
		options = append(options, fmt.Sprint(v))
	}

	return Rule{
		Name: "in_list",
		Check: func(value any, _ Snapshot) bool {
			if value == nil {
				return true
			}
			v, ok := value.(T)
			return ok && slices.Contains(allowed, v)
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("must be one of: %s", strings.Join(options, ", ")),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"values": strings.Join(options, ", "),
			},
		},
	}
}
