package validator

import "fmt"

// numeric builds a rule over values asFloat understands. Other values pass.
func numeric(name, message string, values map[string]any, ok func(float64) bool) Rule {
	return Rule{
		Name: name,
		Check: func(value any, _ Snapshot) bool {
			n, isNum := asFloat(value)
			return !isNum || ok(n)
		},
		Error: ValidationError{
			Message:           message,
			TranslationKey:    "validation." + name,
			TranslationValues: values,
		},
	}
}

// Min validates that a numeric value is at least min.
func Min(min float64) Rule {
	return numeric("min", fmt.Sprintf("must be at least %v", min),
		map[string]any{"min": min},
		func(n float64) bool { return n >= min })
}

// Max validates that a numeric value is at most max.
func Max(max float64) Rule {
	return numeric("max", fmt.Sprintf("must be at most %v", max),
		map[string]any{"max": max},
		func(n float64) bool { return n <= max })
}

// Between validates that a numeric value lies in [min, max].
func Between(min, max float64) Rule {
	return numeric("between", fmt.Sprintf("must be between %v and %v", min, max),
		map[string]any{"min": min, "max": max},
		func(n float64) bool { return n >= min && n <= max })
}
