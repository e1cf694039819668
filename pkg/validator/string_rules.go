package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// MinLen validates the length of strings (in characters) and collections.
func MinLen(min int) Rule {
	return Rule{
		Name: "min_length",
		Check: func(value any, _ Snapshot) bool {
			n, ok := length(value)
			return !ok || n >= min
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"min": min,
			},
		},
	}
}

func MaxLen(max int) Rule {
	return Rule{
		Name: "max_length",
		Check: func(value any, _ Snapshot) bool {
			n, ok := length(value)
			return !ok || n <= max
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"max": max,
			},
		},
	}
}

// Pattern validates strings against a regular expression. It panics when expr
// does not compile; use CompilePattern for expressions that come from data.
func Pattern(expr, description string) Rule {
	r, err := CompilePattern(expr, description)
	if err != nil {
		panic(err)
	}
	return r
}

// CompilePattern is Pattern returning the compilation error instead of panicking.
func CompilePattern(expr, description string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("validator: pattern %q: %w", expr, err)
	}
	return Rule{
		Name: "pattern",
		Check: func(value any, _ Snapshot) bool {
			s, ok := asString(value)
			if !ok || strings.TrimSpace(s) == "" {
				return true
			}
			return re.MatchString(s)
		},
		Error: ValidationError{
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"pattern":     expr,
				"description": description,
			},
		},
	}, nil
}

// Email validates an email address parsed with net/mail and restricted to the
// local@domain.tld form used on the web.
func Email() Rule {
	return Rule{
		Name: "email",
		Check: func(value any, _ Snapshot) bool {
			s, ok := asString(value)
			if !ok || strings.TrimSpace(s) == "" {
				return true
			}
			addr, err := mail.ParseAddress(s)
			if err != nil || addr.Address != s {
				return false
			}
			local, domain, found := strings.Cut(addr.Address, "@")
			if !found || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
		},
	}
}
