package validator

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlCatalog is the document form of a catalog:
//
//	properties:
//	  - name: Email
//	    summary: 2
//	    rules:
//	      - kind: required
//	        message: enter an email
//	      - kind: email
//	  - name: Age
//	    rules:
//	      - kind: between
//	        min: 18
//	        max: 120
//	  - name: ValidTo
//	    rules:
//	      - kind: condition
//	        predicate: ToAfterFrom
//	        message: valid to must not be before valid from
type yamlCatalog struct {
	Properties []yamlProperty `yaml:"properties"`
}

type yamlProperty struct {
	Name      string     `yaml:"name"`
	Summary   *int       `yaml:"summary"`
	InSummary bool       `yaml:"in_summary"`
	Rules     []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Kind        string   `yaml:"kind"`
	Message     string   `yaml:"message"`
	Key         string   `yaml:"key"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Length      int      `yaml:"length"`
	Pattern     string   `yaml:"pattern"`
	Description string   `yaml:"description"`
	Values      []string `yaml:"values"`
	Field       string   `yaml:"field"`
	Predicate   string   `yaml:"predicate"`
}

// ParseYAML builds a catalog from a YAML document. Condition rules are resolved
// against predicates.
func ParseYAML(data []byte, predicates map[string]Predicate) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	if len(doc.Properties) == 0 {
		return nil, fmt.Errorf("%w: no properties declared", ErrInvalidCatalog)
	}

	b := NewBuilder()
	for name, fn := range predicates {
		b.Predicate(name, fn)
	}

	var errs []error
	for _, yp := range doc.Properties {
		p := b.Property(yp.Name)
		switch {
		case yp.Summary != nil:
			p.Summary(*yp.Summary)
		case yp.InSummary:
			p.InSummary()
		}

		for i, yr := range yp.Rules {
			if yr.Kind == "condition" {
				p.Condition(yr.Predicate, yr.Message)
				continue
			}
			rule, err := yr.rule()
			if err != nil {
				errs = append(errs, fmt.Errorf("property %q rule %d: %w", yp.Name, i, err))
				continue
			}
			if yr.Message != "" {
				rule = rule.WithMessage(yr.Message)
			}
			if yr.Key != "" {
				rule = rule.WithKey(yr.Key)
			}
			p.Rule(rule)
		}
	}

	c, err := b.Build()
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func (yr yamlRule) rule() (Rule, error) {
	switch yr.Kind {
	case "required":
		return Required(), nil
	case "required_string":
		return RequiredString(), nil
	case "min_length":
		return MinLen(yr.Length), nil
	case "max_length":
		return MaxLen(yr.Length), nil
	case "min":
		if yr.Min == nil {
			return Rule{}, fmt.Errorf("%w: min requires a min value", ErrInvalidCatalog)
		}
		return Min(*yr.Min), nil
	case "max":
		if yr.Max == nil {
			return Rule{}, fmt.Errorf("%w: max requires a max value", ErrInvalidCatalog)
		}
		return Max(*yr.Max), nil
	case "between":
		if yr.Min == nil || yr.Max == nil {
			return Rule{}, fmt.Errorf("%w: between requires min and max", ErrInvalidCatalog)
		}
		return Between(*yr.Min, *yr.Max), nil
	case "pattern":
		return CompilePattern(yr.Pattern, yr.Description)
	case "email":
		return Email(), nil
	case "in_list":
		return InList(yr.Values...), nil
	case "not_after_field":
		return NotAfterField(yr.Field), nil
	case "not_before_field":
		return NotBeforeField(yr.Field), nil
	default:
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRuleKind, yr.Kind)
	}
}
