package validator

import (
	"slices"
)

// Catalog is the immutable set of rules and summary positions of one entity type.
// It is safe for concurrent use.
type Catalog struct {
	properties []string
	rules      map[string][]Rule
	summary    map[string]int
}

// Properties returns the declared property names in declaration order.
func (c *Catalog) Properties() []string {
	return slices.Clone(c.properties)
}

// Rules returns the rules of a property in evaluation order.
func (c *Catalog) Rules(property string) []Rule {
	return slices.Clone(c.rules[property])
}

// HasRules reports whether any rule is declared for property.
func (c *Catalog) HasRules(property string) bool {
	return len(c.rules[property]) > 0
}

// SummaryOrder returns the summary position of property and whether the
// property takes part in the summary at all.
func (c *Catalog) SummaryOrder(property string) (int, bool) {
	order, ok := c.summary[property]
	return order, ok
}

// Evaluate runs every rule against s. Failures are returned grouped by property
// in declaration order, and within a property in rule order. A panicking rule
// aborts the evaluation with an *EvaluationError.
func (c *Catalog) Evaluate(s Snapshot) (ValidationErrors, error) {
	var errs ValidationErrors

	for _, property := range c.properties {
		value := s.Get(property)
		for _, rule := range c.rules[property] {
			ok, err := check(property, rule, value, s)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
			errs.Add(rule.failure(property))
			if rule.Stop {
				break
			}
		}
	}

	return errs, nil
}

func check(property string, rule Rule, value any, s Snapshot) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EvaluationError{Property: property, Rule: rule.Name, Panic: r}
		}
	}()
	return rule.Check(value, s), nil
}
