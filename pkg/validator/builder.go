package validator

import (
	"errors"
	"fmt"
	"math"
)

// LastOrder is the summary order of properties declared in the summary without
// an explicit position. Such properties are listed after all ordered ones.
const LastOrder = math.MaxInt

// Builder collects rule declarations and turns them into an immutable Catalog.
// A Builder is not safe for concurrent use.
type Builder struct {
	order      []string
	props      map[string]*PropertyBuilder
	predicates map[string]Predicate
	errs       []error
}

// PropertyBuilder declares the rules and summary position of one property.
type PropertyBuilder struct {
	b       *Builder
	name    string
	rules   []declaredRule
	summary *int
}

type declaredRule struct {
	rule      Rule
	condition string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		props:      make(map[string]*PropertyBuilder),
		predicates: make(map[string]Predicate),
	}
}

// Property declares a property, or returns the existing declaration when the
// property was declared before. Declaration order is evaluation order.
func (b *Builder) Property(name string) *PropertyBuilder {
	if p, ok := b.props[name]; ok {
		return p
	}
	if name == "" {
		b.errs = append(b.errs, ErrEmptyPropertyName)
	}

	p := &PropertyBuilder{b: b, name: name}
	b.props[name] = p
	b.order = append(b.order, name)
	return p
}

// Predicate registers a named predicate that Condition rules refer to.
func (b *Builder) Predicate(name string, fn Predicate) *Builder {
	if _, ok := b.predicates[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicatePredicate, name))
		return b
	}
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: predicate %q", ErrNilCheck, name))
		return b
	}
	b.predicates[name] = fn
	return b
}

// Rules attaches rules to an already declared property.
func (b *Builder) Rules(property string, rules ...Rule) *Builder {
	p, ok := b.props[property]
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrUnknownProperty, property))
		return b
	}
	p.Rule(rules...)
	return b
}

// Summary places an already declared property in the error summary.
func (b *Builder) Summary(property string, order int) *Builder {
	p, ok := b.props[property]
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("%w: summary for %q", ErrUnknownProperty, property))
		return b
	}
	p.Summary(order)
	return b
}

// Build validates the declarations and returns the catalog. All configuration
// errors are reported at once.
func (b *Builder) Build() (*Catalog, error) {
	errs := append([]error(nil), b.errs...)

	c := &Catalog{
		properties: make([]string, 0, len(b.order)),
		rules:      make(map[string][]Rule, len(b.order)),
		summary:    make(map[string]int),
	}

	for _, name := range b.order {
		p := b.props[name]
		c.properties = append(c.properties, name)

		rules := make([]Rule, 0, len(p.rules))
		for _, d := range p.rules {
			rule := d.rule
			if d.condition != "" {
				fn, ok := b.predicates[d.condition]
				if !ok {
					errs = append(errs, fmt.Errorf("%w: property %q references %q", ErrUnresolvedCondition, name, d.condition))
					continue
				}
				rule.Check = fn
			}
			if rule.Check == nil {
				errs = append(errs, fmt.Errorf("%w: rule %q on property %q", ErrNilCheck, rule.Name, name))
				continue
			}
			rules = append(rules, rule)
		}
		if len(rules) > 0 {
			c.rules[name] = rules
		}

		if p.summary != nil {
			c.summary[name] = *p.summary
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Property continues the declaration chain with another property.
func (p *PropertyBuilder) Property(name string) *PropertyBuilder {
	return p.b.Property(name)
}

// Rule appends rules in evaluation order.
func (p *PropertyBuilder) Rule(rules ...Rule) *PropertyBuilder {
	for _, r := range rules {
		p.rules = append(p.rules, declaredRule{rule: r})
	}
	return p
}

// Required appends a required rule with a custom message.
func (p *PropertyBuilder) Required(message string) *PropertyBuilder {
	r := Required()
	if message != "" {
		r = r.WithMessage(message)
	}
	return p.Rule(r)
}

// Condition appends a cross-field rule evaluated by the named predicate.
// The predicate is resolved when the catalog is built.
func (p *PropertyBuilder) Condition(predicate, message string) *PropertyBuilder {
	p.rules = append(p.rules, declaredRule{
		condition: predicate,
		rule: Rule{
			Name: "condition:" + predicate,
			Error: ValidationError{
				Message:        message,
				TranslationKey: "validation.condition." + predicate,
			},
		},
	})
	return p
}

// Summary places the property in the error summary at the given order.
func (p *PropertyBuilder) Summary(order int) *PropertyBuilder {
	p.summary = &order
	return p
}

// InSummary places the property in the error summary after all ordered properties.
func (p *PropertyBuilder) InSummary() *PropertyBuilder {
	return p.Summary(LastOrder)
}

// Define builds a catalog from a declaration function without caching it.
func Define(declare func(*Builder)) (*Catalog, error) {
	b := NewBuilder()
	declare(b)
	return b.Build()
}
