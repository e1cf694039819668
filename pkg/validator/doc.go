// Package validator declares validation rules for dynamic entities and
// evaluates them against a snapshot of the entity's property values.
//
// A Rule is a predicate over one property's value plus a translation-friendly
// ValidationError template. Rules receive the whole Snapshot as well, so a rule
// may look at other properties of the same entity (cross-field rules). Rules
// are grouped per property in a Catalog which is built once, never mutated
// afterwards and therefore safe to share between goroutines.
//
// # Declaring rules
//
// Catalogs are declared explicitly with a Builder:
//
//	catalog, err := validator.Define(func(b *validator.Builder) {
//	    b.Property("ValidFrom").
//	        Required("enter a date").
//	        Condition("FromBeforeTo", "valid from must not be after valid to").
//	        Summary(1)
//	    b.Property("ValidTo").Rule(validator.NotBeforeField("ValidFrom"))
//
//	    b.Predicate("FromBeforeTo", func(v any, s validator.Snapshot) bool {
//	        from, ok1 := v.(time.Time)
//	        to, ok2 := validator.Field[time.Time](s, "ValidTo")
//	        return !ok1 || !ok2 || !from.After(to)
//	    })
//	})
//
// Named conditions are resolved when the catalog is built. A condition that
// names an unknown predicate, or a rule attached to a property that was never
// declared, is a configuration error returned by Build; it never shows up as a
// validation failure.
//
// Entity types implement Declarer and obtain their catalog through
// CatalogFor, which builds it on first use and caches it for the lifetime of
// the process. Untyped entities can be declared as data with ParseYAML.
//
// # Evaluation
//
// Catalog.Evaluate runs every rule in declaration order and returns the
// failures as ValidationErrors. A Required rule that fails stops evaluation of
// the remaining rules of its property. A rule that panics aborts the whole
// evaluation with an *EvaluationError; no partial result is returned.
//
// # Built-in rules
//
// Required, RequiredString, MinLen, MaxLen, Min, Max, Between, Pattern, Email,
// InList, NotBefore, NotAfter, NotBeforeField and NotAfterField. Apart from the
// required rules, built-in rules treat a missing value as valid.
package validator
