// Package wpfvalidation is a dynamic entity model with declarative,
// asynchronous validation.
//
// An entity is a bag of named properties. Every change schedules a validation
// pass off the calling goroutine; the pass evaluates the entity's rule catalog
// against a snapshot of the values, diffs the result against the known errors
// and notifies observers only about properties whose errors actually changed.
// The current errors and an ordered summary of them can be read at any time.
//
// Packages:
//
//   - pkg/property: the property store with change notification
//   - pkg/validator: rules, catalogs and the per-type catalog registry
//   - pkg/validation: the engine, error aggregator and pass scheduler
//   - pkg/entity: the entity composing the above, and its observers
//   - pkg/notify: notification feed, in memory or relayed through Redis
//   - pkg/i18n: message catalogs for translated error messages
//   - pkg/logger, pkg/config, pkg/telemetry: logging, configuration, tracing
//   - modules/agreement, modules/callbatch: example forms
//   - cmd/formdemo: command line driver for the example forms
//
// Declaring an entity type:
//
//	type Period struct{}
//
//	func (Period) DeclareRules(b *validator.Builder) {
//		b.Property("ValidFrom").
//			Required("required").
//			Condition("FromNotAfterTo", "from must not be after to").
//			Summary(1)
//		b.Predicate("FromNotAfterTo", func(v any, s validator.Snapshot) bool {
//			from, ok := v.(time.Time)
//			to, tok := validator.Field[time.Time](s, "ValidTo")
//			return !ok || !tok || !from.After(to)
//		})
//	}
//
//	e, err := entity.For[Period]()
//	e.Set("ValidTo", to)
//	e.Set("ValidFrom", from)
//	_, err = e.ForceValidate(ctx).Await()
//	fmt.Println(e.HasErrors(), e.SummaryText())
package wpfvalidation
