// Package validation runs validation passes for one entity instance and keeps
// the authoritative error state.
//
// An Engine evaluates a validator.Catalog against a live snapshot of property
// values and applies the result to its Aggregator as a diff: properties whose
// errors disappeared are removed first, then new or changed message lists are
// stored in catalog declaration order. Every applied change is reported to the
// errors-changed callback; unchanged lists are not reported.
//
// A Scheduler serializes passes per instance without blocking the caller:
//
//	engine := validation.NewEngine(catalog, validation.WithErrorsChanged(onChange))
//	sched := validation.NewScheduler(func(ctx context.Context) (validation.Report, error) {
//		return engine.Run(ctx, store.Snapshot)
//	})
//	future := sched.Schedule(ctx)
//	report, err := future.Await()
//
// Requests that arrive while a pass is running are coalesced into a single
// follow-up pass that reads the values current when it starts.
package validation
