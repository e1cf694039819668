// Package entity composes a property store, a validation engine and a
// scheduler into the object forms are built on.
//
// Every Set that changes a value schedules a validation pass on a background
// goroutine and returns immediately. Passes of one entity never overlap, and
// a pass always reads the values current when it starts, so after the last
// pass completes the error state matches the last written values.
//
//	form, err := entity.For[Agreement]()
//	form.ObserveFunc(func(n entity.Notification) {
//		if n.Kind == entity.ErrorsChanged {
//			refresh(n.Property, form.GetErrors(n.Property))
//		}
//	})
//	form.Set("ValidTo", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
//	report, err := form.ForceValidate(ctx).Await()
//
// Observers run synchronously: property events on the goroutine that called
// Set, error and validation-state events on the validation worker. Observers
// may call Set, SetQuiet and every read method, but must not call Validate.
package entity
