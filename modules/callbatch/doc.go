// Package callbatch implements the mystery call batch form: the filter that
// selects contacts for a batch of quality-check calls.
//
// The form requires a contact state and a first-status-change window. A batch
// can be created only while the form is valid:
//
//	form, _ := callbatch.New(source)
//	if err := form.Load(ctx); err != nil {
//		return err
//	}
//	form.SetWindow(from, to)
//	n, err := form.CreateBatch(ctx)
//
// The outcome of the last batch is kept in Result; ResultVisible follows it.
package callbatch
