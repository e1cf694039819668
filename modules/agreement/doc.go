// Package agreement implements the agent agreement form on top of the entity
// model.
//
// The form validates the validity window of an agreement and derives whether
// it may be saved:
//
//	form, err := agreement.New(storage)
//	if err != nil {
//		return err
//	}
//	defer form.Close()
//
//	if err := form.Load(ctx, agentID, nil); err != nil {
//		return err
//	}
//	form.SetValidFrom(time.Now())
//	form.SetType(&agreement.Type{ID: 1, Code: "gdpr"})
//
// CanSave is recomputed after every change of the error set and whenever the
// user's enabled flag changes. Save persists the agreement through Storage and
// reports the outcome in the info banner (UserInfoMessage).
package agreement
