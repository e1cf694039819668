// Package logger builds *slog.Logger values for the forms runtime.
//
// New takes functional options for the level, the output format and static
// attributes, and wraps the handler so that values stored in the context, such
// as the entity being validated, are added to every record:
//
//	log := logger.New(logger.WithEnvironment("development", "formdemo"))
//	ctx := logger.WithEntityID(ctx, form.ID())
//	log.InfoContext(ctx, "pass finished", logger.Property("ValidTo"))
//
// Attribute helpers keep key names consistent across packages. Error returns
// an empty attribute for a nil error, so it can be passed without a nil check.
package logger
