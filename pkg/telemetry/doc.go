// Package telemetry sets up OpenTelemetry tracing for validation passes.
//
// InitTracer registers a global TracerProvider exporting to stdout
// (development) or OTLP/HTTP (production):
//
//	tp, err := telemetry.InitTracer(ctx, "formdemo", "stdout", "")
//	if err != nil {
//		return err
//	}
//	defer tp.Shutdown(ctx)
//
// Engines created afterwards pick the provider up through otel.GetTracerProvider.
package telemetry
