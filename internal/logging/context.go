package logging

import (
	"context"
	"log/slog"

	"framepass/internal/status"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldFrameID identifies the frame being resolved.
	FieldFrameID = "frame_id"
	// FieldPass is the 1-based pass number within a frame.
	FieldPass = "pass"
	// FieldFeatureType is the routed (kind, engine) tag, e.g. csc@sfc.
	FieldFeatureType = "feature_type"
	// FieldDecisionType names the kind of resolver decision being logged.
	FieldDecisionType = "decision_type"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
	// FieldErrorCode carries the status code of a failure.
	FieldErrorCode = "error_code"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := status.FrameIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFrameID, id))
	}
	if pass, ok := status.PassFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldPass, pass))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
