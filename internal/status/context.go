package status

import "context"

type contextKey string

const (
	frameIDKey contextKey = "frame_id"
	passKey    contextKey = "pass"
)

// WithFrameID annotates context with the frame identifier.
func WithFrameID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, frameIDKey, id)
}

// FrameIDFromContext extracts the frame identifier if present.
func FrameIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(frameIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPass annotates context with the 1-based pass number.
func WithPass(ctx context.Context, pass int) context.Context {
	if pass <= 0 {
		return ctx
	}
	return context.WithValue(ctx, passKey, pass)
}

// PassFromContext returns the pass number if present.
func PassFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(passKey).(int)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}
