package common

import "context"

type contextKey string

const (
	contextKeyRunID contextKey = "run_id"
)

// WithRunID adds the pipeline run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, contextKeyRunID, runID)
}

// RunIDFromContext extracts the pipeline run ID, or "" when absent.
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(contextKeyRunID).(string); ok {
		return runID
	}
	return ""
}
