package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID tags ctx so that timings logged under it can be correlated.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// Time logs the duration of an operation at debug level. Call the returned
// func with a pointer to the operation's error, typically via defer.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			slog.WarnContext(ctx, "op failed", "run_id", runID, "op", name, "dur", dur, "error", *errp)
			return
		}
		slog.DebugContext(ctx, "op done", "run_id", runID, "op", name, "dur", dur)
	}
}
