package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger every component receives. Debug
// level in dev, info elsewhere; records passed a context inside a
// span get trace ids stamped on via the trace handler.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
