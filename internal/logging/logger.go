package logging

import (
	"log/slog"
	"os"
)

// Setup installs the initial process-wide slog logger, JSON to stdout. Once
// the database is connected main swaps in the fan-out handler so errors also
// land in system_logs.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
