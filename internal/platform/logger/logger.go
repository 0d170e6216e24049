package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON output so the surrounding platform can
// ship and index records without parsing.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
