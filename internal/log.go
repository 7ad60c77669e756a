package internal

import (
	"io"
	"log/slog"
)

// LogParams contains the parameters for logging console output and errors.
// These will vary depending on whether the scope runs in ticker or TUI mode.
// # Ticker mode
// - console output goes to stdout
// - error logs go to stderr
// # Scope (TUI) mode
// - console output is discarded, the alternate screen owns the terminal
// - error logs go to the log file `skysweep.log`
// .
type LogParams struct {
	ConsoleOut io.Writer
	ErrorOut   io.Writer
}

// NewLogger builds the error logger for the given mode.
func NewLogger(params LogParams) *slog.Logger {
	return slog.New(slog.NewTextHandler(params.ErrorOut, nil))
}
