package shader

import (
	"log/slog"
	"os"
)

// logLevel controls the level of the package default logger.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging of program lifecycle events.
// Call this from main() after loading configuration.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// defaultLogger writes shader diagnostics to stderr.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
