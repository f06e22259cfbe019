package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/kdlhtml/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelInfo))
	logger.Info("render complete", slog.Int("bytes", 512))
	// Output:
	// INFO render complete bytes=512
}

func Example_levels() {
	logger := log.Make(os.Stdout)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("unresolved include", slog.String("path", "nav.kdl"))
	// Output:
	// WARN unresolved include path=nav.kdl
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelDebug)).
		With(slog.String("file", "index.kdl"))

	logger.Debug("evaluate node", slog.String("name", "div"))
	// Output:
	// DEBUG evaluate node file=index.kdl name=div
}
