// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured once, at creation, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339"),
//		log.WithCaller(true))
//
// Every level has a context-aware and a context-unaware method. The latter
// use [DefaultContextProvider], which returns [context.TODO] by default.
// Attributes are always [slog.Attr] values:
//
//	logger.InfoContext(ctx, "include", slog.String("path", path))
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Trace is below slog's debug level and prints as "TRACE".
//
// # Formats
//
// [FormatText] (default) and [FormatJSON]. With [WithPretty] enabled (the
// default) both are styled with lipgloss; styling degrades to plain text when
// the output is not a color-capable terminal.
//
// # Default logger
//
// The package-level functions log through a default logger that writes to
// standard error. Reconfigure it with [Config].
package log
