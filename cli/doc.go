// Package cli contains the command line interface for kdlhtml.
//
// # Usage
//
// The default command renders a KDL document and writes HTML to stdout:
//
//	kdlhtml index.kdl > index.html
//	kdlhtml -b title=Home -I partials -o index.html -d index.d index.kdl
//	kdlhtml - < index.kdl
//
// Variables come from the environment (-e), binding files (-E, one of
// dotenv, YAML, JSON or TOML by extension) and explicit NAME=VALUE bindings
// (-b), in increasing precedence.
//
// # Configuration
//
// Global flags may be set in config.kdl under the user configuration
// directory, one node per flag. The init command writes the current values:
//
//	kdlhtml --log-level=debug init
//
// A config.json beside it is also read. Command-line flags take precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (rfc3339, kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
