// Package profile provides optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof ./...
//
// Without the tag, [Profiler.Start] is a no-op and [Modes] is empty, and the
// CLI hides its profiling flags.
//
// A session writes one file named for the mode (cpu.pprof, mem.pprof, ...)
// into [Profiler.Dir]:
//
//	stop := profile.Profiler{Mode: "cpu", Dir: dir, Quiet: true}.Start()
//	defer stop.Stop()
//
// Inspect the result with
//
//	go tool pprof -http=: kdlhtml cpu.pprof
package profile
