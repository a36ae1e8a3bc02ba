// Package cli contains the command line interface for rollenv.
//
// # Usage
//
// The CLI provides three subcommands plus shared logging and profiling
// configuration:
//
//	rollenv roll '!roll 2d6 + 3'
//	rollenv repl
//	rollenv serve
//
// # Subcommands
//
//   - roll: evaluate a single statement and print its result
//   - repl: start an interactive terminal session
//   - serve: run the Discord bot front-end until interrupted
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// a flat YAML document and maps its keys onto Kong flags.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include callsite information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o rollenv .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/rollenv/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	rollenv --log-level=debug --pprof-mode=cpu roll '!roll 1d20'
//
//	# Text format with heap profiling
//	rollenv --log-format=text --pprof-mode=heap repl
package cli
