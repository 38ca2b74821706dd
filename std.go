package sysyrt

import "sync"

var (
	stdMu sync.Mutex
	std   *Runtime
)

// Init replaces the default runtime used by the package-level functions.
// A runtime that was never shut down is discarded without a report.
func Init(opts ...Option) *Runtime {
	rt := New(opts...)
	stdMu.Lock()
	std = rt
	stdMu.Unlock()
	return rt
}

// Default returns the default runtime, creating it on first use.
func Default() *Runtime {
	stdMu.Lock()
	defer stdMu.Unlock()
	if std == nil {
		std = New()
	}
	return std
}

// Shutdown writes the default runtime's timer report.
func Shutdown() error {
	return Default().Shutdown()
}

// Getint reads a decimal integer from the default runtime.
func Getint() int32 { return Default().Getint() }

// Getch reads one character from the default runtime.
func Getch() int32 { return Default().Getch() }

// Getarray reads an array from the default runtime.
func Getarray(a []int32) (int32, error) { return Default().Getarray(a) }

// Putint writes an integer to the default runtime.
func Putint(v int32) error { return Default().Putint(v) }

// Putch writes a character to the default runtime.
func Putch(c int32) error { return Default().Putch(c) }

// Putarray writes an array to the default runtime.
func Putarray(n int32, a []int32) error { return Default().Putarray(n, a) }

// Starttime begins a timed interval on the default runtime.
func Starttime() { Default().Starttime() }

// Stoptime ends a timed interval on the default runtime.
func Stoptime() error { return Default().Stoptime() }

// Run initializes the default runtime, calls main, and shuts the runtime down
// whether main returns or panics. A panic continues after the report is
// written. The result is main's return value reduced to an exit status.
func Run(main func() int32, opts ...Option) int {
	rt := Init(opts...)
	defer func() {
		// Also runs while a panic unwinds.
		_ = rt.Shutdown()
	}()
	return int(uint8(main()))
}
