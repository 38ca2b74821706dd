// Package sysyrt is the runtime support library for compiled SysY programs.
//
// A Runtime owns the program's integer and character I/O and its interval
// timers. Shutdown writes the timer report to the error stream and must run
// on every exit path; Run arranges that for a program's main function.
package sysyrt

import (
	"io"
	"sync"

	"github.com/verte-zerg/sysyrt/internal/sysio"
	"github.com/verte-zerg/sysyrt/internal/timer"
)

var (
	// ErrCapacityExceeded is returned when an array does not fit its buffer.
	ErrCapacityExceeded = sysio.ErrCapacityExceeded
	// ErrTimerCapacityExceeded is returned by Stoptime once every timer slot is used.
	ErrTimerCapacityExceeded = timer.ErrCapacityExceeded
)

// Clock returns the current instant.
type Clock = timer.Clock

// Slot is one elapsed interval in hours, minutes, seconds and microseconds.
type Slot = timer.Slot

// Report is a snapshot of the recorded timer intervals.
type Report struct {
	Intervals []Slot
	Total     Slot
}

type options struct {
	in       io.Reader
	out      io.Writer
	report   io.Writer
	capacity int
	clock    Clock
}

// Option configures a Runtime.
type Option func(*options)

// WithInput sets the stream read by Getint, Getch and Getarray.
func WithInput(r io.Reader) Option {
	return func(o *options) { o.in = r }
}

// WithOutput sets the stream written by Putint, Putch and Putarray.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithReportOutput sets the stream receiving the timer report.
func WithReportOutput(w io.Writer) Option {
	return func(o *options) { o.report = w }
}

// WithTimerCapacity sets the number of timer slots, including the total slot.
// Values of zero or less keep the default; 1 is raised to 2.
func WithTimerCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithClock replaces the wall clock used by the timers.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// Runtime holds the I/O and timer state of one program execution.
type Runtime struct {
	mu     sync.Mutex
	io     *sysio.IO
	timers *timer.Table
	report io.Writer

	shutdown    bool
	shutdownErr error
}

// New returns a Runtime. Streams default to the process's standard descriptors.
func New(opts ...Option) *Runtime {
	o := options{
		in:       sysio.Stdin(),
		out:      sysio.Stdout(),
		report:   sysio.Stderr(),
		capacity: timer.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Runtime{
		io:     sysio.New(o.in, o.out),
		timers: timer.New(o.capacity, o.clock),
		report: o.report,
	}
}

// Getint reads a decimal integer.
func (r *Runtime) Getint() int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.io.ReadInt()
}

// Getch reads one character, honoring the character left over by Getint.
// The byte is sign-extended like a C char, so bytes from 0x80 up are negative.
func (r *Runtime) Getch() int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int32(int8(r.io.ReadChar()))
}

// Getarray reads a count followed by that many integers into a.
func (r *Runtime) Getarray(a []int32) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.io.ReadArray(a)
}

// Putint writes v in decimal.
func (r *Runtime) Putint(v int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.io.WriteInt(v)
}

// Putch writes the low byte of c.
func (r *Runtime) Putch(c int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.io.WriteChar(byte(c))
}

// Putarray writes n elements of a as "n: a0 a1 ...".
func (r *Runtime) Putarray(n int32, a []int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.io.WriteArray(n, a)
}

// Starttime begins a timed interval.
func (r *Runtime) Starttime() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers.Start()
}

// Stoptime ends the current interval and records it.
func (r *Runtime) Stoptime() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timers.Stop()
}

// Err returns the first I/O failure seen, including end of input.
func (r *Runtime) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.io.Err()
}

// Snapshot returns the intervals recorded so far.
func (r *Runtime) Snapshot() Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Report{Intervals: r.timers.Intervals(), Total: r.timers.Total()}
}

// Shutdown writes the timer report. Only the first call writes; later calls
// return the first call's result.
func (r *Runtime) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shutdown {
		return r.shutdownErr
	}
	r.shutdown = true
	r.shutdownErr = r.timers.WriteReport(r.report)
	return r.shutdownErr
}
