// Package timer accumulates wall-clock intervals into a fixed table of slots.
package timer

import (
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	// DefaultCapacity is the number of slots in a table, including the aggregate slot.
	DefaultCapacity = 1024
	// MinCapacity holds the aggregate slot and one interval.
	MinCapacity = 2
)

const (
	microsPerSecond = 1000000
	secondsPerMin   = 60
	minutesPerHour  = 60
)

// ErrCapacityExceeded is returned by Stop when every interval slot is used.
var ErrCapacityExceeded = errors.New("timer capacity exceeded")

// Clock returns the current instant.
type Clock func() time.Time

// Slot is an elapsed duration split into normalized fields.
type Slot struct {
	Hours   int64
	Minutes int64
	Seconds int64
	Micros  int64
}

// AddMicros adds us microseconds and carries into the larger fields.
func (s *Slot) AddMicros(us int64) {
	s.Micros += us
	s.normalize()
}

// Add adds another slot field by field and carries.
func (s *Slot) Add(o Slot) {
	s.Hours += o.Hours
	s.Minutes += o.Minutes
	s.Seconds += o.Seconds
	s.Micros += o.Micros
	s.normalize()
}

func (s *Slot) normalize() {
	s.Seconds += s.Micros / microsPerSecond
	s.Micros %= microsPerSecond
	s.Minutes += s.Seconds / secondsPerMin
	s.Seconds %= secondsPerMin
	s.Hours += s.Minutes / minutesPerHour
	s.Minutes %= minutesPerHour
}

// TotalMicros returns the slot as a single microsecond count.
func (s Slot) TotalMicros() int64 {
	return ((s.Hours*minutesPerHour+s.Minutes)*secondsPerMin+s.Seconds)*microsPerSecond + s.Micros
}

// Duration converts the slot to a time.Duration.
func (s Slot) Duration() time.Duration {
	return time.Duration(s.TotalMicros()) * time.Microsecond
}

// String renders the slot as <H>H-<M>M-<S>S-<US>us.
func (s Slot) String() string {
	return fmt.Sprintf("%dH-%dM-%dS-%dus", s.Hours, s.Minutes, s.Seconds, s.Micros)
}

// FromMicros builds a normalized slot from a microsecond count.
func FromMicros(us int64) Slot {
	var s Slot
	s.AddMicros(us)
	return s
}

// Table records intervals between Start and Stop calls.
// Slot 0 holds the running sum of every recorded interval.
type Table struct {
	clock   Clock
	slots   []Slot
	cursor  int
	start   time.Time
	running bool
}

// New returns a table with the given capacity. A capacity of zero or less
// selects DefaultCapacity, a capacity of 1 is raised to MinCapacity, and a
// nil clock selects time.Now.
func New(capacity int, clock Clock) *Table {
	switch {
	case capacity <= 0:
		capacity = DefaultCapacity
	case capacity < MinCapacity:
		capacity = MinCapacity
	}
	if clock == nil {
		clock = time.Now
	}
	return &Table{
		clock:  clock,
		slots:  make([]Slot, capacity),
		cursor: 1,
		start:  clock(),
	}
}

// Start records the start of an interval. A second Start before Stop
// replaces the earlier start instant.
func (t *Table) Start() {
	t.start = t.clock()
	t.running = true
}

// Stop ends the current interval and records it in the next slot.
// Without a prior Start it measures from the previous start instant,
// or from table creation.
func (t *Table) Stop() error {
	end := t.clock()
	if t.cursor >= len(t.slots) {
		t.running = false
		return fmt.Errorf("%w: %d slots in use", ErrCapacityExceeded, len(t.slots)-1)
	}
	delta := end.Sub(t.start).Microseconds()
	if delta < 0 {
		delta = 0
	}
	t.slots[t.cursor].AddMicros(delta)
	t.slots[0].AddMicros(delta)
	t.cursor++
	t.running = false
	return nil
}

// Running reports whether Start was called without a matching Stop.
func (t *Table) Running() bool {
	return t.running
}

// Capacity returns the number of interval slots, excluding the aggregate.
func (t *Table) Capacity() int {
	return len(t.slots) - 1
}

// Intervals returns a copy of the recorded intervals in order.
func (t *Table) Intervals() []Slot {
	out := make([]Slot, t.cursor-1)
	copy(out, t.slots[1:t.cursor])
	return out
}

// Total returns the sum of all recorded intervals.
func (t *Table) Total() Slot {
	return t.slots[0]
}

// WriteReport writes one Timer line per interval followed by the TOTAL line.
func (t *Table) WriteReport(w io.Writer) error {
	return WriteReport(w, t.Intervals(), t.Total())
}

// WriteReport writes a report for the given intervals and total.
func WriteReport(w io.Writer, intervals []Slot, total Slot) error {
	for _, s := range intervals {
		if _, err := fmt.Fprintf(w, "%s %s\n", prefixTimer, s); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", prefixTotal, total); err != nil {
		return err
	}
	return nil
}
