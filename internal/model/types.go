// Package model defines shared data structures.
package model

import "time"

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Program string
	Since   *time.Time
	Last    int
	Top     int
}

// Run captures one recorded execution of a compiled program.
type Run struct {
	ID        int64
	Program   string
	Args      []string
	StartedAt time.Time
	EndedAt   time.Time
	ExitCode  int
	WallUs    int64
	TotalUs   int64
}

// TimerRecord stores one reported interval of a run.
type TimerRecord struct {
	RunID   int64
	Index   int
	Hours   int64
	Minutes int64
	Seconds int64
	Micros  int64
}
