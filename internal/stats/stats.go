// Package stats contains run history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/sysyrt/internal/model"
	"github.com/verte-zerg/sysyrt/internal/timer"
)

// FormatMicros renders a microsecond count as <H>H-<M>M-<S>S-<US>us.
func FormatMicros(us int64) string {
	return timer.FromMicros(us).String()
}

// RenderSummary prints aggregate figures for runs.
func RenderSummary(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var totalTimed, totalWall int64
	bestTimed := runs[0].TotalUs
	failed := 0
	for _, r := range runs {
		totalTimed += r.TotalUs
		totalWall += r.WallUs
		if r.TotalUs < bestTimed {
			bestTimed = r.TotalUs
		}
		if r.ExitCode != 0 {
			failed++
		}
	}
	count := int64(len(runs))
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d (%d non-zero exit)", len(runs), failed),
		fmt.Sprintf("Avg timed: %s", FormatMicros(totalTimed/count)),
		fmt.Sprintf("Best timed: %s", FormatMicros(bestTimed)),
		fmt.Sprintf("Avg wall: %s", FormatMicros(totalWall/count)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RunRows builds table cells for runs, newest last.
func RunRows(runs []model.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.EndedAt.Local().Format("2006-01-02 15:04:05"),
			commandLine(r),
			fmt.Sprintf("%d", r.ExitCode),
			FormatMicros(r.TotalUs),
			FormatMicros(r.WallUs),
		})
	}
	return rows
}

// RunHeaders are the column titles matching RunRows.
var RunHeaders = []string{"ID", "Ended", "Program", "Exit", "Timed", "Wall"}

// RenderRunTable prints one row per run.
func RenderRunTable(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Runs"); err != nil {
		return err
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(RunHeaders, RunRows(runs), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTimers prints the interval report of a single run.
func RenderTimers(w io.Writer, run model.Run, timers []model.TimerRecord) error {
	if _, err := fmt.Fprintf(w, "Run %d: %s\n", run.ID, commandLine(run)); err != nil {
		return err
	}
	slots := make([]timer.Slot, len(timers))
	for i, tr := range timers {
		slots[i] = timer.Slot{Hours: tr.Hours, Minutes: tr.Minutes, Seconds: tr.Seconds, Micros: tr.Micros}
	}
	return timer.WriteReport(w, slots, timer.FromMicros(run.TotalUs))
}

func commandLine(r model.Run) string {
	if len(r.Args) == 0 {
		return r.Program
	}
	return r.Program + " " + strings.Join(r.Args, " ")
}
