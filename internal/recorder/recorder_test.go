package recorder

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/verte-zerg/sysyrt/internal/timer"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRecordParsesReport(t *testing.T) {
	sh := requireShell(t)
	script := `read n; echo "got $n"; printf 'Timer: 0H-0M-1S-5us\nwarning: x\nTimer: 0H-0M-0S-20us\nTOTAL: 0H-0M-1S-25us\n' >&2; exit 3`
	var stdout, stderr bytes.Buffer
	res, err := Record(context.Background(), Command{
		Path:   sh,
		Args:   []string{"-c", script},
		Stdin:  strings.NewReader("7\n"),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if stdout.String() != "got 7\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "warning: x\n") || !strings.HasSuffix(stderr.String(), "TOTAL: 0H-0M-1S-25us\n") {
		t.Fatalf("stderr not passed through: %q", stderr.String())
	}
	if res.Run.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.Run.ExitCode)
	}
	if !res.HasReport || len(res.Intervals) != 2 {
		t.Fatalf("unexpected report: %+v", res)
	}
	if res.Total != (timer.Slot{Seconds: 1, Micros: 25}) || res.Run.TotalUs != 1000025 {
		t.Fatalf("unexpected total %+v (%d us)", res.Total, res.Run.TotalUs)
	}
	timers := res.Timers()
	if len(timers) != 2 || timers[0].Index != 1 || timers[1].Index != 2 || timers[1].Micros != 20 {
		t.Fatalf("unexpected timer records %+v", timers)
	}
	if res.Run.WallUs < 0 || res.Run.EndedAt.Before(res.Run.StartedAt) {
		t.Fatalf("unexpected wall time %+v", res.Run)
	}
}

func TestRecordWithoutTotalSumsIntervals(t *testing.T) {
	sh := requireShell(t)
	var stderr bytes.Buffer
	res, err := Record(context.Background(), Command{
		Path:   sh,
		Args:   []string{"-c", `printf 'Timer: 0H-0M-59S-999999us\nTimer: 0H-0M-0S-1us' >&2`},
		Stdin:  strings.NewReader(""),
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if res.HasReport {
		t.Fatalf("expected no TOTAL line")
	}
	if res.Total != (timer.Slot{Minutes: 1}) {
		t.Fatalf("unexpected summed total %+v", res.Total)
	}
	if res.Run.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", res.Run.ExitCode)
	}
}

func TestRecordMissingProgram(t *testing.T) {
	_, err := Record(context.Background(), Command{Path: "/nonexistent/sysyrt-program"})
	if err == nil {
		t.Fatalf("expected error for missing program")
	}
	if _, err := Record(context.Background(), Command{}); err == nil {
		t.Fatalf("expected error for empty command")
	}
}
