package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/sysyrt/internal/model"
	"github.com/verte-zerg/sysyrt/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
		run := model.Run{
			Program:   "./bench",
			StartedAt: start,
			EndedAt:   start.Add(time.Second),
			WallUs:    1000000,
			TotalUs:   int64(i+1) * 100,
		}
		timers := []model.TimerRecord{{Index: 1, Micros: int64(i+1) * 100}}
		id, err := st.InsertRun(ctx, run, timers)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	report, err := BuildReport(ctx, st, model.HistoryConfig{Program: "./bench", Last: 2, Top: 1})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(report.Runs))
	}
	if report.Runs[0].ID != ids[1] || report.Runs[1].ID != ids[2] {
		t.Fatalf("unexpected run ids: %+v", report.Runs)
	}
	if len(report.Timers) != 2 || len(report.Timers[ids[2]]) != 1 {
		t.Fatalf("unexpected timers: %+v", report.Timers)
	}
	if len(report.Slow) != 1 || report.Slow[0].ID != ids[2] {
		t.Fatalf("unexpected slowest runs: %+v", report.Slow)
	}

	var buf bytes.Buffer
	if err := RenderJSON(&buf, report); err != nil {
		t.Fatalf("render json: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"program": "./bench"`) || !strings.Contains(out, `"micros": 300`) {
		t.Fatalf("unexpected json output: %s", out)
	}
}
