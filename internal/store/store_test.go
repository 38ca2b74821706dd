package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/sysyrt/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0).UTC()
	programs := []string{"./fib", "./sort", "./fib"}
	var ids []int64
	for i, prog := range programs {
		start := base.Add(time.Duration(i) * time.Minute)
		run := model.Run{
			Program:   prog,
			Args:      []string{"-n", "10"},
			StartedAt: start,
			EndedAt:   start.Add(2 * time.Second),
			ExitCode:  i,
			WallUs:    2000000,
			TotalUs:   1500000,
		}
		timers := []model.TimerRecord{
			{Index: 1, Seconds: 1},
			{Index: 2, Micros: 500000},
		}
		id, err := st.InsertRun(ctx, run, timers)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{Program: "./fib"})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[0] || runs[1].ID != ids[2] {
		t.Fatalf("unexpected run order: %+v", runs)
	}
	if len(runs[1].Args) != 2 || runs[1].Args[1] != "10" {
		t.Fatalf("unexpected args: %v", runs[1].Args)
	}
	if runs[1].ExitCode != 2 || !runs[1].StartedAt.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("unexpected run fields: %+v", runs[1])
	}

	since := base.Add(90 * time.Second)
	runs, err = st.ListRuns(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list runs since: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != ids[2] {
		t.Fatalf("unexpected runs since filter: %+v", runs)
	}

	timers, err := st.ListTimers(ctx, ids[:2])
	if err != nil {
		t.Fatalf("list timers: %v", err)
	}
	if len(timers) != 2 {
		t.Fatalf("expected timers for 2 runs, got %d", len(timers))
	}
	got := timers[ids[1]]
	if len(got) != 2 || got[0].Seconds != 1 || got[1].Micros != 500000 {
		t.Fatalf("unexpected timers: %+v", got)
	}
}

func TestInsertRunWithoutArgsOrTimers(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Now()
	id, err := st.InsertRun(ctx, model.Run{Program: "a.out", StartedAt: now, EndedAt: now}, nil)
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
	runs, err := st.ListRuns(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != id || runs[0].Args != nil {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	timers, err := st.ListTimers(ctx, []int64{id})
	if err != nil {
		t.Fatalf("list timers: %v", err)
	}
	if len(timers[id]) != 0 {
		t.Fatalf("expected no timers, got %+v", timers[id])
	}
}

func TestListRunsOrdersByInstant(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ends := []time.Time{
		base.Add(500 * time.Millisecond),
		base,
		base.Add(-time.Second),
		// 11:30 at +02:00 is 09:30 UTC.
		time.Date(2024, 3, 1, 11, 30, 0, 0, time.FixedZone("CEST", 2*60*60)),
		base.Add(2 * time.Second).In(time.FixedZone("EST", -5*60*60)),
	}
	ids := make([]int64, len(ends))
	for i, end := range ends {
		id, err := st.InsertRun(ctx, model.Run{Program: "./p", StartedAt: end, EndedAt: end}, nil)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids[i] = id
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	want := []int64{ids[3], ids[2], ids[1], ids[0], ids[4]}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(runs))
	}
	for i, run := range runs {
		if run.ID != want[i] {
			t.Fatalf("position %d: expected run %d, got %d", i, want[i], run.ID)
		}
	}

	since := base
	runs, err = st.ListRuns(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list runs since: %v", err)
	}
	want = []int64{ids[1], ids[0], ids[4]}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs since %s, got %+v", len(want), since, runs)
	}
	for i, run := range runs {
		if run.ID != want[i] {
			t.Fatalf("since position %d: expected run %d, got %d", i, want[i], run.ID)
		}
	}
	if !runs[1].EndedAt.Equal(ends[0]) {
		t.Fatalf("expected fractional end %s, got %s", ends[0], runs[1].EndedAt)
	}
}
