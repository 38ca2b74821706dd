package stats

import (
	"testing"

	"github.com/verte-zerg/sysyrt/internal/model"
)

func TestSlowestRuns(t *testing.T) {
	runs := []model.Run{
		{ID: 1, TotalUs: 300},
		{ID: 2, TotalUs: 900},
		{ID: 3, TotalUs: 300},
	}
	top := SlowestRuns(runs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(top))
	}
	if top[0].ID != 2 || top[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", top)
	}
	if runs[0].ID != 1 || runs[1].ID != 2 {
		t.Fatalf("input was reordered: %+v", runs)
	}
	if SlowestRuns(runs, 0) != nil {
		t.Fatalf("expected nil for n = 0")
	}
}
