package stats

import (
	"context"

	"github.com/verte-zerg/sysyrt/internal/model"
	"github.com/verte-zerg/sysyrt/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Runs   []model.Run
	Timers map[int64][]model.TimerRecord
	Slow   []model.Run
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	timers, err := st.ListTimers(ctx, runIDs(runs))
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:   runs,
		Timers: timers,
		Slow:   SlowestRuns(runs, cfg.Top),
	}, nil
}

func runIDs(runs []model.Run) []int64 {
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
