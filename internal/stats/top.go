package stats

import (
	"sort"

	"github.com/verte-zerg/sysyrt/internal/model"
)

// SlowestRuns returns the top N runs by timed total, slowest first.
func SlowestRuns(runs []model.Run, n int) []model.Run {
	if n <= 0 || len(runs) == 0 {
		return nil
	}
	items := make([]model.Run, len(runs))
	copy(items, runs)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].TotalUs == items[j].TotalUs {
			return items[i].ID < items[j].ID
		}
		return items[i].TotalUs > items[j].TotalUs
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
