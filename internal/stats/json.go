package stats

import (
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonRun struct {
	ID        int64       `json:"id"`
	Program   string      `json:"program"`
	Args      []string    `json:"args,omitempty"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   time.Time   `json:"ended_at"`
	ExitCode  int         `json:"exit_code"`
	WallUs    int64       `json:"wall_us"`
	TotalUs   int64       `json:"total_us"`
	Timers    []jsonTimer `json:"timers"`
}

type jsonTimer struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
	Micros  int64 `json:"micros"`
}

// RenderJSON writes the report's runs and their timers as a JSON array.
func RenderJSON(w io.Writer, report Report) error {
	out := make([]jsonRun, 0, len(report.Runs))
	for _, r := range report.Runs {
		jr := jsonRun{
			ID:        r.ID,
			Program:   r.Program,
			Args:      r.Args,
			StartedAt: r.StartedAt,
			EndedAt:   r.EndedAt,
			ExitCode:  r.ExitCode,
			WallUs:    r.WallUs,
			TotalUs:   r.TotalUs,
			Timers:    []jsonTimer{},
		}
		for _, tr := range report.Timers[r.ID] {
			jr.Timers = append(jr.Timers, jsonTimer{
				Hours:   tr.Hours,
				Minutes: tr.Minutes,
				Seconds: tr.Seconds,
				Micros:  tr.Micros,
			})
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
