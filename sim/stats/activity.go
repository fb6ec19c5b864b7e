package stats

import "github.com/flowsim/flowsim/sim"

// Window is the time span an activity has to be staffed.
type Window struct {
	Open  float64 `yaml:"open"`
	Close float64 `yaml:"close"`
}

// Band pairs an opening percentile with the mirrored closing percentile,
// e.g. the 5th percentile of openings with the 95th of closings.
type Band struct {
	Coverage float64 `yaml:"coverage"` // 95, 90, 75 or 50
	Open     float64 `yaml:"open"`
	Close    float64 `yaml:"close"`
}

// bandCoverages are the Gantt bands drawn per category.
var bandCoverages = []float64{95, 90, 75, 50}

// OpeningWindow returns the 5th percentile of first admissions and the 95th
// percentile of last departures over all categories and runs. Runs in which
// a category never reached the activity are left out; with no data at all
// both ends are 0.
func OpeningWindow(a sim.ActivityStats, categories []string) Window {
	var opens, closes []float64
	for _, cat := range categories {
		opens = append(opens, sim.SeenTimes(a.FirstAdmissions[cat])...)
		closes = append(closes, sim.SeenTimes(a.LastDepartures[cat])...)
	}
	return Window{
		Open:  Percentile(opens, LowPercentile),
		Close: Percentile(closes, HighPercentile),
	}
}

// GanttBands returns the bands of one category as the mirrored percentile
// pairs (5,95), (10,90), (25,75) and (50,50) of openings and closings.
func GanttBands(a sim.ActivityStats, category string) []Band {
	opens := sim.SeenTimes(a.FirstAdmissions[category])
	closes := sim.SeenTimes(a.LastDepartures[category])
	bands := make([]Band, 0, len(bandCoverages))
	for _, c := range bandCoverages {
		low := 100 - c
		bands = append(bands, Band{
			Coverage: c,
			Open:     Percentile(opens, low),
			Close:    Percentile(closes, 100-low),
		})
	}
	return bands
}

// VisitsPerRun returns the average number of teams served per run.
func VisitsPerRun(a sim.ActivityStats) float64 {
	counts := make([]float64, len(a.Waits))
	for i, w := range a.Waits {
		counts[i] = float64(len(w))
	}
	return Average(counts, DefaultDecimals)
}

// CompletionTimes returns the completion times of the runs in which the team
// reached the finish.
func CompletionTimes(t sim.TeamStats) []float64 {
	return sim.SeenTimes(t.Completions)
}
