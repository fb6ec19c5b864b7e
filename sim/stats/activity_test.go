package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowsim/flowsim/sim"
)

func seen(at float64) sim.Instant { return sim.Instant{At: at, Seen: true} }

func TestOpeningWindow_IgnoresAbsentRuns(t *testing.T) {
	// GIVEN an activity reached by V in two runs and by S in one
	a := sim.ActivityStats{
		Name: "Post 1",
		FirstAdmissions: map[string][]sim.Instant{
			"V": {seen(500), seen(510)},
			"S": {{}, seen(540)},
		},
		LastDepartures: map[string][]sim.Instant{
			"V": {seen(700), seen(720)},
			"S": {{}, seen(760)},
		},
	}

	// WHEN the opening window is computed
	w := OpeningWindow(a, []string{"V", "S"})

	// THEN absent runs do not pull the window toward midnight
	assert.InDelta(t, Percentile([]float64{500, 510, 540}, 5), w.Open, 1e-9)
	assert.InDelta(t, Percentile([]float64{700, 720, 760}, 95), w.Close, 1e-9)
}

func TestOpeningWindow_NoVisits_Zero(t *testing.T) {
	a := sim.ActivityStats{
		FirstAdmissions: map[string][]sim.Instant{"V": {{}, {}}},
		LastDepartures:  map[string][]sim.Instant{"V": {{}, {}}},
	}
	assert.Equal(t, Window{}, OpeningWindow(a, []string{"V"}))
}

func TestGanttBands_MirroredPercentiles(t *testing.T) {
	a := sim.ActivityStats{
		FirstAdmissions: map[string][]sim.Instant{"V": {seen(10), seen(20), seen(30), seen(40), seen(50)}},
		LastDepartures:  map[string][]sim.Instant{"V": {seen(110), seen(120), seen(130), seen(140), seen(150)}},
	}

	bands := GanttBands(a, "V")

	assert.Len(t, bands, 4)
	assert.Equal(t, 95.0, bands[0].Coverage)
	assert.InDelta(t, 12, bands[0].Open, 1e-9)
	assert.InDelta(t, 148, bands[0].Close, 1e-9)
	assert.Equal(t, 50.0, bands[3].Coverage)
	assert.InDelta(t, 30, bands[3].Open, 1e-9)
	assert.InDelta(t, 130, bands[3].Close, 1e-9)
}

func TestVisitsPerRun(t *testing.T) {
	a := sim.ActivityStats{Waits: [][]float64{{0, 1, 2}, {0}}}
	assert.Equal(t, 2.0, VisitsPerRun(a))
	assert.Equal(t, 0.0, VisitsPerRun(sim.ActivityStats{}))
}

func TestCompletionTimes_ExcludesUnfinishedRuns(t *testing.T) {
	team := sim.TeamStats{Completions: []sim.Instant{seen(900), {}, seen(930)}}
	assert.Equal(t, []float64{900, 930}, CompletionTimes(team))
}
