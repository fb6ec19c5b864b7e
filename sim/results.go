package sim

import "github.com/flowsim/flowsim/sim/trace"

// ActivityStats is a read-only copy of an activity's cross-run accumulators.
type ActivityStats struct {
	Name            string               `yaml:"name"`
	Capacity        int                  `yaml:"capacity"`
	Service         *ServiceRange        `yaml:"service,omitempty"`
	FirstAdmissions map[string][]Instant `yaml:"first_admissions"`
	LastDepartures  map[string][]Instant `yaml:"last_departures"`
	Waits           [][]float64          `yaml:"waits"`
	MaxQueue        []int                `yaml:"max_queue"`
}

// TeamStats is a read-only copy of a team's cross-run accumulators.
type TeamStats struct {
	Name        string      `yaml:"name"`
	Category    string      `yaml:"category"`
	Course      string      `yaml:"course"`
	StartTime   float64     `yaml:"start_time"`
	Waits       [][]float64 `yaml:"waits"`
	Completions []Instant   `yaml:"completions"`
}

// Results is what a scenario execution hands to reporting and plotting.
type Results struct {
	Scenario   string                 `yaml:"scenario"`
	Runs       int                    `yaml:"runs"`
	Categories []string               `yaml:"categories"`
	Activities []ActivityStats        `yaml:"activities"`
	Teams      []TeamStats            `yaml:"teams"`
	Trace      *trace.SimulationTrace `yaml:"-"`
}

// Activity returns the statistics of the named activity.
func (r *Results) Activity(name string) (ActivityStats, bool) {
	for _, a := range r.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return ActivityStats{}, false
}

// Team returns the statistics of the named team.
func (r *Results) Team(name string) (TeamStats, bool) {
	for _, t := range r.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return TeamStats{}, false
}

func newResults(sc *Scenario, teams []*Team, runs int, st *trace.SimulationTrace) *Results {
	res := &Results{
		Scenario:   sc.Name,
		Runs:       runs,
		Categories: append([]string(nil), sc.Categories...),
		Activities: make([]ActivityStats, 0, len(sc.Activities)),
		Teams:      make([]TeamStats, 0, len(teams)),
		Trace:      st,
	}
	for _, a := range sc.Activities {
		as := ActivityStats{
			Name:            a.Name,
			Capacity:        a.Capacity,
			FirstAdmissions: copyInstantMap(a.FirstAdmissions),
			LastDepartures:  copyInstantMap(a.LastDepartures),
			Waits:           copyLists(a.Waits),
			MaxQueue:        append([]int(nil), a.MaxQueue...),
		}
		if a.Service != nil {
			s := *a.Service
			as.Service = &s
		}
		res.Activities = append(res.Activities, as)
	}
	for _, t := range teams {
		res.Teams = append(res.Teams, TeamStats{
			Name:        t.Name,
			Category:    t.Category,
			Course:      t.Course.Name,
			StartTime:   t.StartTime,
			Waits:       copyLists(t.Waits),
			Completions: append([]Instant(nil), t.Completions...),
		})
	}
	return res
}

func copyLists(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, l := range in {
		out[i] = append([]float64{}, l...)
	}
	return out
}

func copyInstantMap(in map[string][]Instant) map[string][]Instant {
	out := make(map[string][]Instant, len(in))
	for k, v := range in {
		out[k] = append([]Instant{}, v...)
	}
	return out
}
