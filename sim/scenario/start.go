package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"
)

// Start policies.
const (
	PolicyWaves = "waves"
	PolicyCron  = "cron"
	PolicyFixed = "fixed"
)

var validStartPolicies = map[string]bool{PolicyWaves: true, PolicyCron: true, PolicyFixed: true}

// StartSpec decides when the teams of a category set off.
//
//   - waves: PerWave teams start together at First, the next PerWave teams
//     Interval minutes later, and so on.
//   - cron: PerWave teams start at every activation of the five-field cron
//     expression Cron at or after First. Activations after midnight continue
//     on the next day, so times above 24:00 are reachable.
//   - fixed: team n starts at Times[n].
type StartSpec struct {
	Policy   string      `yaml:"policy"`
	First    ClockTime   `yaml:"first,omitempty"`
	PerWave  int         `yaml:"per_wave,omitempty"`
	Interval float64     `yaml:"interval,omitempty"`
	Cron     string      `yaml:"cron,omitempty"`
	Times    []ClockTime `yaml:"times,omitempty"`
}

// referenceDay anchors cron evaluation; only the offset from its midnight matters.
var referenceDay = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// cronParser accepts standard five-field expressions.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func (s StartSpec) validate() error {
	if !validStartPolicies[s.Policy] {
		return fmt.Errorf("unknown start policy %q; valid: waves, cron, fixed", s.Policy)
	}
	if math.IsNaN(s.First.Minutes()) || math.IsInf(s.First.Minutes(), 0) {
		return fmt.Errorf("start.first must be finite, got %g", s.First.Minutes())
	}
	switch s.Policy {
	case PolicyWaves:
		if s.PerWave <= 0 {
			return fmt.Errorf("start.per_wave must be positive, got %d", s.PerWave)
		}
		if math.IsNaN(s.Interval) || math.IsInf(s.Interval, 0) || s.Interval < 0 {
			return fmt.Errorf("start.interval must be a non-negative number, got %g", s.Interval)
		}
	case PolicyCron:
		if s.PerWave <= 0 {
			return fmt.Errorf("start.per_wave must be positive, got %d", s.PerWave)
		}
		if _, err := cronParser.Parse(s.Cron); err != nil {
			return fmt.Errorf("start.cron %q: %w", s.Cron, err)
		}
	case PolicyFixed:
		for i, t := range s.Times {
			if math.IsNaN(t.Minutes()) || math.IsInf(t.Minutes(), 0) {
				return fmt.Errorf("start.times[%d] must be finite, got %g", i, t.Minutes())
			}
		}
	}
	return nil
}

// StartTimes returns the start time of each of n teams in minutes since
// midnight, in team order.
func (s StartSpec) StartTimes(n int) ([]float64, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	times := make([]float64, 0, n)
	switch s.Policy {
	case PolicyWaves:
		for j := 0; j < n; j++ {
			times = append(times, s.First.Minutes()+float64(j/s.PerWave)*s.Interval)
		}
	case PolicyCron:
		sched, _ := cronParser.Parse(s.Cron)
		cursor := referenceDay.Add(time.Duration(s.First.Minutes()*float64(time.Minute)) - time.Second)
		for len(times) < n {
			next := sched.Next(cursor)
			if next.IsZero() {
				return nil, fmt.Errorf("start.cron %q never fires", s.Cron)
			}
			at := next.Sub(referenceDay).Minutes()
			for k := 0; k < s.PerWave && len(times) < n; k++ {
				times = append(times, at)
			}
			cursor = next
		}
	case PolicyFixed:
		if len(s.Times) < n {
			return nil, fmt.Errorf("start.times lists %d times for %d teams", len(s.Times), n)
		}
		for _, t := range s.Times[:n] {
			times = append(times, t.Minutes())
		}
	}
	return times, nil
}
