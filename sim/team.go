// Defines the Team struct that models one group walking a course.
// Tracks the per-run speed draw, waits and completion time, and the
// cross-run accumulators used for reporting.

package sim

import (
	"fmt"
	"math/rand/v2"
)

// TeamState represents the lifecycle state of a team within one run.
type TeamState string

const (
	StateAwaitingStart TeamState = "awaiting-start"
	StateWalking       TeamState = "walking"
	StateQueued        TeamState = "queued"
	StateInService     TeamState = "in-service"
	StateFinished      TeamState = "finished"
)

// Team is one group traversing a course. Course and StartTime are fixed
// before the first run and never change during a scenario execution.
type Team struct {
	Name      string
	Category  string
	Course    *Course
	StartTime float64 // minutes since midnight
	Speed     SpeedModel

	state TeamState
	speed float64 // km/h, drawn once per run
	waits []float64
	end   Instant

	// Cross-run accumulators, one entry per run.
	Waits       [][]float64
	Completions []Instant
}

// NewTeam creates a team of category walking course from startTime.
func NewTeam(name, category string, course *Course, startTime float64, speed SpeedModel) *Team {
	return &Team{
		Name:      name,
		Category:  category,
		Course:    course,
		StartTime: startTime,
		Speed:     speed,
	}
}

func (t *Team) String() string {
	return fmt.Sprintf("Team{Name: %s, Category: %s, State: %s}", t.Name, t.Category, t.state)
}

// State returns the team's state in the current run.
func (t *Team) State() TeamState { return t.state }

// CurrentSpeed returns the speed drawn for the current run.
func (t *Team) CurrentSpeed() float64 { return t.speed }

func (t *Team) validate(registered map[*Activity]bool) error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Course == nil {
		return fmt.Errorf("team has no course")
	}
	if t.Speed == nil {
		return fmt.Errorf("team has no speed model")
	}
	if err := t.Speed.Validate(); err != nil {
		return err
	}
	if !isFinite(t.StartTime) {
		return fmt.Errorf("start time must be finite, got %g", t.StartTime)
	}
	if err := t.Course.validate(registered); err != nil {
		return fmt.Errorf("course %q: %w", t.Course.Name, err)
	}
	return nil
}

func (t *Team) resetAccumulators() {
	t.Waits = [][]float64{}
	t.Completions = []Instant{}
}

// setup resets the per-run state and draws this run's walking speed.
func (t *Team) setup(rng *rand.Rand) error {
	t.state = StateAwaitingStart
	t.waits = []float64{}
	t.end = Instant{}
	t.speed = t.Speed.Sample(rng)
	if !isFinite(t.speed) || t.speed <= 0 {
		return &SamplingError{
			Entity: fmt.Sprintf("team %q", t.Name),
			Reason: fmt.Sprintf("drew walking speed %g km/h from %s", t.speed, t.Speed),
		}
	}
	return nil
}

// persistStats appends this run's state to the cross-run accumulators.
// A team that did not reach the finish before the horizon persists an
// absent completion.
func (t *Team) persistStats() {
	t.Waits = append(t.Waits, t.waits)
	t.Completions = append(t.Completions, t.end)
}
