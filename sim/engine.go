package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/flowsim/flowsim/sim/trace"
)

// EngineConfig groups the run settings of one scenario execution.
type EngineConfig struct {
	Runs      int             // number of independent runs (must be > 0)
	Horizon   float64         // minutes since midnight; +Inf runs until no events remain
	Seed      int64           // master seed of the PartitionedRNG
	Watermark WatermarkPolicy // queue-length sampling point ("" = enqueued)
	Trace     trace.TraceConfig
}

// Validate checks the run settings.
func (c EngineConfig) Validate() error {
	if c.Runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	if math.IsNaN(c.Horizon) || c.Horizon < 0 {
		return fmt.Errorf("horizon must be a non-negative number, got %g", c.Horizon)
	}
	if !IsValidWatermarkPolicy(string(c.Watermark)) {
		return fmt.Errorf("unknown watermark policy %q; valid: enqueued, preceding", c.Watermark)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q; valid: none, events", c.Trace.Level)
	}
	return nil
}

// Engine executes a scenario a fixed number of times and collects the
// cross-run statistics of every activity and team.
type Engine struct {
	scenario *Scenario
	config   EngineConfig
	teams    []*Team // ordered by start time
}

// NewEngine validates the scenario and the run settings. Configuration
// errors are reported here, before any run starts.
func NewEngine(sc *Scenario, cfg EngineConfig) (*Engine, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Scenario: sc.Name, Entity: "engine", Reason: err.Error()}
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if cfg.Watermark == "" {
		cfg.Watermark = WatermarkEnqueued
	}
	teams := make([]*Team, len(sc.Teams))
	copy(teams, sc.Teams)
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].StartTime < teams[j].StartTime
	})
	return &Engine{scenario: sc, config: cfg, teams: teams}, nil
}

// Config returns the effective run settings.
func (e *Engine) Config() EngineConfig { return e.config }

// Run executes all runs. The accumulators of every activity and team are
// cleared first and then only appended to. A sampling error aborts the whole
// execution since every run shares the same scenario.
func (e *Engine) Run() (*Results, error) {
	sc := e.scenario
	rng := NewPartitionedRNG(NewSimulationKey(e.config.Seed))

	var st *trace.SimulationTrace
	if e.config.Trace.Level == trace.TraceLevelEvents {
		st = trace.NewSimulationTrace(e.config.Trace)
	}

	for _, a := range sc.Activities {
		a.resetAccumulators(sc.Categories)
	}
	for _, t := range e.teams {
		t.resetAccumulators()
	}

	logrus.Infof("Simulating %q: %d runs, %d teams, %d activities, horizon %.0f",
		sc.Name, e.config.Runs, len(e.teams), len(sc.Activities), e.config.Horizon)

	for run := 0; run < e.config.Runs; run++ {
		rc := &runContext{run: run, service: rng.ForSubsystem(SubsystemService), trace: st}
		clock, err := e.runOnce(rc, rng)
		if err != nil {
			return nil, &RunError{Scenario: sc.Name, Run: run, Err: err}
		}
		logrus.Debugf("run %d: %d events, ended at %.2f with %d pending", run, clock.Dispatched(), clock.Now(), clock.Pending())
	}

	return newResults(sc, e.teams, e.config.Runs, st), nil
}

// runOnce sets up fresh per-run state, runs the clock to the horizon and
// persists the per-run statistics.
func (e *Engine) runOnce(rc *runContext, rng *PartitionedRNG) (*Clock, error) {
	clock := NewClock()
	for _, a := range e.scenario.Activities {
		a.setup(e.config.Watermark)
	}
	speedRNG := rng.ForSubsystem(SubsystemSpeed)
	for _, t := range e.teams {
		if err := t.setup(speedRNG); err != nil {
			return clock, err
		}
	}
	for _, t := range e.teams {
		delay := max(0, t.StartTime-clock.Now())
		if err := clock.ScheduleAfter(delay, &teamStartEvent{proc: newProcess(t, rc)}); err != nil {
			return clock, fmt.Errorf("team %q: scheduling start: %w", t.Name, err)
		}
	}
	if err := clock.Run(e.config.Horizon); err != nil {
		return clock, err
	}
	for _, t := range e.teams {
		t.persistStats()
	}
	for _, a := range e.scenario.Activities {
		a.persistStats()
	}
	return clock, nil
}
