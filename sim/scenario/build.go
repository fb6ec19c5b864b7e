package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/flowsim/flowsim/sim"
	"github.com/flowsim/flowsim/sim/trace"
)

// Overrides replace file settings from the command line. Nil or zero
// fields leave the file value in place.
type Overrides struct {
	Runs    int
	Seed    *int64
	Horizon *float64
	Teams   map[string]int // category -> team count
}

// Apply writes the overrides into f.
func (f *File) Apply(o Overrides) error {
	if o.Runs < 0 {
		return fmt.Errorf("runs must be positive, got %d", o.Runs)
	}
	if o.Runs > 0 {
		f.Runs = o.Runs
	}
	if o.Seed != nil {
		f.Seed = *o.Seed
	}
	if o.Horizon != nil {
		h := ClockTime(*o.Horizon)
		f.Horizon = &h
	}
	names := make([]string, 0, len(o.Teams))
	for name := range o.Teams {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := o.Teams[name]
		if n < 0 {
			return fmt.Errorf("category %q: team count must be non-negative, got %d", name, n)
		}
		idx := f.categoryIndex(name)
		if idx < 0 {
			return fmt.Errorf("unknown category %q", name)
		}
		f.Categories[idx].Teams = n
	}
	return nil
}

func (f *File) categoryIndex(name string) int {
	for i, c := range f.Categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// EngineConfig returns the run settings of the file. Tracing stays off.
func (f *File) EngineConfig() sim.EngineConfig {
	cfg := sim.EngineConfig{
		Runs:      max(f.Runs, 1),
		Horizon:   math.Inf(1),
		Seed:      f.Seed,
		Watermark: sim.WatermarkPolicy(f.Watermark),
		Trace:     trace.TraceConfig{Level: trace.TraceLevelNone},
	}
	if f.Horizon != nil {
		cfg.Horizon = f.Horizon.Minutes()
	}
	return cfg
}

// Build validates f and creates the sim object graph. Activities are shared
// by pointer between courses; teams are named "Team <n> (<category>)" with n
// counted per category from 1.
func (f *File) Build() (*sim.Scenario, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	sc := &sim.Scenario{Name: f.Name}

	byName := make(map[string]*sim.Activity, len(f.Activities))
	for _, spec := range f.Activities {
		var a *sim.Activity
		if spec.Min == nil {
			a = sim.NewPassThrough(spec.Name, int(spec.Capacity))
		} else {
			a = sim.NewActivity(spec.Name, int(spec.Capacity), *spec.Min, *spec.Max)
		}
		if _, dup := byName[spec.Name]; !dup {
			byName[spec.Name] = a
		}
		sc.Activities = append(sc.Activities, a)
	}

	courses := make(map[string]*sim.Course, len(f.Courses))
	for _, spec := range f.Courses {
		c := &sim.Course{Name: spec.Name, Elements: make([]sim.CourseElement, 0, len(spec.Steps))}
		for _, step := range spec.Steps {
			if step.IsWalk() {
				c.Elements = append(c.Elements, sim.Walk(step.Distance))
			} else {
				c.Elements = append(c.Elements, sim.Visit(byName[step.Activity]))
			}
		}
		courses[spec.Name] = c
		sc.Courses = append(sc.Courses, c)
	}

	for _, cat := range f.Categories {
		sc.Categories = append(sc.Categories, cat.Name)
		warnIgnoredSpeedParams(cat)
		starts, err := cat.Start.StartTimes(cat.Teams)
		if err != nil {
			return nil, f.configError(fmt.Sprintf("category %q", cat.Name), err.Error())
		}
		speed := cat.Speed.model()
		for j, at := range starts {
			name := fmt.Sprintf("Team %d (%s)", j+1, cat.Name)
			sc.Teams = append(sc.Teams, sim.NewTeam(name, cat.Name, courses[cat.Course], at, speed))
		}
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	logrus.Debugf("built scenario %q: %d activities, %d courses, %d teams",
		sc.Name, len(sc.Activities), len(sc.Courses), len(sc.Teams))
	return sc, nil
}

func warnIgnoredSpeedParams(cat CategorySpec) {
	s := cat.Speed
	switch s.Model {
	case "uniform":
		if s.Mean != 0 || s.StdDev != 0 {
			logrus.Warnf("category %q: mean/stddev are ignored by the uniform speed model", cat.Name)
		}
	case "normal":
		if s.Min != 0 || s.Max != 0 {
			logrus.Warnf("category %q: min/max are ignored by the normal speed model", cat.Name)
		}
	}
}
