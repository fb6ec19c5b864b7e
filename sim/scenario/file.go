// Package scenario loads course scenarios from YAML and builds the sim
// object graph from them.
package scenario

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowsim/flowsim/sim"
)

// File is the top-level scenario configuration.
// Loaded from YAML via Load(path).
type File struct {
	Name       string         `yaml:"name"`
	Runs       int            `yaml:"runs,omitempty"`    // 0 = 1 run
	Seed       int64          `yaml:"seed"`
	Horizon    *ClockTime     `yaml:"horizon,omitempty"` // nil = run until all teams finish
	Watermark  string         `yaml:"watermark,omitempty"`
	Finish     string         `yaml:"finish,omitempty"` // every course must end here when set
	Activities []ActivitySpec `yaml:"activities"`
	Courses    CourseList     `yaml:"courses"`
	Categories []CategorySpec `yaml:"categories"`
}

// ActivitySpec defines one checkpoint. An activity without min and max is a
// pass-through with zero service time.
type ActivitySpec struct {
	Name     string   `yaml:"name"`
	Capacity Capacity `yaml:"capacity"`
	Min      *float64 `yaml:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty"`
}

// CategorySpec defines one team category: which course it walks, how many
// teams it fields, how fast they walk and when they start.
type CategorySpec struct {
	Name   string    `yaml:"name"`
	Course string    `yaml:"course"`
	Teams  int       `yaml:"teams"`
	Speed  SpeedSpec `yaml:"speed"`
	Start  StartSpec `yaml:"start"`
}

// SpeedSpec parameterizes the walking-speed model in km/h.
type SpeedSpec struct {
	Model  string  `yaml:"model"` // uniform or normal
	Min    float64 `yaml:"min,omitempty"`
	Max    float64 `yaml:"max,omitempty"`
	Mean   float64 `yaml:"mean,omitempty"`
	StdDev float64 `yaml:"stddev,omitempty"`
}

// Capacity is a slot count; "unlimited" maps to sim.UnlimitedCapacity.
type Capacity int

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Capacity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		if node.Value != "unlimited" {
			return fmt.Errorf("line %d: capacity must be a positive integer or \"unlimited\", got %q", node.Line, node.Value)
		}
		*c = Capacity(sim.UnlimitedCapacity)
		return nil
	}
	var v int
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("line %d: capacity must be a positive integer or \"unlimited\": %w", node.Line, err)
	}
	*c = Capacity(v)
	return nil
}

// Step is one course element: a walk of Distance km, or a visit to the
// activity named Activity.
type Step struct {
	Distance float64
	Activity string
}

// IsWalk reports whether the step is a walking segment.
func (s Step) IsWalk() bool { return s.Activity == "" }

// CourseSpec is a named course.
type CourseSpec struct {
	Name  string
	Steps []Step
}

// CourseList keeps courses in file order. In YAML it is a mapping from
// course name to a flat list in which numbers are distances and strings are
// activity names, e.g. `V: [Startpost, 1.5, Post 1, 0.7, Mål]`.
type CourseList []CourseSpec

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *CourseList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: courses must be a mapping of name to steps", node.Line)
	}
	seen := make(map[string]bool, len(node.Content)/2)
	out := make(CourseList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		name := key.Value
		if seen[name] {
			return fmt.Errorf("line %d: duplicate course %q", key.Line, name)
		}
		seen[name] = true
		if value.Kind != yaml.SequenceNode {
			return fmt.Errorf("line %d: course %q must be a list of steps", value.Line, name)
		}
		course := CourseSpec{Name: name, Steps: make([]Step, 0, len(value.Content))}
		for _, item := range value.Content {
			step, err := decodeStep(item)
			if err != nil {
				return fmt.Errorf("course %q: %w", name, err)
			}
			course.Steps = append(course.Steps, step)
		}
		out = append(out, course)
	}
	*l = out
	return nil
}

func decodeStep(node *yaml.Node) (Step, error) {
	if node.Kind != yaml.ScalarNode {
		return Step{}, fmt.Errorf("line %d: step must be a distance or an activity name", node.Line)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		var d float64
		if err := node.Decode(&d); err != nil {
			return Step{}, err
		}
		return Step{Distance: d}, nil
	case "!!str":
		if node.Value == "" {
			return Step{}, fmt.Errorf("line %d: empty activity name", node.Line)
		}
		return Step{Activity: node.Value}, nil
	default:
		return Step{}, fmt.Errorf("line %d: unexpected step %q", node.Line, node.Value)
	}
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scenario from YAML bytes with strict field checking.
func Parse(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the file-level settings that the sim object graph cannot
// check itself: references by name, speed and start parameters.
func (f *File) Validate() error {
	if f.Name == "" {
		return f.configError("scenario", "name is required")
	}
	if f.Runs < 0 {
		return f.configError("scenario", fmt.Sprintf("runs must be positive, got %d", f.Runs))
	}
	if f.Horizon != nil && (math.IsNaN(f.Horizon.Minutes()) || f.Horizon.Minutes() < 0) {
		return f.configError("scenario", fmt.Sprintf("horizon must be non-negative, got %g", f.Horizon.Minutes()))
	}
	if !sim.IsValidWatermarkPolicy(f.Watermark) {
		return f.configError("scenario", fmt.Sprintf("unknown watermark %q; valid: enqueued, preceding", f.Watermark))
	}
	activities := make(map[string]bool, len(f.Activities))
	for _, a := range f.Activities {
		if (a.Min == nil) != (a.Max == nil) {
			return f.configError(fmt.Sprintf("activity %q", a.Name), "min and max must be given together")
		}
		activities[a.Name] = true
	}
	if f.Finish != "" && !activities[f.Finish] {
		return f.configError("scenario", fmt.Sprintf("finish activity %q is not defined", f.Finish))
	}
	courses := make(map[string]bool, len(f.Courses))
	for _, c := range f.Courses {
		courses[c.Name] = true
		for i, s := range c.Steps {
			if !s.IsWalk() && !activities[s.Activity] {
				return f.configError(fmt.Sprintf("course %q", c.Name), fmt.Sprintf("step %d: unknown activity %q", i, s.Activity))
			}
		}
		if f.Finish != "" && len(c.Steps) > 0 && c.Steps[len(c.Steps)-1].Activity != f.Finish {
			return f.configError(fmt.Sprintf("course %q", c.Name), fmt.Sprintf("course must end at %q", f.Finish))
		}
	}
	if len(f.Categories) == 0 {
		return f.configError("scenario", "at least one category is required")
	}
	for _, cat := range f.Categories {
		entity := fmt.Sprintf("category %q", cat.Name)
		if !courses[cat.Course] {
			return f.configError(entity, fmt.Sprintf("unknown course %q", cat.Course))
		}
		if cat.Teams < 0 {
			return f.configError(entity, fmt.Sprintf("teams must be non-negative, got %d", cat.Teams))
		}
		if err := cat.Speed.validate(); err != nil {
			return f.configError(entity, err.Error())
		}
		if err := cat.Start.validate(); err != nil {
			return f.configError(entity, err.Error())
		}
	}
	return nil
}

func (f *File) configError(entity, reason string) error {
	return &sim.ConfigError{Scenario: f.Name, Entity: entity, Reason: reason}
}

var validSpeedModels = map[string]bool{"uniform": true, "normal": true}

func (s SpeedSpec) validate() error {
	if !validSpeedModels[s.Model] {
		return fmt.Errorf("unknown speed model %q; valid: uniform, normal", s.Model)
	}
	return s.model().Validate()
}

// model returns the sim speed model. Parameters of the other model are ignored.
func (s SpeedSpec) model() sim.SpeedModel {
	if s.Model == "normal" {
		return sim.NormalPerRun{Mean: s.Mean, StdDev: s.StdDev}
	}
	return sim.UniformRange{Min: s.Min, Max: s.Max}
}
