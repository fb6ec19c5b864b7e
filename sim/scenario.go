package sim

import "fmt"

// Scenario is the in-memory object graph of one course setup: the
// activities, the courses linking them and the teams walking them.
// Activities are owned by the scenario; courses and teams only reference them.
type Scenario struct {
	Name       string
	Categories []string // reporting order of team categories
	Activities []*Activity
	Courses    []*Course
	Teams      []*Team
}

// Validate checks the whole graph. Every problem it reports is a ConfigError.
func (s *Scenario) Validate() error {
	if len(s.Categories) == 0 {
		return s.configError("scenario", "at least one team category is required")
	}
	categories := make(map[string]bool, len(s.Categories))
	for _, cat := range s.Categories {
		if cat == "" {
			return s.configError("scenario", "category names must not be empty")
		}
		if categories[cat] {
			return s.configError("scenario", fmt.Sprintf("duplicate category %q", cat))
		}
		categories[cat] = true
	}

	registered := make(map[*Activity]bool, len(s.Activities))
	names := make(map[string]bool, len(s.Activities))
	for i, a := range s.Activities {
		if a == nil {
			return s.configError(fmt.Sprintf("activity[%d]", i), "activity is nil")
		}
		if err := a.validate(); err != nil {
			return s.configError(fmt.Sprintf("activity %q", a.Name), err.Error())
		}
		if names[a.Name] {
			return s.configError(fmt.Sprintf("activity %q", a.Name), "duplicate activity name")
		}
		names[a.Name] = true
		registered[a] = true
	}

	for _, c := range s.Courses {
		if err := c.validate(registered); err != nil {
			return s.configError(fmt.Sprintf("course %q", c.Name), err.Error())
		}
	}

	teamNames := make(map[string]bool, len(s.Teams))
	for i, t := range s.Teams {
		if t == nil {
			return s.configError(fmt.Sprintf("team[%d]", i), "team is nil")
		}
		entity := fmt.Sprintf("team %q", t.Name)
		if err := t.validate(registered); err != nil {
			return s.configError(entity, err.Error())
		}
		if !categories[t.Category] {
			return s.configError(entity, fmt.Sprintf("unknown category %q", t.Category))
		}
		if teamNames[t.Name] {
			return s.configError(entity, "duplicate team name")
		}
		teamNames[t.Name] = true
	}
	return nil
}

func (s *Scenario) configError(entity, reason string) error {
	return &ConfigError{Scenario: s.Name, Entity: entity, Reason: reason}
}
