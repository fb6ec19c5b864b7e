package sim

import (
	"fmt"
	"strings"
)

// ElementKind tags a CourseElement.
type ElementKind int

const (
	// ElementWalk is a walking segment of Distance km.
	ElementWalk ElementKind = iota
	// ElementVisit is a stop at Activity.
	ElementVisit
)

// CourseElement is either Walk(distance) or Visit(activity).
type CourseElement struct {
	Kind     ElementKind
	Distance float64
	Activity *Activity
}

// Walk returns a walking segment of km kilometres.
func Walk(km float64) CourseElement {
	return CourseElement{Kind: ElementWalk, Distance: km}
}

// Visit returns a stop at a.
func Visit(a *Activity) CourseElement {
	return CourseElement{Kind: ElementVisit, Activity: a}
}

// Course is the fixed route of one team category. Courses of different
// categories share *Activity pointers; shared identity is what makes teams
// contend for the same slots.
type Course struct {
	Name     string
	Elements []CourseElement
}

// Distance returns the total walking distance in km.
func (c *Course) Distance() float64 {
	total := 0.0
	for _, el := range c.Elements {
		if el.Kind == ElementWalk {
			total += el.Distance
		}
	}
	return total
}

// Finish returns the last activity of the course, or nil for a malformed course.
func (c *Course) Finish() *Activity {
	if len(c.Elements) == 0 {
		return nil
	}
	return c.Elements[len(c.Elements)-1].Activity
}

// String renders the course as "A[8] -(1.5)-> B[5] ...".
func (c *Course) String() string {
	var sb strings.Builder
	for _, el := range c.Elements {
		switch el.Kind {
		case ElementWalk:
			fmt.Fprintf(&sb, " -(%.1f)-> ", el.Distance)
		case ElementVisit:
			sb.WriteString(el.Activity.Name)
			if el.Activity.Capacity == UnlimitedCapacity {
				sb.WriteString("[∞]")
			} else {
				fmt.Fprintf(&sb, "[%d]", el.Activity.Capacity)
			}
		}
	}
	return sb.String()
}

// validate checks the course against the set of registered activities.
func (c *Course) validate(registered map[*Activity]bool) error {
	if len(c.Elements) == 0 {
		return fmt.Errorf("course is empty")
	}
	for i, el := range c.Elements {
		switch el.Kind {
		case ElementWalk:
			if !isFinite(el.Distance) || el.Distance < 0 {
				return fmt.Errorf("element %d: distance must be a non-negative number, got %g", i, el.Distance)
			}
		case ElementVisit:
			if el.Activity == nil {
				return fmt.Errorf("element %d: visit without activity", i)
			}
			if !registered[el.Activity] {
				return fmt.Errorf("element %d: activity %q is not part of the scenario", i, el.Activity.Name)
			}
		default:
			return fmt.Errorf("element %d: unknown element kind %d", i, el.Kind)
		}
	}
	if c.Elements[len(c.Elements)-1].Kind != ElementVisit {
		return fmt.Errorf("course must end at a finish activity")
	}
	return nil
}
