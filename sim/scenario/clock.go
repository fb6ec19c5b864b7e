package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClockTime is a point in simulated time in minutes since midnight.
// In YAML it is either a number of minutes or an "HH:MM" string; hours may
// exceed 23 for times after the following midnight ("30:00" is 06:00 the
// next day).
type ClockTime float64

// Minutes returns t as plain minutes.
func (t ClockTime) Minutes() float64 { return float64(t) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *ClockTime) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: clock time must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*t = ClockTime(v)
		return nil
	case "!!str":
		v, err := ParseClock(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*t = ClockTime(v)
		return nil
	default:
		return fmt.Errorf("line %d: clock time must be minutes or HH:MM, got %q", node.Line, node.Value)
	}
}

// ParseClock parses "HH:MM" into minutes since midnight. "unlimited" maps
// to +Inf so it can be used as a horizon.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "unlimited" {
		return math.Inf(1), nil
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid clock time %q; want HH:MM or minutes", s)
		}
		return v, nil
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("invalid hours in clock time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minutes in clock time %q", s)
	}
	return float64(h*60 + m), nil
}
