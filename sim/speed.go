package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// SpeedModel draws a team's walking speed in km/h. It is sampled once per
// run in Team setup, so a slow team stays slow for the whole course.
type SpeedModel interface {
	Sample(rng *rand.Rand) float64
	Validate() error
	String() string
}

// UniformRange draws the speed uniformly from [Min, Max].
type UniformRange struct {
	Min float64
	Max float64
}

func (m UniformRange) Sample(rng *rand.Rand) float64 {
	return distuv.Uniform{Min: m.Min, Max: m.Max, Src: rng}.Rand()
}

func (m UniformRange) Validate() error {
	if !isFinite(m.Min) || !isFinite(m.Max) {
		return fmt.Errorf("uniform speed bounds must be finite, got [%g, %g]", m.Min, m.Max)
	}
	if m.Min <= 0 {
		return fmt.Errorf("uniform speed minimum must be positive, got %g", m.Min)
	}
	if m.Min > m.Max {
		return fmt.Errorf("uniform speed minimum %g exceeds maximum %g", m.Min, m.Max)
	}
	return nil
}

func (m UniformRange) String() string {
	return fmt.Sprintf("uniform[%g;%g] km/h", m.Min, m.Max)
}

// NormalPerRun draws the speed from N(Mean, StdDev²). A draw at or below
// zero is a sampling error, not something to clamp.
type NormalPerRun struct {
	Mean   float64
	StdDev float64
}

func (m NormalPerRun) Sample(rng *rand.Rand) float64 {
	return distuv.Normal{Mu: m.Mean, Sigma: m.StdDev, Src: rng}.Rand()
}

func (m NormalPerRun) Validate() error {
	if !isFinite(m.Mean) || !isFinite(m.StdDev) {
		return fmt.Errorf("normal speed parameters must be finite, got mean=%g stddev=%g", m.Mean, m.StdDev)
	}
	if m.Mean <= 0 {
		return fmt.Errorf("normal speed mean must be positive, got %g", m.Mean)
	}
	if m.StdDev < 0 {
		return fmt.Errorf("normal speed stddev must be non-negative, got %g", m.StdDev)
	}
	return nil
}

func (m NormalPerRun) String() string {
	return fmt.Sprintf("normal(%g, %g) km/h", m.Mean, m.StdDev)
}

// walkingTime converts a distance in km at speed km/h to minutes.
func walkingTime(distance, speed float64) float64 {
	return distance / speed * 60
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
