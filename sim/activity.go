package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// UnlimitedCapacity is the sentinel capacity of checkpoints that never
// queue, such as the start and the finish.
const UnlimitedCapacity = math.MaxInt32

// WatermarkPolicy fixes the moment an arriving team samples the queue length
// of an activity.
type WatermarkPolicy string

const (
	// WatermarkEnqueued samples right after the request is issued and before
	// the team suspends, so a team that has to wait counts itself.
	WatermarkEnqueued WatermarkPolicy = "enqueued"
	// WatermarkPreceding samples before the request is issued and counts only
	// the teams already waiting ahead of the arrival.
	WatermarkPreceding WatermarkPolicy = "preceding"
)

// IsValidWatermarkPolicy reports whether name is a known policy. Empty means WatermarkEnqueued.
func IsValidWatermarkPolicy(name string) bool {
	switch WatermarkPolicy(name) {
	case "", WatermarkEnqueued, WatermarkPreceding:
		return true
	}
	return false
}

// Instant is a timestamp that may be absent, e.g. the opening time of an
// activity no team of a category reached in a run.
type Instant struct {
	At   float64 `yaml:"at"`
	Seen bool    `yaml:"seen"`
}

// SeenTimes returns the timestamps of all present instants, in order.
func SeenTimes(instants []Instant) []float64 {
	out := make([]float64, 0, len(instants))
	for _, in := range instants {
		if in.Seen {
			out = append(out, in.At)
		}
	}
	return out
}

// ServiceRange bounds an activity's service time in minutes, inclusive.
type ServiceRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Activity is a checkpoint with a limited number of concurrent slots.
// The static definition is reused by every run; per-run state is rebuilt by
// setup and appended to the cross-run accumulators by persistStats.
type Activity struct {
	Name     string
	Capacity int
	// Service is nil for a pass-through checkpoint.
	Service *ServiceRange

	categories     []string
	watermark      WatermarkPolicy
	resource       *Resource
	firstAdmission map[string]Instant
	lastDeparture  map[string]Instant
	waits          []float64
	maxQueue       int

	// Cross-run accumulators, one entry per run.
	FirstAdmissions map[string][]Instant
	LastDepartures  map[string][]Instant
	Waits           [][]float64
	MaxQueue        []int
}

// NewActivity creates a timed activity with service time drawn from [minDuration, maxDuration].
func NewActivity(name string, capacity int, minDuration, maxDuration float64) *Activity {
	return &Activity{
		Name:     name,
		Capacity: capacity,
		Service:  &ServiceRange{Min: minDuration, Max: maxDuration},
	}
}

// NewPassThrough creates an activity with zero service time.
func NewPassThrough(name string, capacity int) *Activity {
	return &Activity{Name: name, Capacity: capacity}
}

func (a *Activity) validate() error {
	if a.Name == "" {
		return fmt.Errorf("activity name is required")
	}
	if a.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", a.Capacity)
	}
	if a.Service != nil {
		s := a.Service
		if !isFinite(s.Min) || !isFinite(s.Max) {
			return fmt.Errorf("duration bounds must be finite, got [%g, %g]", s.Min, s.Max)
		}
		if s.Min < 0 {
			return fmt.Errorf("minimum duration must be non-negative, got %g", s.Min)
		}
		if s.Min > s.Max {
			return fmt.Errorf("minimum duration %g exceeds maximum %g", s.Min, s.Max)
		}
	}
	return nil
}

// resetAccumulators clears the cross-run accumulators at the start of a
// scenario execution.
func (a *Activity) resetAccumulators(categories []string) {
	a.categories = categories
	a.FirstAdmissions = make(map[string][]Instant, len(categories))
	a.LastDepartures = make(map[string][]Instant, len(categories))
	for _, cat := range categories {
		a.FirstAdmissions[cat] = []Instant{}
		a.LastDepartures[cat] = []Instant{}
	}
	a.Waits = [][]float64{}
	a.MaxQueue = []int{}
}

// setup resets the per-run state.
func (a *Activity) setup(watermark WatermarkPolicy) {
	a.watermark = watermark
	a.resource = NewResource(a.Capacity)
	a.firstAdmission = make(map[string]Instant, len(a.categories))
	a.lastDeparture = make(map[string]Instant, len(a.categories))
	a.waits = []float64{}
	a.maxQueue = 0
}

// request lines a team up and updates the queue watermark at the configured
// sampling point.
func (a *Activity) request(c *Clock, w Waiter) (*Handle, error) {
	if a.watermark == WatermarkPreceding {
		a.maxQueue = max(a.maxQueue, a.resource.QueueLen())
	}
	h, err := a.resource.Request(c, w)
	if err != nil {
		return nil, err
	}
	if a.watermark != WatermarkPreceding {
		a.maxQueue = max(a.maxQueue, a.resource.QueueLen())
	}
	return h, nil
}

// admit records the wait of a team that was just granted a slot and, for the
// first admission of its category in this run, the opening time.
func (a *Activity) admit(category string, now, wait float64) {
	if !a.firstAdmission[category].Seen {
		a.firstAdmission[category] = Instant{At: now, Seen: true}
	}
	a.waits = append(a.waits, wait)
}

// serviceTime draws a service duration. Pass-through checkpoints take zero time.
func (a *Activity) serviceTime(rng *rand.Rand) float64 {
	if a.Service == nil {
		return 0
	}
	return distuv.Uniform{Min: a.Service.Min, Max: a.Service.Max, Src: rng}.Rand()
}

// depart records the departure of a team and returns its slot.
func (a *Activity) depart(c *Clock, category string, h *Handle) error {
	a.lastDeparture[category] = Instant{At: c.Now(), Seen: true}
	return a.resource.Release(c, h)
}

// persistStats appends this run's state to the cross-run accumulators.
func (a *Activity) persistStats() {
	for _, cat := range a.categories {
		a.FirstAdmissions[cat] = append(a.FirstAdmissions[cat], a.firstAdmission[cat])
		a.LastDepartures[cat] = append(a.LastDepartures[cat], a.lastDeparture[cat])
	}
	a.Waits = append(a.Waits, a.waits)
	a.MaxQueue = append(a.MaxQueue, a.maxQueue)
}

// Holders returns the current occupancy of this run.
func (a *Activity) Holders() int {
	if a.resource == nil {
		return 0
	}
	return a.resource.Holders()
}

// QueueLen returns the number of teams currently waiting in this run.
func (a *Activity) QueueLen() int {
	if a.resource == nil {
		return 0
	}
	return a.resource.QueueLen()
}
