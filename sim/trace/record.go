// Package trace provides event-trace recording for a course simulation.
// It has no dependencies on sim/ and only stores plain data types.
package trace

// EventKind names the step of a team process that produced a record.
type EventKind string

const (
	KindStart  EventKind = "start"  // team became active
	KindWalk   EventKind = "walk"   // team set off on a walking segment
	KindArrive EventKind = "arrive" // team lined up at an activity
	KindGrant  EventKind = "grant"  // team was admitted to an activity
	KindDepart EventKind = "depart" // team left an activity
	KindFinish EventKind = "finish" // team completed its course
)

// EventRecord captures one step of one team in one run.
type EventRecord struct {
	Run      int
	Time     float64 // minutes since midnight
	Kind     EventKind
	Team     string
	Category string
	Activity string // empty for start, walk and finish
	// Duration is the walking time (walk), the wait (grant) or the service
	// time (depart); zero otherwise.
	Duration float64
	Holders  int // occupancy of Activity right after the step
	QueueLen int // waiting teams at Activity right after the step
}
