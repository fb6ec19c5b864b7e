// sim/clock.go
package sim

import (
	"container/heap"
	"math"

	"github.com/sirupsen/logrus"
)

// eventEntry wraps an Event with its resumption time and a sequence ID for
// deterministic FIFO tie-breaking when timestamps are equal.
type eventEntry struct {
	at    float64
	seqID int64
	event Event
}

// eventQueue is a min-heap ordered by (at, seqID).
// Implements heap.Interface.
type eventQueue []eventEntry

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seqID < q[j].seqID
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(eventEntry))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Clock is the virtual timeline of one run. Time is measured in minutes
// since midnight of the event day and only moves forward.
//
// Exactly one process executes at any instant: Run pops one event, executes
// it to its next suspension point, then pops the next.
type Clock struct {
	now        float64
	queue      eventQueue
	nextSeq    int64
	dispatched int
}

// NewClock creates a clock at time zero with an empty event queue.
func NewClock() *Clock {
	return &Clock{queue: make(eventQueue, 0)}
}

// Now returns the current virtual time.
func (c *Clock) Now() float64 {
	return c.now
}

// Pending returns the number of scheduled, not yet executed events.
func (c *Clock) Pending() int {
	return len(c.queue)
}

// Dispatched returns the number of events executed so far.
func (c *Clock) Dispatched() int {
	return c.dispatched
}

// ScheduleAfter registers ev to be executed delay minutes from now.
func (c *Clock) ScheduleAfter(delay float64, ev Event) error {
	if delay < 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return ErrNegativeDelay
	}
	heap.Push(&c.queue, eventEntry{at: c.now + delay, seqID: c.nextSeq, event: ev})
	c.nextSeq++
	return nil
}

// Run executes events in (time, scheduling order) until the queue is empty or
// the next event lies beyond until. Events exactly at until are executed.
// The first error returned by an event stops the loop and is returned.
func (c *Clock) Run(until float64) error {
	for len(c.queue) > 0 {
		if c.queue[0].at > until {
			break
		}
		entry := heap.Pop(&c.queue).(eventEntry)
		c.now = entry.at
		c.dispatched++
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.Tracef("[t %8.2f] Executing %T", c.now, entry.event)
		}
		if err := entry.event.Execute(c); err != nil {
			return err
		}
	}
	return nil
}
