package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/flowsim/flowsim/sim/trace"
)

// runContext is the state shared by every process of one run.
type runContext struct {
	run     int
	service *rand.Rand
	trace   *trace.SimulationTrace
}

func (rc *runContext) record(r trace.EventRecord) {
	if rc.trace == nil {
		return
	}
	r.Run = rc.run
	rc.trace.Record(r)
}

// process walks one team through its course as a step function: each call
// runs until the next suspension point (walk, queue, service) and registers
// the continuation with the clock.
type process struct {
	team     *Team
	rc       *runContext
	idx      int // next course element
	arrival  float64
	activity *Activity
	handle   *Handle
}

func newProcess(team *Team, rc *runContext) *process {
	return &process{team: team, rc: rc}
}

func (p *process) String() string { return p.team.Name }

func (p *process) start(c *Clock) error {
	p.rc.record(trace.EventRecord{Time: c.Now(), Kind: trace.KindStart, Team: p.team.Name, Category: p.team.Category})
	return p.advance(c)
}

// advance handles the next course element.
func (p *process) advance(c *Clock) error {
	elements := p.team.Course.Elements
	if p.idx >= len(elements) {
		p.finish(c)
		return nil
	}
	el := elements[p.idx]
	switch el.Kind {
	case ElementWalk:
		d := walkingTime(el.Distance, p.team.speed)
		if !isFinite(d) || d < 0 {
			return &SamplingError{
				Entity: fmt.Sprintf("team %q", p.team.Name),
				Reason: fmt.Sprintf("walking %g km at %g km/h gives %g minutes", el.Distance, p.team.speed, d),
			}
		}
		p.team.state = StateWalking
		p.idx++
		p.rc.record(trace.EventRecord{Time: c.Now(), Kind: trace.KindWalk, Team: p.team.Name, Category: p.team.Category, Duration: d})
		return c.ScheduleAfter(d, &walkEndEvent{proc: p})
	case ElementVisit:
		return p.arrive(c, el.Activity)
	default:
		panic(fmt.Sprintf("advance: unknown course element kind %d", el.Kind))
	}
}

// arrive lines the team up at a. The arrival time is recorded before the
// request so the wait covers the whole time spent queued.
func (p *process) arrive(c *Clock, a *Activity) error {
	p.arrival = c.Now()
	p.activity = a
	p.team.state = StateQueued
	h, err := a.request(c, p)
	if err != nil {
		return err
	}
	p.handle = h
	p.rc.record(trace.EventRecord{
		Time: c.Now(), Kind: trace.KindArrive, Team: p.team.Name, Category: p.team.Category,
		Activity: a.Name, Holders: a.Holders(), QueueLen: a.QueueLen(),
	})
	return nil
}

// Granted implements Waiter. The wait is recorded on both the team and the
// activity, then the service time starts.
func (p *process) Granted(c *Clock, h *Handle) error {
	if h != p.handle {
		panic(fmt.Sprintf("Granted: team %q resumed with a foreign handle", p.team.Name))
	}
	a := p.activity
	wait := c.Now() - p.arrival
	p.team.waits = append(p.team.waits, wait)
	a.admit(p.team.Category, c.Now(), wait)
	p.team.state = StateInService
	p.rc.record(trace.EventRecord{
		Time: c.Now(), Kind: trace.KindGrant, Team: p.team.Name, Category: p.team.Category,
		Activity: a.Name, Duration: wait, Holders: a.Holders(), QueueLen: a.QueueLen(),
	})

	d := a.serviceTime(p.rc.service)
	if !isFinite(d) || d < 0 {
		return &SamplingError{
			Entity: fmt.Sprintf("activity %q", a.Name),
			Reason: fmt.Sprintf("drew service time %g minutes", d),
		}
	}
	return c.ScheduleAfter(d, &serviceEndEvent{proc: p})
}

// leave ends the service, frees the slot and moves on.
func (p *process) leave(c *Clock) error {
	a := p.activity
	if err := a.depart(c, p.team.Category, p.handle); err != nil {
		return fmt.Errorf("team %q leaving %q: %w", p.team.Name, a.Name, err)
	}
	p.rc.record(trace.EventRecord{
		Time: c.Now(), Kind: trace.KindDepart, Team: p.team.Name, Category: p.team.Category,
		Activity: a.Name, Duration: c.Now() - p.handle.GrantedAt(), Holders: a.Holders(), QueueLen: a.QueueLen(),
	})
	p.activity = nil
	p.handle = nil
	p.idx++
	return p.advance(c)
}

func (p *process) finish(c *Clock) {
	p.team.end = Instant{At: c.Now(), Seen: true}
	p.team.state = StateFinished
	p.rc.record(trace.EventRecord{Time: c.Now(), Kind: trace.KindFinish, Team: p.team.Name, Category: p.team.Category})
}
