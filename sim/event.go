package sim

// Event is a continuation registered with the Clock. Execute resumes the
// suspended process it belongs to; a returned error aborts the run.
type Event interface {
	Execute(*Clock) error
}

// teamStartEvent activates a team at its start time.
type teamStartEvent struct {
	proc *process
}

// Execute marks the team active and starts walking the course.
func (e *teamStartEvent) Execute(c *Clock) error {
	return e.proc.start(c)
}

// walkEndEvent resumes a team after a walking segment.
type walkEndEvent struct {
	proc *process
}

func (e *walkEndEvent) Execute(c *Clock) error {
	return e.proc.advance(c)
}

// grantEvent resumes the holder of a freshly granted resource slot.
// Immediate grants go through the queue too, so a team never starts service
// in the middle of another team's step.
type grantEvent struct {
	handle *Handle
}

func (e *grantEvent) Execute(c *Clock) error {
	return e.handle.waiter.Granted(c, e.handle)
}

// serviceEndEvent resumes a team when its activity service time is over.
type serviceEndEvent struct {
	proc *process
}

func (e *serviceEndEvent) Execute(c *Clock) error {
	return e.proc.leave(c)
}
