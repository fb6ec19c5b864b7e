// Implements Resource, the capacity-limited FIFO queue in front of every activity.

package sim

import "fmt"

// Waiter is resumed by the Clock once its request has been granted.
type Waiter interface {
	Granted(c *Clock, h *Handle) error
}

// Handle identifies one request for one slot of a Resource.
type Handle struct {
	owner     *Resource
	waiter    Waiter
	granted   bool
	released  bool
	grantedAt float64
}

// Granted reports whether the handle currently holds, or has held, a slot.
func (h *Handle) Granted() bool { return h.granted }

// GrantedAt returns the virtual time the slot was granted.
func (h *Handle) GrantedAt() float64 { return h.grantedAt }

// Resource admits up to capacity concurrent holders and queues the rest in
// arrival order. A grant, immediate or by promotion, schedules a zero-delay
// grantEvent that resumes the waiter.
type Resource struct {
	capacity int
	holders  int
	waiting  WaitQueue
}

// NewResource creates a resource with the given number of slots.
func NewResource(capacity int) *Resource {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewResource: capacity must be positive, got %d", capacity))
	}
	return &Resource{capacity: capacity}
}

// Capacity returns the number of slots.
func (r *Resource) Capacity() int { return r.capacity }

// Holders returns the number of currently granted, unreleased handles.
func (r *Resource) Holders() int { return r.holders }

// QueueLen returns the number of requests waiting for a slot.
func (r *Resource) QueueLen() int { return r.waiting.Len() }

// Request asks for a slot on behalf of w. The returned handle is granted
// right away when a slot is free; otherwise it waits behind every earlier
// request.
func (r *Resource) Request(c *Clock, w Waiter) (*Handle, error) {
	if w == nil {
		panic("Request: waiter must not be nil")
	}
	h := &Handle{owner: r, waiter: w}
	if r.holders < r.capacity {
		return h, r.grant(c, h)
	}
	r.waiting.Enqueue(h)
	return h, nil
}

// Release frees the slot held by h and promotes the longest waiting request.
// Releasing the same handle twice is a no-op.
func (r *Resource) Release(c *Clock, h *Handle) error {
	if h == nil || h.owner != r || !h.granted {
		return ErrNotGranted
	}
	if h.released {
		return nil
	}
	h.released = true
	r.holders--
	next := r.waiting.Dequeue()
	if next == nil {
		return nil
	}
	return r.grant(c, next)
}

func (r *Resource) grant(c *Clock, h *Handle) error {
	r.holders++
	if r.holders > r.capacity {
		panic(fmt.Sprintf("grant: %d holders exceed capacity %d", r.holders, r.capacity))
	}
	h.granted = true
	h.grantedAt = c.Now()
	return c.ScheduleAfter(0, &grantEvent{handle: h})
}
