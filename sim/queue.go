// Implements the WaitQueue, which holds the slot requests an activity
// cannot grant yet. Requests are enqueued on arrival and promoted in order.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of handles waiting for a slot of a Resource.
type WaitQueue struct {
	queue []*Handle
}

// Enqueue adds a handle to the back of the wait queue.
func (wq *WaitQueue) Enqueue(h *Handle) {
	if h == nil {
		panic("Enqueue: handle must not be nil")
	}
	wq.queue = append(wq.queue, h)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, h := range wq.queue {
		fmt.Fprint(&sb, h.waiter)
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of waiting handles.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the handle at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Handle {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Items returns the queue contents in arrival order.
// The returned slice is the queue's internal storage; callers MUST NOT
// append to or reslice it.
func (wq *WaitQueue) Items() []*Handle {
	return wq.queue
}

// Dequeue removes the handle at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Handle {
	if len(wq.queue) == 0 {
		return nil
	}
	h := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return h
}
