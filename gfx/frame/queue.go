// Package frame schedules display refresh callbacks.
package frame

import (
	"sync"
	"time"

	"github.com/peragwin/vuzicscope/scope"
)

// Queue is a display refresh scheduler. Whoever drives the display calls
// Run once per refresh; frames requested during Run wait for the next one.
// Post marshals work from other goroutines onto the same thread.
type Queue struct {
	mu      sync.Mutex
	next    scope.FrameID
	pending map[scope.FrameID]scope.FrameFunc
	order   []scope.FrameID
	tasks   []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[scope.FrameID]scope.FrameFunc)}
}

// RequestFrame implements scope.Scheduler.
func (q *Queue) RequestFrame(fn scope.FrameFunc) scope.FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

// CancelFrame implements scope.Scheduler.
func (q *Queue) CancelFrame(id scope.FrameID) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

// Post queues fn to run at the start of the next Run.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// Pending is the number of frames waiting to run.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Run executes posted tasks, then every frame requested before the call, in
// request order. It returns the number of frames run.
func (q *Queue) Run(now time.Time) int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}

	q.mu.Lock()
	order := q.order
	q.order = nil
	q.mu.Unlock()

	n := 0
	for _, id := range order {
		q.mu.Lock()
		fn, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		n++
	}
	return n
}
