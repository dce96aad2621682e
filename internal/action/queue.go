package action

import "sync"

// Sender is the producer side of the action queue. Components and
// background tasks hold a Sender; copying the interface value shares the
// same queue.
type Sender interface {
	Send(a Action)
}

// Queue is an unbounded multi-producer single-consumer FIFO. Send never
// blocks; Drain hands the consumer everything queued so far.
type Queue struct {
	mu      sync.Mutex
	pending []Action
	notify  chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Send appends a to the queue. None actions are dropped.
func (q *Queue) Send(a Action) {
	if a.IsNone() {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, a)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Drain removes and returns all queued actions in send order.
func (q *Queue) Drain() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Ready fires after at least one Send since the last receive. Hosts use it
// to wake up the consumer when a background task reports.
func (q *Queue) Ready() <-chan struct{} {
	return q.notify
}
