package queue

import "github.com/dagwalk/revwalk/object"

// FIFO is a plain first-in-first-out queue: commits pop in the order they
// were pushed. None of the revwalk stages use it; the pending generator
// uses DateRevQueue.
type FIFO struct {
	items []*object.Commit
	head  int
}

// NewFIFO returns an empty FIFO queue.
func NewFIFO() *FIFO {
	return &FIFO{}
}

func (q *FIFO) Push(c *object.Commit) {
	q.items = append(q.items, c)
}

func (q *FIFO) Pop() (*object.Commit, bool) {
	if q.head >= len(q.items) {
		return nil, false
	}
	c := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	// Reclaim the backing array once it is fully drained, rather than
	// letting it grow unbounded across a long traversal.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return c, true
}

func (q *FIFO) Peek() (*object.Commit, bool) {
	if q.head >= len(q.items) {
		return nil, false
	}
	return q.items[q.head], true
}

func (q *FIFO) Size() int {
	return len(q.items) - q.head
}
