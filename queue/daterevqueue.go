package queue

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/dagwalk/revwalk/object"
)

// dateEntry pairs a commit with its insertion sequence number, so that
// two commits sharing the same time key still compare deterministically
// instead of depending on the heap's unspecified tie-break.
type dateEntry struct {
	commit *object.Commit
	seq    int64
}

// DateRevQueue is a priority queue ordering commits by a descending time
// key (newest first) - the ordering the classical date-ordered pending
// generator needs to guarantee a child is always produced before an
// ancestor with an older time. Grounded on the teacher's commitNodeHeap
// wrapping emirpasic/gods/trees/binaryheap, generalized from CommitNode
// to this module's *object.Commit. The time key defaults to CommitTime;
// NewAuthorDateRevQueue selects AuthorTime instead, mirroring the
// teacher's commitnode_walker_author_order.go, which reuses the same
// heap machinery with just a different comparator field.
type DateRevQueue struct {
	heap *binaryheap.Heap
	seq  int64
}

func timeKeyComparator(key func(*object.Commit) int64) func(a, b interface{}) int {
	return func(a, b interface{}) int {
		x := a.(dateEntry)
		y := b.(dateEntry)
		xt, yt := key(x.commit), key(y.commit)
		switch {
		case xt > yt:
			return -1
		case xt < yt:
			return 1
		case x.seq < y.seq:
			return -1
		case x.seq > y.seq:
			return 1
		default:
			return 0
		}
	}
}

// NewDateRevQueue returns a queue ordered by descending CommitTime.
func NewDateRevQueue() *DateRevQueue {
	return &DateRevQueue{heap: binaryheap.NewWith(timeKeyComparator(func(c *object.Commit) int64 { return c.CommitTime }))}
}

// NewAuthorDateRevQueue returns a queue ordered by descending AuthorTime,
// the supplemented AUTHOR_TIME_DESC sort mode.
func NewAuthorDateRevQueue() *DateRevQueue {
	return &DateRevQueue{heap: binaryheap.NewWith(timeKeyComparator(func(c *object.Commit) int64 { return c.AuthorTime }))}
}

func (q *DateRevQueue) Push(c *object.Commit) {
	q.heap.Push(dateEntry{commit: c, seq: q.seq})
	q.seq++
}

func (q *DateRevQueue) Pop() (*object.Commit, bool) {
	v, ok := q.heap.Pop()
	if !ok {
		return nil, false
	}
	return v.(dateEntry).commit, true
}

func (q *DateRevQueue) Peek() (*object.Commit, bool) {
	v, ok := q.heap.Peek()
	if !ok {
		return nil, false
	}
	return v.(dateEntry).commit, true
}

func (q *DateRevQueue) Size() int {
	return q.heap.Size()
}
