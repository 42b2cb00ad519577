package queue

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/dagwalk/revwalk/object"
)

type genEntry struct {
	commit *object.Commit
	seq    int64
}

// generationComparator orders by descending generation number when both
// sides have one computed, falling back to descending commit time - the
// same two-tier rule as the teacher's generationAndDateOrderComparator,
// simplified because this module's Generation field already folds the
// "not in the supplementary graph" case into generationUnknown rather
// than keeping a separate GenerationV2 sentinel.
func generationComparator(a, b interface{}) int {
	x := a.(genEntry)
	y := b.(genEntry)

	xKnown := x.commit.GenerationKnown()
	yKnown := y.commit.GenerationKnown()

	switch {
	case xKnown && yKnown && x.commit.Generation != y.commit.Generation:
		if x.commit.Generation > y.commit.Generation {
			return -1
		}
		return 1
	case xKnown != yKnown:
		// An unknown generation is treated as "could be arbitrarily deep",
		// so it sorts first to be conservative about ordering guarantees.
		if !xKnown {
			return -1
		}
		return 1
	}

	switch {
	case x.commit.CommitTime > y.commit.CommitTime:
		return -1
	case x.commit.CommitTime < y.commit.CommitTime:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	default:
		return 0
	}
}

// GenerationRevQueue is the commit-graph-accelerated topo-sort generator's
// priority queue: it orders by generation number so that a commit is
// never popped before a descendant whose generation is known to be
// higher, letting the topo-sort stage prune without visiting every
// ancestor. Grounded on commitnode_walker_helper.go's commitNodeHeap.
type GenerationRevQueue struct {
	heap *binaryheap.Heap
	seq  int64
}

func NewGenerationRevQueue() *GenerationRevQueue {
	return &GenerationRevQueue{heap: binaryheap.NewWith(generationComparator)}
}

func (q *GenerationRevQueue) Push(c *object.Commit) {
	q.heap.Push(genEntry{commit: c, seq: q.seq})
	q.seq++
}

func (q *GenerationRevQueue) Pop() (*object.Commit, bool) {
	v, ok := q.heap.Pop()
	if !ok {
		return nil, false
	}
	return v.(genEntry).commit, true
}

func (q *GenerationRevQueue) Peek() (*object.Commit, bool) {
	v, ok := q.heap.Peek()
	if !ok {
		return nil, false
	}
	return v.(genEntry).commit, true
}

func (q *GenerationRevQueue) Size() int {
	return q.heap.Size()
}
