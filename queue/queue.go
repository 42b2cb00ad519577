// Package queue implements the pending-commit containers the generator
// pipeline is built from: a plain FIFO, a LIFO stack, and two
// priority-ordered queues (commit-time and generation-number), following
// the teacher's commitNodeStackable / commitNodeLifo / commitNodeHeap
// split in plumbing/object/commitgraph/commitnode_walker_helper.go.
package queue

import "github.com/dagwalk/revwalk/object"

// Queue is the common shape every pending-commit container in this
// package satisfies, letting a generator stage be written once against
// the interface and reused across sort strategies.
type Queue interface {
	Push(c *object.Commit)
	Pop() (*object.Commit, bool)
	Peek() (*object.Commit, bool)
	Size() int
}
