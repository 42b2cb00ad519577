package revwalk

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
)

// FilterDecision is a rev-filter's verdict on a single commit, following
// §7's "definitely-not / definitely-yes / undecided" three-way answer.
type FilterDecision int

const (
	// Undecided lets later stages (chiefly UNINTERESTING propagation)
	// make the call; most filters never need to return this.
	Undecided FilterDecision = iota
	Include
	Exclude
)

// RevFilter decides whether a commit belongs in the output stream. The
// all-matching filter is nil: every stage in this package treats a nil
// RevFilter as "include everything", matching set_rev_filter's documented
// identity element.
type RevFilter func(c *object.Commit) FilterDecision

// apply runs f against c, treating a nil filter as Include.
func (f RevFilter) apply(c *object.Commit) FilterDecision {
	if f == nil {
		return Include
	}
	return f(c)
}

// TreeDiffer reports whether the tree rooted at id differs from the tree
// rooted at parentID when restricted to the paths a tree-filter cares
// about. It is supplied by the caller rather than implemented here,
// since computing the restricted diff requires walking tree entries the
// object package already knows how to stream (see objwalk), and a
// generic differ would otherwise have to duplicate that traversal.
type TreeDiffer func(id, parentID identity.Identifier) (differs bool, err error)
