package reachability

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/objwalk"
	"github.com/dagwalk/revwalk/revwalk"
)

// PedestrianObjects answers the object-granularity variant of the
// pedestrian reachability query: target is reachable from the starter
// set iff every tree and blob reachable from target is also reachable
// from some starter, not merely every commit. Per §4.5, commit-level
// UNINTERESTING does not by itself reach into a commit's tree, so this
// variant must additionally mark the tree of every starter uninteresting
// before draining the object stream - the plain Pedestrian's
// MarkUninteresting(starter) call alone would leave starters' trees
// looking interesting to the object walker.
type PedestrianObjects struct {
	newWalker func() *revwalk.RevWalk
	starters  []identity.Identifier
}

// NewPedestrianObjects returns a Checker that builds a fresh walker (via
// newWalker) for every query.
func NewPedestrianObjects(newWalker func() *revwalk.RevWalk, starters []identity.Identifier) *PedestrianObjects {
	return &PedestrianObjects{newWalker: newWalker, starters: starters}
}

func (p *PedestrianObjects) AllReachable(targets []identity.Identifier) (identity.Identifier, bool, error) {
	for _, target := range targets {
		reachable, err := p.reachableFromStarters(target)
		if err != nil {
			return identity.Identifier{}, false, err
		}
		if !reachable {
			return target, false, nil
		}
	}
	return identity.Identifier{}, true, nil
}

func (p *PedestrianObjects) reachableFromStarters(target identity.Identifier) (bool, error) {
	w := p.newWalker()
	ow := objwalk.NewWalker(w)

	if err := w.MarkStart(target); err != nil {
		return false, err
	}

	starterTrees := make([]identity.Identifier, 0, len(p.starters))
	for _, s := range p.starters {
		c, err := w.Pool().ParseCommit(s)
		if err != nil {
			return false, err
		}
		if err := w.MarkUninteresting(s); err != nil {
			return false, err
		}
		starterTrees = append(starterTrees, c.TreeID)
	}
	for _, id := range starterTrees {
		if err := ow.MarkTreeUninteresting(id); err != nil {
			return false, err
		}
	}

	n, err := ow.NextObject()
	if err != nil {
		return false, err
	}
	return n == nil, nil
}
