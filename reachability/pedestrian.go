package reachability

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/revwalk"
)

// Pedestrian answers reachability queries with a plain walk per target:
// mark the target as the sole start, mark every starter UNINTERESTING,
// and the target is reachable iff the walker emits nothing (it was
// subsumed entirely by the uninteresting starters' ancestry).
type Pedestrian struct {
	newWalker func() *revwalk.RevWalk
	starters  []identity.Identifier
}

// NewPedestrian returns a Checker that builds a fresh walker (via
// newWalker) for every query, marking starters uninteresting each time.
func NewPedestrian(newWalker func() *revwalk.RevWalk, starters []identity.Identifier) *Pedestrian {
	return &Pedestrian{newWalker: newWalker, starters: starters}
}

func (p *Pedestrian) AllReachable(targets []identity.Identifier) (identity.Identifier, bool, error) {
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

func (p *Pedestrian) reachableFromStarters(target identity.Identifier) (bool, error) {
	w := p.newWalker()
	if err := w.MarkStart(target); err != nil {
		return false, err
	}
	for _, s := range p.starters {
		if err := w.MarkUninteresting(s); err != nil {
			return false, err
		}
	}

	c, err := w.Next()
	if err != nil {
		return false, err
	}
	return c == nil, nil
}
