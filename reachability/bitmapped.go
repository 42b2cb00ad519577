package reachability

import (
	"github.com/dagwalk/revwalk/bitmap"
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/revwalk"
	"github.com/dagwalk/revwalk/store"
)

// Bitmapped answers reachability queries by accumulating starters'
// reachability bitmaps in the caller-given order, dropping targets from
// the remaining set as soon as the accumulator covers them. Callers are
// expected to put their highest-value starter first, per §4.5, since the
// first starter with a precomputed bitmap can clear most targets for
// free.
type Bitmapped struct {
	index     store.BitmapIndex
	newWalker func() *revwalk.RevWalk
	starters  []identity.Identifier
}

func NewBitmapped(index store.BitmapIndex, newWalker func() *revwalk.RevWalk, starters []identity.Identifier) *Bitmapped {
	return &Bitmapped{index: index, newWalker: newWalker, starters: starters}
}

func (b *Bitmapped) AllReachable(targets []identity.Identifier) (identity.Identifier, bool, error) {
	remaining := make(map[identity.Identifier]bool, len(targets))
	for _, t := range targets {
		remaining[t] = true
	}
	if len(remaining) == 0 {
		return identity.Identifier{}, true, nil
	}

	bw := bitmap.NewWalker(b.index)
	accumulator := bitmap.New()

	for _, starter := range b.starters {
		w := b.newWalker()
		res, err := bw.Reachable(w, []identity.Identifier{starter}, false)
		if err != nil {
			return identity.Identifier{}, false, err
		}
		accumulator.Or(res.Bitmap)

		for t := range remaining {
			if pos, ok := b.index.PositionOf(t); ok && accumulator.Contains(pos) {
				delete(remaining, t)
			}
		}
		if len(remaining) == 0 {
			return identity.Identifier{}, true, nil
		}
	}

	for t := range remaining {
		return t, false, nil
	}
	return identity.Identifier{}, true, nil
}

// Factory returns the bitmapped Checker when index is available, else a
// Pedestrian over the same starters, matching §4.5's "if the repository
// exposes a bitmap index, return the bitmapped checker" rule.
func Factory(index store.BitmapIndex, newWalker func() *revwalk.RevWalk, starters []identity.Identifier) Checker {
	if index != nil {
		return NewBitmapped(index, newWalker, starters)
	}
	return NewPedestrian(newWalker, starters)
}
