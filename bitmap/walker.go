package bitmap

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
	"github.com/dagwalk/revwalk/objwalk"
	"github.com/dagwalk/revwalk/revwalk"
	"github.com/dagwalk/revwalk/store"
)

// Walker computes a reachability bitmap for a start set by combining
// precomputed per-commit bitmaps from a BitmapIndex with a short walk to
// fill any gaps, per §4.5.
type Walker struct {
	index store.BitmapIndex
}

// NewWalker returns a Walker over index.
func NewWalker(index store.BitmapIndex) *Walker {
	return &Walker{index: index}
}

// Result is the outcome of a Reachable call: the accumulated bitmap and
// how many commits the walk itself had to visit (had no precomputed
// bitmap), the "bitmap miss" count §4.5 asks implementations to expose
// for instrumentation.
type Result struct {
	Bitmap *Bitmap
	Misses int
}

// Reachable computes the union of everything reachable from starts,
// implementing the reachability_bitmap(start_set, ignore_missing)
// operation; it takes no seen set. w is the commit walker to run for the gap-filling portion;
// it must not have had MarkStart/MarkUninteresting called yet.
func (bw *Walker) Reachable(w *revwalk.RevWalk, starts []identity.Identifier, ignoreMissing bool) (*Result, error) {
	res, err := bw.reachableOnce(w, starts)
	if err == nil || !ignoreMissing {
		return res, err
	}

	// Retry one start at a time, skipping any whose ancestry is broken,
	// per §4.5's "prune-and-repack may have disconnected a historical
	// start" rationale.
	combined := New()
	misses := 0
	for _, start := range starts {
		fresh := revwalk.New(w.Reader())
		r, err := bw.reachableOnce(fresh, []identity.Identifier{start})
		if err != nil {
			continue
		}
		combined.Or(r.Bitmap)
		misses += r.Misses
	}
	return &Result{Bitmap: combined, Misses: misses}, nil
}

func (bw *Walker) reachableOnce(w *revwalk.RevWalk, starts []identity.Identifier) (*Result, error) {
	accumulator := New()
	var walkStarts []identity.Identifier

	for _, id := range starts {
		if bm, ok := bw.index.Get(id); ok {
			accumulator.OrExternal(bm)
			continue
		}
		walkStarts = append(walkStarts, id)
	}

	if len(walkStarts) == 0 {
		return &Result{Bitmap: accumulator}, nil
	}

	err := w.SetRevFilter(func(c *object.Commit) revwalk.FilterDecision {
		pos, known := bw.index.PositionOf(c.ID)
		if known && accumulator.Contains(pos) {
			return revwalk.Exclude
		}
		if bm, ok := bw.index.Get(c.ID); ok {
			accumulator.OrExternal(bm)
			return revwalk.Exclude
		}
		return revwalk.Include
	})
	if err != nil {
		return nil, err
	}

	for _, id := range walkStarts {
		if err := w.MarkStart(id); err != nil {
			return nil, err
		}
	}

	// Every commit the walk actually emits here is, by construction, one
	// the filter above could not satisfy from a precomputed bitmap - the
	// "bitmap miss" §4.5 point 4 asks implementations to count.
	misses := 0
	for {
		c, err := w.Next()
		if err != nil {
			return nil, err
		}
		if c == nil {
			break
		}
		misses++
		if pos, known := bw.index.PositionOf(c.ID); known {
			accumulator.Set(pos)
		}
	}

	return &Result{Bitmap: accumulator, Misses: misses}, nil
}

// FullReachable computes the same start-set reachability bitmap as
// Reachable, but additionally drains every tree and blob the walk
// touches into builder via an objwalk.Walker's pre/post-walk hooks,
// giving a full commit+object reachability bitmap in one pass - the
// combination §4.5 point 5 describes. w must not have had MarkStart
// called yet.
func (bw *Walker) FullReachable(w *revwalk.RevWalk, starts []identity.Identifier, builder store.BitmapBuilder) (*Result, error) {
	accumulator := New()
	var walkStarts []identity.Identifier

	for _, id := range starts {
		if bm, ok := bw.index.Get(id); ok {
			accumulator.OrExternal(bm)
			builder.Or(bm)
			continue
		}
		walkStarts = append(walkStarts, id)
	}

	if len(walkStarts) == 0 {
		return &Result{Bitmap: accumulator}, nil
	}

	err := w.SetRevFilter(func(c *object.Commit) revwalk.FilterDecision {
		pos, known := bw.index.PositionOf(c.ID)
		if known && accumulator.Contains(pos) {
			return revwalk.Exclude
		}
		if bm, ok := bw.index.Get(c.ID); ok {
			accumulator.OrExternal(bm)
			builder.Or(bm)
			return revwalk.Exclude
		}
		return revwalk.Include
	})
	if err != nil {
		return nil, err
	}

	for _, id := range walkStarts {
		if err := w.MarkStart(id); err != nil {
			return nil, err
		}
	}

	// OnCommit fires once per commit the underlying walk emits, which by
	// construction is every commit the filter above could not resolve
	// from a precomputed bitmap - the miss count of §4.5 point 4.
	misses := 0
	ow := objwalk.NewWalker(w)
	ow.OnCommit = func(c *object.Commit) {
		misses++
		if pos, known := bw.index.PositionOf(c.ID); known {
			accumulator.Set(pos)
			builder.AddObject(c.ID, store.CommitType)
		}
	}

	for {
		n, err := ow.NextObject()
		if err != nil {
			return nil, err
		}
		if n == nil {
			break
		}
		var t store.ObjectType
		switch n.Kind() {
		case object.TreeType:
			t = store.TreeType
		case object.BlobType:
			t = store.BlobType
		}
		builder.AddObject(n.Identifier(), t)
	}

	return &Result{Bitmap: accumulator, Misses: misses}, nil
}
