// Package revwalk implements the commit generator pipeline: the external
// RevWalk interface plus the composable generator stages it assembles at
// first-Next() time, following the teacher's commitPreIterator /
// commitPostIterator nested-iterator style, generalized to a pluggable
// pipeline per §4.3.
package revwalk

import (
	"errors"

	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
	"github.com/dagwalk/revwalk/store"
	"github.com/dagwalk/revwalk/walkerr"
)

// ErrAlreadyStarted is returned by configuration methods called after
// the first call to Next, matching §6's "not-yet-started" precondition
// and §7's "programmer error, not a recoverable condition" treatment.
var ErrAlreadyStarted = errors.New("revwalk: walker already started")

// RevWalk is a single-use, single-threaded commit iterator over one
// object.Pool. It is not safe for concurrent use, and a walker built
// from an existing one (e.g. an object walker, see package objwalk)
// takes over its pool; the source walker must not be used afterward.
type RevWalk struct {
	pool      *object.Pool
	reader    store.ObjectReader
	allocator *object.FlagAllocator

	starts        []*object.Commit
	uninteresting []*object.Commit

	sort       SortStrategy
	revFilter  RevFilter
	treeDiffer TreeDiffer
	limit      LimitOptions
	hasLimit   bool
	maxDepth   int
	hasDepth   bool

	pipeline generator
}

// New returns a walker over reader's objects.
func New(reader store.ObjectReader) *RevWalk {
	return &RevWalk{
		pool:      object.NewPool(reader),
		reader:    reader,
		allocator: object.NewFlagAllocator(),
		maxDepth:  -1,
	}
}

// Pool returns the walker's object pool, for callers (notably objwalk)
// that need to take it over.
func (w *RevWalk) Pool() *object.Pool { return w.pool }

// Reader returns the object store this walker reads from, letting a
// caller (e.g. the bitmap engine's per-start retry) build a fresh
// walker over the same store.
func (w *RevWalk) Reader() store.ObjectReader { return w.reader }

func (w *RevWalk) checkNotStarted() error {
	if w.allocator.Started() {
		return ErrAlreadyStarted
	}
	return nil
}

// MarkStart adds id to the frontier. It fails if the walker has already
// begun iterating.
func (w *RevWalk) MarkStart(id identity.Identifier) error {
	if err := w.checkNotStarted(); err != nil {
		return err
	}
	c, err := w.pool.ParseCommit(id)
	if err != nil {
		return err
	}
	w.starts = append(w.starts, c)
	return nil
}

// MarkUninteresting adds id to the frontier as an UNINTERESTING start,
// excluding it and its ancestry from emission.
func (w *RevWalk) MarkUninteresting(id identity.Identifier) error {
	if err := w.checkNotStarted(); err != nil {
		return err
	}
	c, err := w.pool.ParseCommit(id)
	if err != nil {
		return err
	}
	c.Set(object.UNINTERESTING)
	w.starts = append(w.starts, c)
	w.uninteresting = append(w.uninteresting, c)
	return nil
}

// SetSort replaces the walker's sort/behavior strategy set.
func (w *RevWalk) SetSort(s SortStrategy) error {
	if err := w.checkNotStarted(); err != nil {
		return err
	}
	w.sort = s
	return nil
}

// SetRevFilter replaces the commit filter. A nil filter matches
// everything.
func (w *RevWalk) SetRevFilter(f RevFilter) error {
	if err := w.checkNotStarted(); err != nil {
		return err
	}
	w.revFilter = f
	return nil
}

// SetTreeFilter installs a path-restricted tree differ, enabling the
// tree-rev-filter and rewrite stages.
func (w *RevWalk) SetTreeFilter(d TreeDiffer) error {
	if err := w.checkNotStarted(); err != nil {
		return err
	}
	w.treeDiffer = d
	return nil
}

// SetLimit installs the supplemented since/until/tail post-filter.
func (w *RevWalk) SetLimit(opts LimitOptions) error {
	if err := w.checkNotStarted(); err != nil {
		return err
	}
	w.limit = opts
	w.hasLimit = true
	return nil
}

// SetMaxDepth enables the depth generator with the given hop limit.
func (w *RevWalk) SetMaxDepth(depth int) error {
	if err := w.checkNotStarted(); err != nil {
		return err
	}
	w.maxDepth = depth
	w.hasDepth = true
	return nil
}

// NewFlag allocates a fresh application flag.
func (w *RevWalk) NewFlag(name string) (object.Flag, error) {
	return w.allocator.NewFlag(name)
}

// Carry marks flag to propagate from a commit to its parents alongside
// UNINTERESTING.
func (w *RevWalk) Carry(flag object.Flag) { w.allocator.Carry(flag) }

// RetainOnReset marks flag to survive Reset.
func (w *RevWalk) RetainOnReset(flag object.Flag) { w.allocator.RetainOnReset(flag) }

// Reset clears every flag not in the allocator's retain mask from every
// object the pool has created, and re-primes the pipeline so a fresh
// MarkStart/Next cycle can begin.
func (w *RevWalk) Reset() {
	w.pool.Reset(w.allocator.RetainMask())
	w.starts = nil
	w.uninteresting = nil
	w.pipeline = nil
	w.allocator = object.NewFlagAllocator()
}

// build assembles the generator pipeline according to the walker's
// configured filters and sort strategy, following the canonical stack
// in §4.3: pending -> tree-rev-filter/rewrite -> topo -> boundary ->
// depth -> reverse -> limit.
func (w *RevWalk) build() (generator, error) {
	passUninteresting := w.sort.has(SortBoundary)
	g, err := newPendingGenerator(w.pool, w.starts, w.revFilter, w.allocator.FullCarryMask(), passUninteresting, w.sort.has(SortAuthorTimeDesc))
	if err != nil {
		return nil, err
	}
	var cur generator = g

	if w.treeDiffer != nil {
		cur = newRewriteGenerator(newTreeFilterGenerator(cur, w.treeDiffer))
	}

	if w.sort.has(SortTopo) || w.sort.has(SortTopoKeepBranchTogether) {
		graph, hasCommitGraph := w.reader.CommitGraph()
		// The commit-graph-accelerated path walks straight from the start
		// set using the graph's own parent/generation data (§4.3.4) rather
		// than pendingGenerator's incremental SEEN/UNINTERESTING/REWRITE
		// bookkeeping, so it is only safe to pick when none of that
		// bookkeeping is actually needed: no tree filter, no custom
		// rev-filter, and no uninteresting start.
		useGraphTopo := hasCommitGraph && w.treeDiffer == nil && w.revFilter == nil && len(w.uninteresting) == 0
		if useGraphTopo {
			graphTopo, err := newGraphTopoGenerator(w.pool, graph, w.starts)
			if err != nil {
				return nil, err
			}
			cur = graphTopo
		} else {
			classicalTopo, err := newClassicalTopoGenerator(cur)
			if err != nil {
				return nil, err
			}
			cur = classicalTopo
		}
	}

	if w.sort.has(SortBoundary) {
		cur = newBoundaryGenerator(cur)
	}

	if w.hasDepth {
		dg, err := newDepthGenerator(cur, w.allocator, w.maxDepth, w.starts)
		if err != nil {
			return nil, err
		}
		cur = dg
	}

	if w.sort.has(SortReverse) {
		cur = newReverseGenerator(cur)
	}

	if w.hasLimit {
		cur = newLimitGenerator(cur, w.limit)
	}

	return cur, nil
}

// Next returns the next commit in the walk, or (nil, nil) once
// iteration is exhausted.
func (w *RevWalk) Next() (*object.Commit, error) {
	if w.pipeline == nil {
		w.allocator.MarkStarted()
		pipeline, err := w.build()
		if err != nil {
			return nil, walkerr.Wrap(err)
		}
		w.pipeline = pipeline
	}
	c, err := w.pipeline.next()
	if err != nil {
		return nil, walkerr.Wrap(err)
	}
	return c, nil
}

// ForEach calls fn for every remaining commit, stopping (without error)
// if fn returns ErrStopWalk.
func (w *RevWalk) ForEach(fn func(*object.Commit) error) error {
	for {
		c, err := w.Next()
		if err != nil {
			return err
		}
		if c == nil {
			return nil
		}
		if err := fn(c); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
}

// ErrStopWalk is the internal control signal a ForEach callback may
// return to request early termination; it is never surfaced to a
// caller of ForEach itself, matching §7's "StopWalk...never
// user-visible" contract.
var ErrStopWalk = errors.New("revwalk: stop walk")
