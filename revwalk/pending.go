package revwalk

import (
	"github.com/dagwalk/revwalk/object"
	"github.com/dagwalk/revwalk/queue"
)

// defaultOverscan is the number of extra uninteresting commits the
// pending generator pops before giving up once the frontier has gone
// all-uninteresting. §9's open question leaves the exact value
// unspecified; this mirrors the "tens" historical figure the design
// notes cite without committing to a round number.
const defaultOverscan = 32

// pendingGenerator is the innermost stage: a date-ordered frontier that
// parses each popped commit, carries flags to its parents, applies the
// rev-filter, and enqueues interesting unseen parents. Grounded on the
// teacher's commitPreIterator (plumbing/object/commit_walker.go), whose
// iterative parent-expansion loop this stage generalizes to carry an
// arbitrary flag mask rather than just deduplicating by hash.
type pendingGenerator struct {
	pool      *object.Pool
	queue     *queue.DateRevQueue
	filter    RevFilter
	carryMask object.Flag

	// passUninteresting makes next() return every popped commit,
	// including UNINTERESTING ones, so a downstream boundary stage can
	// decide what to do with them. When false, UNINTERESTING commits are
	// consumed silently (subject to the overscan budget below).
	passUninteresting bool

	overscanBudget int
}

func newPendingGenerator(pool *object.Pool, starts []*object.Commit, filter RevFilter, carryMask object.Flag, passUninteresting bool, byAuthorTime bool) (*pendingGenerator, error) {
	q := queue.NewDateRevQueue()
	if byAuthorTime {
		q = queue.NewAuthorDateRevQueue()
	}
	g := &pendingGenerator{
		pool:              pool,
		queue:             q,
		filter:            filter,
		carryMask:         carryMask,
		passUninteresting: passUninteresting,
		overscanBudget:    defaultOverscan,
	}
	for _, c := range starts {
		parsed, err := pool.ParseCommit(c.ID)
		if err != nil {
			return nil, err
		}
		if !parsed.Has(object.SEEN) {
			parsed.Set(object.SEEN)
			g.queue.Push(parsed)
		}
	}
	return g, nil
}

func (g *pendingGenerator) outputType() outputKind {
	return outHasUninteresting | outSortTimeDesc
}

func (g *pendingGenerator) next() (*object.Commit, error) {
	for {
		c, ok := g.queue.Pop()
		if !ok {
			return nil, nil
		}

		parsed, err := g.pool.ParseCommit(c.ID)
		if err != nil {
			return nil, err
		}
		c = parsed

		carried := c.Flags & g.carryMask
		for _, p := range c.Parents {
			parsedParent, err := g.pool.ParseCommit(p.ID)
			if err != nil {
				return nil, err
			}
			if carried != 0 {
				parsedParent.Set(carried)
			}
			if !parsedParent.Has(object.SEEN) {
				parsedParent.Set(object.SEEN)
				if g.filter.apply(parsedParent) != Exclude {
					g.queue.Push(parsedParent)
				}
			}
		}

		decision := g.filter.apply(c)
		interesting := !c.Has(object.UNINTERESTING) && decision != Exclude

		if interesting {
			g.overscanBudget = defaultOverscan
			return c, nil
		}

		if g.passUninteresting {
			return c, nil
		}

		g.overscanBudget--
		if g.overscanBudget <= 0 {
			return nil, nil
		}
	}
}
