package revwalk

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
)

// boundaryGenerator withholds the UNINTERESTING parents of interesting
// commits until the upstream stream is exhausted, then emits them as the
// visible history's boundary, per §4.3.5. Grounded loosely on the
// teacher's commit_walker.go iterators, which have no boundary concept
// of their own - this stage is a supplemented feature, built in the same
// pull-driven next()-wrapping idiom as the rest of the pipeline.
type boundaryGenerator struct {
	upstream generator
	queued   []*object.Commit
	seen     map[identity.Identifier]bool
	draining bool
	drainAt  int
}

func newBoundaryGenerator(upstream generator) *boundaryGenerator {
	return &boundaryGenerator{
		upstream: upstream,
		seen:     make(map[identity.Identifier]bool),
	}
}

func (g *boundaryGenerator) outputType() outputKind {
	return g.upstream.outputType() | outHasUninteresting
}

func (g *boundaryGenerator) next() (*object.Commit, error) {
	if !g.draining {
		for {
			c, err := g.upstream.next()
			if err != nil {
				return nil, err
			}
			if c == nil {
				g.draining = true
				break
			}
			if c.Has(object.UNINTERESTING) {
				// c is uninteresting (a directly marked start or an
				// ancestor that inherited the flag); it belongs only in
				// the boundary queue built below when one of its
				// interesting children is processed, never in the main
				// stream.
				continue
			}
			for _, p := range c.Parents {
				if p.Has(object.UNINTERESTING) && !g.seen[p.ID] {
					g.seen[p.ID] = true
					g.queued = append(g.queued, p)
				}
			}
			return c, nil
		}
	}

	if g.drainAt >= len(g.queued) {
		return nil, nil
	}
	c := g.queued[g.drainAt]
	g.drainAt++
	return c, nil
}
