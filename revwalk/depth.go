package revwalk

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
)

// depthGenerator restricts emission to commits within maxDepth hops of
// any start, per §4.3.6. Depth is assigned breadth-first as commits are
// discovered (the first assignment to a commit is always its minimum
// depth, since upstream already visits nearer commits first), and
// SHALLOW/UNINTERESTING/REINTERESTING are applied the way the shallow
// protocol's extension mode expects.
//
// SHALLOW and REINTERESTING are not core-reserved bits (the data model
// names only nine); this generator allocates them as ordinary
// application flags via the same FlagAllocator any caller would use,
// per the Open Question resolution recorded in DESIGN.md.
type depthGenerator struct {
	upstream generator

	shallow       object.Flag
	reinteresting object.Flag

	maxDepth int
	depth    map[identity.Identifier]int
}

func newDepthGenerator(upstream generator, allocator *object.FlagAllocator, maxDepth int, starts []*object.Commit) (*depthGenerator, error) {
	shallow, err := allocator.NewFlag("SHALLOW")
	if err != nil {
		return nil, err
	}
	reinteresting, err := allocator.NewFlag("REINTERESTING")
	if err != nil {
		return nil, err
	}

	g := &depthGenerator{
		upstream:      upstream,
		shallow:       shallow,
		reinteresting: reinteresting,
		maxDepth:      maxDepth,
		depth:         make(map[identity.Identifier]int),
	}
	for _, c := range starts {
		g.depth[c.ID] = 0
	}
	return g, nil
}

func (g *depthGenerator) outputType() outputKind {
	return g.upstream.outputType()
}

func (g *depthGenerator) next() (*object.Commit, error) {
	for {
		c, err := g.upstream.next()
		if err != nil || c == nil {
			return c, err
		}

		d, ok := g.depth[c.ID]
		if !ok {
			d = 0
			g.depth[c.ID] = 0
		}

		extend := c.Has(object.UNSHALLOW) || c.Has(g.reinteresting)

		for _, p := range c.Parents {
			if _, seen := g.depth[p.ID]; !seen {
				g.depth[p.ID] = d + 1
			}
			if extend {
				p.Set(g.reinteresting)
				p.Clear(object.UNINTERESTING)
			}
			if g.depth[p.ID] > g.maxDepth {
				p.Set(object.UNINTERESTING)
			}
		}

		if d == g.maxDepth {
			c.Set(g.shallow)
		}
		if d > g.maxDepth {
			continue
		}

		return c, nil
	}
}
