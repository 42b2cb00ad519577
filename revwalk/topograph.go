package revwalk

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
	"github.com/dagwalk/revwalk/queue"
	"github.com/dagwalk/revwalk/store"
)

// graphTopoGenerator is the commit-graph-accelerated topo-sort variant of
// §4.3.4: an explore queue discovers ancestors ordered by descending
// generation, sourcing generation/tree/parent data straight from the
// external commit-graph (store.CommitGraph) instead of parsing raw commit
// bytes; an in-degree table (sentinel "ready" value 1, per spec) tracks how
// many not-yet-emitted children each commit still has; a commit-time-ordered
// output queue holds commits whose in-degree has reached the ready sentinel.
// Because every potential child of a commit must carry a strictly higher
// generation (the data model's gen(c) > gen(p) invariant), a ready candidate
// is safe to emit as soon as the explore frontier's maximum remaining
// generation has dropped below the candidate's own - this module never
// needs to finish exploring the whole reachable set before its first
// emission, unlike classicalTopoGenerator's full upstream drain.
//
// This generator bypasses the pending/rewrite stages entirely and walks
// straight from the original start set, so it is only selected by
// RevWalk.build when no tree filter, no custom rev-filter, and no
// uninteresting start is in play (see revwalk.go) - those all require the
// incremental flag bookkeeping pendingGenerator already implements, which
// this fast path does not duplicate.
type graphTopoGenerator struct {
	pool  *object.Pool
	graph store.CommitGraph

	indegree map[identity.Identifier]int
	linked   map[identity.Identifier]bool
	queuedEx map[identity.Identifier]bool

	explore     *queue.GenerationRevQueue
	indegreeOne *queue.GenerationRevQueue
	ready       *queue.DateRevQueue
}

func newGraphTopoGenerator(pool *object.Pool, graph store.CommitGraph, starts []*object.Commit) (*graphTopoGenerator, error) {
	g := &graphTopoGenerator{
		pool:        pool,
		graph:       graph,
		indegree:    make(map[identity.Identifier]int),
		linked:      make(map[identity.Identifier]bool),
		queuedEx:    make(map[identity.Identifier]bool),
		explore:     queue.NewGenerationRevQueue(),
		indegreeOne: queue.NewGenerationRevQueue(),
		ready:       queue.NewDateRevQueue(),
	}

	for _, c := range starts {
		if err := g.link(c); err != nil {
			return nil, err
		}
		if _, seen := g.indegree[c.ID]; seen {
			continue
		}
		g.indegree[c.ID] = 1
		g.pushExplore(c)
		g.indegreeOne.Push(c)
	}

	return g, nil
}

func (g *graphTopoGenerator) outputType() outputKind {
	return outSortTopo
}

// link populates c's Generation (and, when the commit graph covers it and
// it has not already been parsed from raw bytes, its TreeID/CommitTime/
// Parents too) without opening the commit's own object if the graph
// already has everything this generator needs. Falls back to a full parse
// plus locally-computed generation when c falls outside the graph's
// coverage.
func (g *graphTopoGenerator) link(c *object.Commit) error {
	if g.linked[c.ID] {
		return nil
	}
	g.linked[c.ID] = true

	if c.Has(object.PARSED) {
		if !c.GenerationKnown() {
			if pos, ok := g.graph.FindPosition(c.ID); ok {
				_, _, _, generation, err := g.graph.CommitData(pos)
				if err != nil {
					return err
				}
				c.GraphPosition = pos
				c.Generation = generation
			} else {
				computeGeneration(c)
			}
		}
		return nil
	}

	pos, ok := g.graph.FindPosition(c.ID)
	if !ok {
		if _, err := g.pool.ParseCommit(c.ID); err != nil {
			return err
		}
		computeGeneration(c)
		return nil
	}

	tree, commitTime, parentPositions, generation, err := g.graph.CommitData(pos)
	if err != nil {
		return err
	}

	c.GraphPosition = pos
	c.TreeID = tree
	c.CommitTime = commitTime
	c.Generation = generation
	c.Parents = make([]*object.Commit, len(parentPositions))
	for i, ppos := range parentPositions {
		pid, err := g.graph.IdentifierAt(ppos)
		if err != nil {
			return err
		}
		c.Parents[i] = g.pool.LookupCommit(pid)
	}
	c.Set(object.PARSED)
	return nil
}

func (g *graphTopoGenerator) pushExplore(c *object.Commit) {
	if g.queuedEx[c.ID] {
		return
	}
	g.queuedEx[c.ID] = true
	g.explore.Push(c)
}

// exploreStep counts c's parent edges: every parent's in-degree gains one
// for the child c just explored, and newly-discovered parents start at the
// ready sentinel (1) before any edge is counted against them.
func (g *graphTopoGenerator) exploreStep(c *object.Commit) error {
	for _, p := range c.Parents {
		if err := g.link(p); err != nil {
			return err
		}
		if _, ok := g.indegree[p.ID]; !ok {
			g.indegree[p.ID] = 1
			g.pushExplore(p)
		}
		g.indegree[p.ID]++
	}
	return nil
}

// safeToPromote reports whether every still-unexplored commit is
// guaranteed to have a generation lower than candidate's, so
// candidate's in-degree can never grow further and it may move to the
// output queue. An unknown generation on either side is treated
// conservatively (not yet safe), which only costs laziness, never
// correctness, against the commits this walk's commit-graph does not
// cover.
func safeToPromote(candidate, frontier *object.Commit, frontierPresent bool) bool {
	if !frontierPresent {
		return true
	}
	if !candidate.GenerationKnown() || !frontier.GenerationKnown() {
		return false
	}
	return frontier.Generation < candidate.Generation
}

func (g *graphTopoGenerator) promoteReady() {
	for {
		top, ok := g.indegreeOne.Peek()
		if !ok {
			return
		}
		frontier, frontierPresent := g.explore.Peek()
		if !safeToPromote(top, frontier, frontierPresent) {
			return
		}
		g.indegreeOne.Pop()
		if g.indegree[top.ID] != 1 {
			// Stale: top was discovered as another commit's parent (and
			// so re-incremented past 1) after it was pushed here.
			continue
		}
		g.ready.Push(top)
	}
}

func (g *graphTopoGenerator) next() (*object.Commit, error) {
	for {
		g.promoteReady()

		if c, ok := g.ready.Pop(); ok {
			for _, p := range c.Parents {
				if _, tracked := g.indegree[p.ID]; !tracked {
					continue
				}
				g.indegree[p.ID]--
				if g.indegree[p.ID] == 1 {
					g.indegreeOne.Push(p)
				}
			}
			return c, nil
		}

		ec, ok := g.explore.Pop()
		if !ok {
			return nil, nil
		}
		if err := g.exploreStep(ec); err != nil {
			return nil, err
		}
	}
}

// computeGeneration fills in c.Generation when every parent's generation
// is already known, matching gen(root)=0, gen(c)=1+max(gen(parents)). It
// is the fallback used for commits the external commit-graph does not
// cover; parents discovered later than c simply leave c's generation
// unknown, which the generation-ordered queues treat conservatively.
func computeGeneration(c *object.Commit) {
	if len(c.Parents) == 0 {
		c.Generation = 0
		return
	}
	max := int64(-1)
	for _, p := range c.Parents {
		if !p.GenerationKnown() {
			return
		}
		if p.Generation > max {
			max = p.Generation
		}
	}
	c.Generation = max + 1
}
