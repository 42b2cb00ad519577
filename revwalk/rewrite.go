package revwalk

import "github.com/dagwalk/revwalk/object"

// treeFilterGenerator wraps an upstream generator and, for every commit
// it passes through, decides whether the commit is equivalent to its
// parents for the caller's path filter. A commit that has parents, none
// of which differ, is marked REWRITE; a commit with no parents at all
// trivially introduces the whole tree and is never marked.
// TREE_FILTER_APPLIED is set unconditionally, letting the rewrite stage
// below know the decision is final. Grounded on §4.3.2; no teacher
// equivalent exists (go-git's difftree operates on a single pair of
// trees, not as a pipeline stage), so this follows the spec's own
// description rather than an example file.
type treeFilterGenerator struct {
	upstream generator
	differ   TreeDiffer
}

func newTreeFilterGenerator(upstream generator, differ TreeDiffer) *treeFilterGenerator {
	return &treeFilterGenerator{upstream: upstream, differ: differ}
}

func (g *treeFilterGenerator) outputType() outputKind {
	return g.upstream.outputType() | outNeedsRewrite
}

func (g *treeFilterGenerator) next() (*object.Commit, error) {
	c, err := g.upstream.next()
	if err != nil || c == nil {
		return c, err
	}

	if len(c.Parents) > 0 {
		anyDiffers := false
		for _, p := range c.Parents {
			differs, err := g.differ(c.ID, p.ID)
			if err != nil {
				return nil, err
			}
			if differs {
				anyDiffers = true
				break
			}
		}
		if !anyDiffers {
			c.Set(object.REWRITE)
		}
	}
	c.Set(object.TREE_FILTER_APPLIED)

	return c, nil
}

// rewriteGenerator collapses REWRITE-marked parents out of the emitted
// commit graph, splicing each surviving parent pointer to the nearest
// non-REWRITE ancestor along a first-parent chain. Merge commits and
// UNINTERESTING commits are never collapsed, per §4.3.3. Because the
// upstream frontier is date-ordered, a commit's parents are usually not
// yet processed by the tree filter when the commit itself is ready to
// emit; rewriteGenerator buffers extra pulls from upstream until every
// direct parent carries TREE_FILTER_APPLIED, so the REWRITE bits it
// reads are never read before they are written.
type rewriteGenerator struct {
	upstream generator
	buffer   []*object.Commit
}

func newRewriteGenerator(upstream generator) *rewriteGenerator {
	return &rewriteGenerator{upstream: upstream}
}

func (g *rewriteGenerator) outputType() outputKind {
	return g.upstream.outputType() &^ outNeedsRewrite
}

// pump pulls one more commit from upstream into the buffer, returning it
// (or nil once upstream is exhausted).
func (g *rewriteGenerator) pump() (*object.Commit, error) {
	c, err := g.upstream.next()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	g.buffer = append(g.buffer, c)
	return c, nil
}

// awaitApplied pumps upstream until p carries TREE_FILTER_APPLIED or
// upstream is exhausted (which happens when p will never be visited by
// the tree filter, e.g. it lies outside the walked range).
func (g *rewriteGenerator) awaitApplied(p *object.Commit) error {
	for !p.Has(object.TREE_FILTER_APPLIED) {
		more, err := g.pump()
		if err != nil {
			return err
		}
		if more == nil {
			return nil
		}
	}
	return nil
}

// resolve walks p's first-parent REWRITE chain to the nearest ancestor
// that should actually appear as a parent pointer.
func (g *rewriteGenerator) resolve(p *object.Commit) (*object.Commit, error) {
	cur := p
	for cur.Has(object.REWRITE) && len(cur.Parents) == 1 && !cur.Has(object.UNINTERESTING) {
		next := cur.Parents[0]
		if err := g.awaitApplied(next); err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (g *rewriteGenerator) next() (*object.Commit, error) {
	for {
		var c *object.Commit
		if len(g.buffer) > 0 {
			c = g.buffer[0]
			g.buffer = g.buffer[1:]
		} else {
			var err error
			c, err = g.pump()
			if err != nil || c == nil {
				return c, err
			}
			// pump appended c to the buffer; it is being returned now, not
			// held for a later next() call.
			g.buffer = g.buffer[:len(g.buffer)-1]
		}

		for _, p := range c.Parents {
			if err := g.awaitApplied(p); err != nil {
				return nil, err
			}
		}

		// Capture the original parent count before splicing: a commit
		// collapses out of its own emission under exactly the same
		// condition resolve() uses to splice it out of a child's parent
		// list, and resolve() decides that against the parent list as it
		// stood before any rewriting.
		originalParents := len(c.Parents)

		resolved := make([]*object.Commit, 0, len(c.Parents))
		seen := make(map[*object.Commit]bool, len(c.Parents))
		for _, p := range c.Parents {
			r, err := g.resolve(p)
			if err != nil {
				return nil, err
			}
			if !seen[r] {
				seen[r] = true
				resolved = append(resolved, r)
			}
		}
		c.Parents = resolved

		if c.Has(object.REWRITE) && originalParents == 1 && !c.Has(object.UNINTERESTING) {
			// Equivalent to its single parent for the filtered paths:
			// collapsed out of the simplified history, not just spliced
			// out of its children's parent lists.
			continue
		}

		return c, nil
	}
}
