package revwalk

import "github.com/dagwalk/revwalk/object"

// commitDeque is a small double-ended queue of commits, used by the
// classical topo generator to both drain its initial ready set in order
// and re-insert newly-ready commits at the front so they emit
// immediately after their last child, per §4.3.4.
type commitDeque struct {
	items []*object.Commit
}

func (d *commitDeque) pushBack(c *object.Commit)  { d.items = append(d.items, c) }
func (d *commitDeque) pushFront(c *object.Commit) { d.items = append([]*object.Commit{c}, d.items...) }
func (d *commitDeque) popFront() (*object.Commit, bool) {
	if len(d.items) == 0 {
		return nil, false
	}
	c := d.items[0]
	d.items = d.items[1:]
	return c, true
}

// classicalTopoGenerator fully drains its upstream, computes in-degree
// (count of interesting children) for every buffered commit, then emits
// in child-before-parent order: a commit is only popped once every
// child that references it has already been emitted. Grounded on
// commitnode_walker_topo_order.go's explore/visit in-degree bookkeeping,
// adapted from CommitNode to *object.Commit and from its stack-based
// exploration to an explicit up-front drain (this module's upstream
// stages are already lazy generators, so a second lazy layer on top
// would only complicate the in-degree accounting for no benefit).
type classicalTopoGenerator struct {
	ready   commitDeque
	drained bool
}

func newClassicalTopoGenerator(upstream generator) (*classicalTopoGenerator, error) {
	g := &classicalTopoGenerator{}

	var all []*object.Commit
	inSet := make(map[*object.Commit]bool)
	for {
		c, err := upstream.next()
		if err != nil {
			return nil, err
		}
		if c == nil {
			break
		}
		all = append(all, c)
		inSet[c] = true
		c.InDegree = 0
		c.Set(object.TOPO_QUEUED)
	}
	for _, c := range all {
		for _, p := range c.Parents {
			if inSet[p] {
				p.InDegree++
			}
		}
	}
	for _, c := range all {
		if c.InDegree == 0 {
			g.ready.pushBack(c)
		}
	}

	return g, nil
}

func (g *classicalTopoGenerator) outputType() outputKind {
	return outSortTopo
}

func (g *classicalTopoGenerator) next() (*object.Commit, error) {
	c, ok := g.ready.popFront()
	if !ok {
		return nil, nil
	}
	c.Clear(object.TOPO_QUEUED)

	for _, p := range c.Parents {
		if !p.Has(object.TOPO_QUEUED) {
			continue
		}
		p.InDegree--
		if p.InDegree <= 0 {
			g.ready.pushFront(p)
		}
	}

	return c, nil
}
