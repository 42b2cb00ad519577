package revwalk

import "github.com/dagwalk/revwalk/object"

// reverseGenerator buffers its entire upstream and replays it back to
// front, implementing SortReverse. It necessarily loses pull-driven
// laziness for the duration of the first next() call; this mirrors the
// teacher's own SortCommits helper (commit.go), which is likewise an
// eager, buffer-everything operation layered on top of a lazy iterator.
type reverseGenerator struct {
	upstream generator
	buffered bool
	items    []*object.Commit
	pos      int
}

func newReverseGenerator(upstream generator) *reverseGenerator {
	return &reverseGenerator{upstream: upstream}
}

func (g *reverseGenerator) outputType() outputKind {
	return g.upstream.outputType()
}

func (g *reverseGenerator) fill() error {
	for {
		c, err := g.upstream.next()
		if err != nil {
			return err
		}
		if c == nil {
			break
		}
		g.items = append(g.items, c)
	}
	for i, j := 0, len(g.items)-1; i < j; i, j = i+1, j-1 {
		g.items[i], g.items[j] = g.items[j], g.items[i]
	}
	g.buffered = true
	return nil
}

func (g *reverseGenerator) next() (*object.Commit, error) {
	if !g.buffered {
		if err := g.fill(); err != nil {
			return nil, err
		}
	}
	if g.pos >= len(g.items) {
		return nil, nil
	}
	c := g.items[g.pos]
	g.pos++
	return c, nil
}
