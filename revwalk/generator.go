package revwalk

import "github.com/dagwalk/revwalk/object"

// outputKind describes what a generator's stream guarantees - the
// "output_type() -> bitset" contract. RevWalk.build chooses its stages
// from the walk's own settings and does not consult it.
type outputKind uint8

const (
	outHasUninteresting outputKind = 1 << iota
	outSortTopo
	outSortTimeDesc
	outNeedsRewrite
)

// generator is a lazy source of commits: the common shape every pipeline
// stage satisfies, following the nested-iterator composition the
// teacher's commitPreIterator/commitPostIterator/commitAllIterator use,
// generalized into an explicit interface so stages can be composed
// without a concrete iterator type for each combination of filters.
type generator interface {
	// next returns the next commit in the stage's stream, or (nil, nil)
	// when the stream is exhausted.
	next() (*object.Commit, error)
	outputType() outputKind
}

// funcGenerator adapts a plain function into a generator, for small
// stages that do not need their own named type.
type funcGenerator struct {
	fn  func() (*object.Commit, error)
	out outputKind
}

func (g *funcGenerator) next() (*object.Commit, error) { return g.fn() }
func (g *funcGenerator) outputType() outputKind         { return g.out }
