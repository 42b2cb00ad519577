package revwalk

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
)

// LimitOptions is a supplemented terminal filter stage modeled on the
// teacher's LogLimitOptions (plumbing/object/commit_walker_limit.go):
// a caller-facing convenience on top of the raw generator pipeline for
// the common "log --since/--until/<path> <rev>" shape, rather than
// requiring every caller to hand-write a RevFilter closure.
type LimitOptions struct {
	// Since excludes commits committed at or before this time, when
	// non-zero.
	Since int64
	// Until excludes commits committed after this time, when non-zero.
	Until int64
	// TailID, when set, stops emission (inclusively) once this commit is
	// produced, matching go-git's TailHash early-stop behavior.
	TailID identity.Identifier
}

// limitGenerator applies LimitOptions over an already-ordered upstream
// stream. It is always the outermost stage, after SortReverse, since it
// needs to see final emission order to honor TailID.
type limitGenerator struct {
	upstream generator
	opts     LimitOptions
	stopped  bool
}

func newLimitGenerator(upstream generator, opts LimitOptions) *limitGenerator {
	return &limitGenerator{upstream: upstream, opts: opts}
}

func (g *limitGenerator) outputType() outputKind { return g.upstream.outputType() }

func (g *limitGenerator) next() (*object.Commit, error) {
	if g.stopped {
		return nil, nil
	}

	for {
		c, err := g.upstream.next()
		if err != nil || c == nil {
			return c, err
		}

		if g.opts.Since != 0 && c.CommitTime <= g.opts.Since {
			continue
		}
		if g.opts.Until != 0 && c.CommitTime > g.opts.Until {
			continue
		}

		if !g.opts.TailID.IsZero() && c.ID == g.opts.TailID {
			g.stopped = true
			return c, nil
		}

		return c, nil
	}
}
