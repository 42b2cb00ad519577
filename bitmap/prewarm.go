package bitmap

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/revwalk"
	"github.com/dagwalk/revwalk/store"
)

// PrewarmBitmaps computes and discards a commit reachability bitmap (via
// Walker.Reachable) for
// each of ids, concurrency bounded by parallelism, so that a
// bitmap-index builder can warm its per-commit bitmaps ahead of time
// without serializing one walk after another. It is a supplemented
// maintenance helper; nothing in §4.5 requires concurrency, but every
// walk it runs is independent (separate RevWalk, separate pool), so
// bounded fan-out is a natural fit - the same shape luxfi-consensus
// uses golang.org/x/sync/errgroup for when fanning out independent
// per-item work with a shared cancellation.
func PrewarmBitmaps(ctx context.Context, reader store.ObjectReader, index store.BitmapIndex, ids []identity.Identifier, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w := revwalk.New(reader)
			bw := NewWalker(index)
			_, err := bw.Reachable(w, []identity.Identifier{id}, false)
			return err
		})
	}

	return g.Wait()
}
