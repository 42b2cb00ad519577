// Package objwalk implements the tree/blob object walker described in
// §4.4: it wraps a commit walker, and after each interesting commit is
// emitted, streams every tree and blob reachable from that commit's root
// tree exactly once, pruning uninteresting subtrees as it goes. It plays
// the role the teacher's TreeWalker plays for a single tree - a stack of
// entry iterators that lazily enters subtrees - generalized to chain
// across every commit a wrapped revwalk.RevWalk emits and guarded by the
// same SEEN bit the commit generators use, rather than TreeWalker's
// unguarded re-visitation.
package objwalk

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
	"github.com/dagwalk/revwalk/objfmt"
	"github.com/dagwalk/revwalk/revwalk"
	"github.com/dagwalk/revwalk/store"
)

// maxTreeDepth bounds subtree recursion against a pathologically deep
// (but not cyclic - tree identifiers are content hashes, so no tree can
// reference itself) directory structure, following the teacher's
// TreeWalker.maxTreeDepth guard.
const maxTreeDepth = 1 << 12

// treeFrame is one entry in the walker's subtree stack: the decoded
// entries of a tree currently being streamed, and the index of the next
// entry to yield.
type treeFrame struct {
	entries []objfmt.TreeEntry
	idx     int
}

// Walker streams the trees and blobs reachable from the commits a
// wrapped RevWalk emits. It takes over that walker's pool per §5's
// sub-walker rule; the source RevWalk must not be used again once a
// Walker has been built from it.
type Walker struct {
	commits *revwalk.RevWalk
	pool    *object.Pool

	pendingRoots []identity.Identifier // commit trees awaiting their turn to stream
	stack        []treeFrame

	// OnCommit, when set, is invoked once for every commit the wrapped
	// RevWalk emits, before that commit's tree is queued for streaming -
	// the pre-walk hook §4.5 describes. The bitmap engine uses it to
	// record each commit position alongside the trees/blobs this walker
	// streams, so a single drain produces a full commit+object bitmap.
	OnCommit func(*object.Commit)
}

// NewWalker returns an object walker over commits. commits may already
// have MarkStart/MarkUninteresting/SetSort/etc. configured, but must not
// have had Next called yet only in the sense that objwalk does not
// re-validate that - it simply starts calling Next() itself on first use.
func NewWalker(commits *revwalk.RevWalk) *Walker {
	return &Walker{
		commits: commits,
		pool:    commits.Pool(),
	}
}

// Pool returns the pool shared with the wrapped commit walker.
func (w *Walker) Pool() *object.Pool { return w.pool }

func skip(n object.Node) bool {
	return n.Has(object.SEEN) || n.Has(object.UNINTERESTING)
}

// enterTree applies the SEEN/UNINTERESTING guard to id, and if it passes,
// marks it SEEN, parses its entries onto the stack, and returns the Tree
// node to emit. A nil, nil result means the caller should keep looking
// (the tree was already seen or is uninteresting).
func (w *Walker) enterTree(id identity.Identifier) (*object.Tree, error) {
	node := w.pool.LookupTree(id)
	if skip(node) {
		return nil, nil
	}
	if len(w.stack) >= maxTreeDepth {
		return nil, &tooDeepError{id: id}
	}

	_, entries, err := w.pool.ParseTree(id)
	if err != nil {
		return nil, err
	}
	node.Set(object.SEEN)
	w.stack = append(w.stack, treeFrame{entries: entries})
	return node, nil
}

// NextObject returns the next tree or blob in the walk, or (nil, nil)
// once every root tree pushed by the wrapped commit walker - including
// any the commit walker has not yet produced - has been fully streamed.
func (w *Walker) NextObject() (object.Node, error) {
	for {
		if len(w.stack) > 0 {
			top := &w.stack[len(w.stack)-1]
			if top.idx >= len(top.entries) {
				w.stack = w.stack[:len(w.stack)-1]
				continue
			}

			entry := top.entries[top.idx]
			top.idx++

			if entry.Mode == objfmt.Submodule {
				continue
			}

			if entry.Mode.IsDir() {
				t, err := w.enterTree(entry.ID)
				if err != nil {
					return nil, err
				}
				if t == nil {
					continue
				}
				return t, nil
			}

			blob := w.pool.LookupBlob(entry.ID)
			if skip(blob) {
				continue
			}
			blob.Set(object.SEEN)
			blob.Set(object.PARSED)
			return blob, nil
		}

		if len(w.pendingRoots) > 0 {
			id := w.pendingRoots[0]
			w.pendingRoots = w.pendingRoots[1:]
			t, err := w.enterTree(id)
			if err != nil {
				return nil, err
			}
			if t == nil {
				continue
			}
			return t, nil
		}

		c, err := w.commits.Next()
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, nil
		}
		if w.OnCommit != nil {
			w.OnCommit(c)
		}
		w.pendingRoots = append(w.pendingRoots, c.TreeID)
	}
}

// MarkTreeUninteresting marks id - expected to name a tree - and every
// tree/blob reachable from it as UNINTERESTING, so that a later
// NextObject call never streams them even if some other, still-
// interesting commit also references them, EXCEPT that SEEN already took
// precedence (an object already streamed stays streamed; this only
// affects objects not yet visited). This is the recursive propagation
// §4.4 requires and that the pedestrian reachability checker (§4.5)
// relies on directly, since commit-level UNINTERESTING does not, by
// itself, reach into a commit's tree.
func (w *Walker) MarkTreeUninteresting(id identity.Identifier) error {
	return w.markTreeUninteresting(id, 0)
}

func (w *Walker) markTreeUninteresting(id identity.Identifier, depth int) error {
	if depth >= maxTreeDepth {
		return &tooDeepError{id: id}
	}

	node := w.pool.LookupTree(id)
	if node.Has(object.UNINTERESTING) {
		return nil // already propagated by an earlier call
	}
	node.Set(object.UNINTERESTING)

	_, entries, err := w.pool.ParseTree(id)
	if err != nil {
		return err
	}
	for _, e := range entries {
		switch {
		case e.Mode == objfmt.Submodule:
			continue
		case e.Mode.IsDir():
			if err := w.markTreeUninteresting(e.ID, depth+1); err != nil {
				return err
			}
		default:
			w.pool.LookupBlob(e.ID).Set(object.UNINTERESTING)
		}
	}
	return nil
}

// DrainInto exhausts the walker, adding every tree and blob it streams to
// builder. This is the post-walk hook §4.5 describes: combined with the
// commit bitmap a bitmap.Walker already accumulates, it produces a full
// reachability bitmap for a commit that lacked a precomputed one.
func (w *Walker) DrainInto(builder store.BitmapBuilder) error {
	for {
		n, err := w.NextObject()
		if err != nil {
			return err
		}
		if n == nil {
			return nil
		}
		var t store.ObjectType
		switch n.Kind() {
		case object.TreeType:
			t = store.TreeType
		case object.BlobType:
			t = store.BlobType
		}
		builder.AddObject(n.Identifier(), t)
	}
}

// tooDeepError reports a subtree nested deeper than maxTreeDepth, the
// object-walk analogue of the teacher's ErrMaxTreeDepth.
type tooDeepError struct {
	id identity.Identifier
}

func (e *tooDeepError) Error() string {
	return "objwalk: tree nesting exceeds maximum depth at " + e.id.String()
}
