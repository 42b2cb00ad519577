package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/internal/testrepo"
	"github.com/dagwalk/revwalk/revwalk"
	"github.com/dagwalk/revwalk/store"
)

// fakeIndex is a minimal store.BitmapIndex: every identifier registered
// via precompute gets a dense position and an owning bitmap.
type fakeIndex struct {
	positions map[identity.Identifier]uint64
	bitmaps   map[identity.Identifier]*Bitmap
	next      uint64
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		positions: make(map[identity.Identifier]uint64),
		bitmaps:   make(map[identity.Identifier]*Bitmap),
	}
}

func (f *fakeIndex) positionFor(id identity.Identifier) uint64 {
	if pos, ok := f.positions[id]; ok {
		return pos
	}
	pos := f.next
	f.positions[id] = pos
	f.next++
	return pos
}

// precompute registers id as having a bitmap covering id itself plus
// every identifier in reachable.
func (f *fakeIndex) precompute(id identity.Identifier, reachable ...identity.Identifier) {
	bm := New()
	bm.Set(f.positionFor(id))
	for _, r := range reachable {
		bm.Set(f.positionFor(r))
	}
	f.bitmaps[id] = bm
}

func (f *fakeIndex) Get(id identity.Identifier) (store.Bitmap, bool) {
	bm, ok := f.bitmaps[id]
	return bm, ok
}

func (f *fakeIndex) NewBuilder() store.BitmapBuilder { return NewBuilder() }

func (f *fakeIndex) PositionOf(id identity.Identifier) (uint64, bool) {
	pos, ok := f.positions[id]
	return pos, ok
}

func TestReachableUsesPrecomputedBitmapWithZeroMisses(t *testing.T) {
	s := testrepo.New()
	tree := s.Tree()
	a := s.Commit(tree, 100)
	b := s.Commit(tree, 200, a)
	x := s.Commit(tree, 100)

	idx := newFakeIndex()
	idx.precompute(x, a, b)

	bw := NewWalker(idx)
	res, err := bw.Reachable(revwalk.New(s), []identity.Identifier{x}, false)
	require.NoError(t, err)
	require.Equal(t, 0, res.Misses)

	posA, _ := idx.PositionOf(a)
	require.True(t, res.Bitmap.Contains(posA))
}

func TestReachableWalksGapWhenNoPrecomputedBitmap(t *testing.T) {
	s := testrepo.New()
	tree := s.Tree()
	a := s.Commit(tree, 100)
	b := s.Commit(tree, 200, a)

	idx := newFakeIndex()
	// no precomputed bitmap for b at all: the walk must discover a itself.
	idx.positionFor(a)
	idx.positionFor(b)

	bw := NewWalker(idx)
	res, err := bw.Reachable(revwalk.New(s), []identity.Identifier{b}, false)
	require.NoError(t, err)
	require.Equal(t, 2, res.Misses) // both b and a were walked directly

	posA, _ := idx.PositionOf(a)
	posB, _ := idx.PositionOf(b)
	require.True(t, res.Bitmap.Contains(posA))
	require.True(t, res.Bitmap.Contains(posB))
}

func TestReachableStopsDescendingPastPrecomputedCommit(t *testing.T) {
	s := testrepo.New()
	tree := s.Tree()
	root := s.Commit(tree, 100)
	mid := s.Commit(tree, 200, root)
	tip := s.Commit(tree, 300, mid)

	idx := newFakeIndex()
	idx.precompute(mid, root) // mid's bitmap already covers root

	bw := NewWalker(idx)
	res, err := bw.Reachable(revwalk.New(s), []identity.Identifier{tip}, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.Misses) // only tip itself had to be walked

	posRoot, _ := idx.PositionOf(root)
	posMid, _ := idx.PositionOf(mid)
	require.True(t, res.Bitmap.Contains(posRoot))
	require.True(t, res.Bitmap.Contains(posMid))
}

func TestFullReachableDrainsObjectsIntoBuilder(t *testing.T) {
	s := testrepo.New()
	blob := s.Blob("content")
	tree := s.Tree(testrepo.Entry{Name: "f.txt", Mode: 0o100644, ID: blob})
	c := s.Commit(tree, 100)

	idx := newFakeIndex()
	idx.positionFor(c)

	bw := NewWalker(idx)
	builder := NewBuilder()
	_, err := bw.FullReachable(revwalk.New(s), []identity.Identifier{c}, builder)
	require.NoError(t, err)

	require.True(t, builder.Contains(c))
	require.True(t, builder.Contains(tree))
	require.True(t, builder.Contains(blob))
}
