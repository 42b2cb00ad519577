package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagwalk/revwalk/identity"
)

func TestBitmapSetContainsForEach(t *testing.T) {
	b := New()
	b.Set(3)
	b.Set(130)

	require.True(t, b.Contains(3))
	require.True(t, b.Contains(130))
	require.False(t, b.Contains(4))

	var seen []uint64
	b.ForEach(func(pos uint64) bool {
		seen = append(seen, pos)
		return true
	})
	require.Equal(t, []uint64{3, 130}, seen)
}

func TestBitmapForEachStopsEarly(t *testing.T) {
	b := New()
	b.Set(1)
	b.Set(2)
	b.Set(3)

	var seen []uint64
	b.ForEach(func(pos uint64) bool {
		seen = append(seen, pos)
		return pos != 2
	})
	require.Equal(t, []uint64{1, 2}, seen)
}

func TestBitmapOr(t *testing.T) {
	a := New()
	a.Set(1)
	b := New()
	b.Set(64)

	a.Or(b)
	require.True(t, a.Contains(1))
	require.True(t, a.Contains(64))
}

func TestBuilderAssignsPositionsAndTracksContains(t *testing.T) {
	b := NewBuilder()
	idA := identity.Identifier{1}
	idB := identity.Identifier{2}

	b.AddObject(idA, 0)
	b.AddObject(idB, 0)
	b.AddObject(idA, 0) // re-adding must not move idA's position

	require.True(t, b.Contains(idA))
	require.True(t, b.Contains(idB))
	require.False(t, b.Contains(identity.Identifier{3}))
}

func TestBuilderOrUnionsExternalBitmap(t *testing.T) {
	external := New()
	external.Set(5)
	external.Set(9)

	b := NewBuilder()
	b.Or(external)

	bm := b.Bitmap()
	require.True(t, bm.Contains(5))
	require.True(t, bm.Contains(9))
}
