package bitmap

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/store"
)

// Builder accumulates a Bitmap for objects that have no precomputed
// position in an external index: it assigns each newly-seen identifier
// a position of its own the first time AddObject sees it, satisfying
// store.BitmapBuilder without depending on the bitmap index's (out of
// scope) position-assignment scheme.
type Builder struct {
	bits      *Bitmap
	positions map[identity.Identifier]uint64
	next      uint64
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		bits:      New(),
		positions: make(map[identity.Identifier]uint64),
	}
}

func (b *Builder) positionFor(id identity.Identifier) uint64 {
	if pos, ok := b.positions[id]; ok {
		return pos
	}
	pos := b.next
	b.positions[id] = pos
	b.next++
	return pos
}

// Or unions an externally-sourced bitmap (e.g. one fetched from a
// BitmapIndex) into the builder's accumulator. Since the external
// bitmap's positions are store-assigned and this builder's are
// self-assigned, Or is only meaningful when both sides share the same
// position space - true for every Or call this module makes, since they
// all originate from the same BitmapIndex the builder was created
// alongside.
func (b *Builder) Or(other store.Bitmap) {
	if other == nil {
		return
	}
	other.ForEach(func(pos uint64) bool {
		b.bits.Set(pos)
		return true
	})
}

// AddObject assigns id a position (if it does not have one yet) and
// marks it present.
func (b *Builder) AddObject(id identity.Identifier, _ store.ObjectType) {
	b.bits.Set(b.positionFor(id))
}

// Contains reports whether id has been added to this builder.
func (b *Builder) Contains(id identity.Identifier) bool {
	pos, ok := b.positions[id]
	if !ok {
		return false
	}
	return b.bits.Contains(pos)
}

// Bitmap returns the accumulated bitmap.
func (b *Builder) Bitmap() store.Bitmap {
	return b.bits
}
