// Package store declares the narrow, abstract contracts this module
// consumes from external collaborators: the object store, the optional
// commit-graph supplementary index, the optional bitmap index, and the
// progress/cancellation handle. None of these are implemented here - the
// pack/loose object format, the commit-graph file layout, and the bitmap
// index's on-disk layout are all explicitly out of scope (§1); this
// package only names the shape a provider of each must expose, following
// the teacher's storer.EncodedObjectStorer / commitgraph.Index split
// between "what a consumer needs" and "how a provider implements it".
package store

import (
	"io"

	"github.com/dagwalk/revwalk/identity"
)

// ObjectType mirrors object.Type without importing the object package,
// which would create an import cycle (object.Pool itself depends on
// ObjectReader to resolve stub content).
type ObjectType int8

const (
	InvalidType ObjectType = 0
	CommitType  ObjectType = 1
	TreeType    ObjectType = 2
	BlobType    ObjectType = 3
	TagType     ObjectType = 4
)

// ObjectLoader exposes a single object's type, size, and raw content,
// matching the teacher's plumbing.EncodedObject shape.
type ObjectLoader interface {
	Type() ObjectType
	Size() int64
	Reader() (io.ReadCloser, error)
}

// ObjectReader is the external object store collaborator. Implementations
// live over a pack/loose store, a transactional layer, or an in-memory
// map; this module only ever calls through this interface.
type ObjectReader interface {
	// Open returns the loader for id. typeHint, when not InvalidType, lets
	// a store that indexes by type short-circuit a type scan; it is
	// advisory only and must not be trusted without verification.
	Open(id identity.Identifier, typeHint ObjectType) (ObjectLoader, error)

	// Has reports whether id is present, without loading it.
	Has(id identity.Identifier) (bool, error)

	// ShallowCommits returns the identifiers of commits this store has
	// recorded as shallow (their parents intentionally hidden).
	ShallowCommits() (map[identity.Identifier]bool, error)

	// CommitGraph returns the repository's supplementary commit-graph
	// index, if one is available.
	CommitGraph() (CommitGraph, bool)

	// BitmapIndex returns the repository's precomputed reachability
	// bitmap index, if one is available.
	BitmapIndex() (BitmapIndex, bool)
}

// CommitGraph is the supplementary commit-graph collaborator: a compact,
// separately maintained index of commit metadata keyed by a dense integer
// position rather than by identifier, used to avoid parsing full commit
// objects during traversal. Its on-disk layout is out of scope; only this
// access contract is.
type CommitGraph interface {
	// FindPosition returns id's position in the graph, if present.
	FindPosition(id identity.Identifier) (int, bool)

	// CommitData returns the tree, commit time, parent positions, and
	// generation number recorded at pos.
	CommitData(pos int) (tree identity.Identifier, commitTime int64, parentPositions []int, generation int64, err error)

	// IdentifierAt resolves a graph position back to an object identifier.
	IdentifierAt(pos int) (identity.Identifier, error)
}

// Bitmap is a read-only, positionally-indexed set of objects reachable
// from some commit. Positions are store-assigned dense integers, not
// identifiers, matching the teacher's ewah-backed bitmap shape.
type Bitmap interface {
	Contains(pos uint64) bool
	ForEach(func(pos uint64) bool)
}

// BitmapBuilder accumulates a Bitmap via union and explicit object
// additions, used by bitmap.Walker's post-walk hook to build a full
// reachability bitmap for a commit that lacked a precomputed one.
type BitmapBuilder interface {
	Or(Bitmap)
	AddObject(id identity.Identifier, t ObjectType)
	Contains(id identity.Identifier) bool
	Bitmap() Bitmap
}

// BitmapIndex is the external, precomputed reachability bitmap
// collaborator described in §4.5. Its on-disk layout is out of scope.
type BitmapIndex interface {
	// Get returns the precomputed bitmap for id, if this index covers it.
	Get(id identity.Identifier) (Bitmap, bool)
	// NewBuilder returns an empty builder for assembling a fresh bitmap.
	NewBuilder() BitmapBuilder
	// PositionOf returns id's dense integer position in this index's
	// shared addressing space, if the index assigns one. Every bitmap
	// this index hands out (via Get or via a builder's Or) is expressed
	// in this same space, so a walker can test "does the accumulator
	// already cover id" without re-deriving a bitmap for id alone.
	PositionOf(id identity.Identifier) (uint64, bool)
}

// ProgressMonitor is the cooperative progress/cancellation handle
// interface (§5, §6). No walker or query in this module takes one as a
// parameter, so nothing here reports progress or checks for cancellation.
type ProgressMonitor interface {
	Update(n int)
	IsCancelled() bool
}

// NullProgressMonitor is the always-available no-op implementation.
type NullProgressMonitor struct{}

func (NullProgressMonitor) Update(int)        {}
func (NullProgressMonitor) IsCancelled() bool { return false }
