// Package identity implements the fixed-width binary object identifier
// shared by every revision object in a pool.
package identity

import (
	"bytes"
	"encoding/hex"
	"sort"
	"strconv"

	"github.com/pjbgf/sha1cd"
)

// Size is the length, in bytes, of a raw Identifier.
const Size = 20

// HexSize is the length, in characters, of an Identifier's hex rendering.
const HexSize = Size * 2

// Identifier is the fixed 20-byte hash that keys every revision object in
// a Pool. It is comparable and usable as a map key.
type Identifier [Size]byte

// Zero is the identifier with all bytes set to zero. No real object ever
// hashes to it; it is used as a sentinel for "no object".
var Zero Identifier

// FromHex parses a 40-character hex string into an Identifier. It returns
// false if s is not exactly HexSize hex digits.
func FromHex(s string) (Identifier, bool) {
	var id Identifier
	if len(s) != HexSize {
		return id, false
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return id, false
	}

	copy(id[:], b)
	return id, true
}

// FromBytes copies a 20-byte raw identifier out of b. It panics if b is
// shorter than Size, matching the teacher's convention that raw-byte
// object IDs are always pre-sliced to length by the caller.
func FromBytes(b []byte) Identifier {
	var id Identifier
	copy(id[:], b[:Size])
	return id
}

// String renders the identifier as 40 lowercase hex characters.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether id is the zero identifier.
func (id Identifier) IsZero() bool {
	return id == Zero
}

// Compare does a raw byte-wise comparison, matching the ordering used to
// sort identifiers and to break insertion ties deterministically.
func (id Identifier) Compare(other Identifier) int {
	return bytes.Compare(id[:], other[:])
}

// Sort sorts a slice of identifiers in increasing byte order.
func Sort(ids []Identifier) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Compare(ids[j]) < 0
	})
}

// ComputeHasher computes the canonical object identifier for a piece of
// object content the way the store would: sha1("<type> <len>\x00<content>").
// It is used by tests to synthesize objects and validate the round trip
// described in the testable properties (encode, then validate, then hash).
func ComputeHasher(objectType string, content []byte) Identifier {
	header := objectType + " " + strconv.Itoa(len(content)) + "\x00"
	h := sha1cd.New()
	h.Write([]byte(header))
	h.Write(content)
	return FromBytes(h.Sum(nil))
}
