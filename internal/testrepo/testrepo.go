// Package testrepo is a tiny in-memory store.ObjectReader plus a builder
// for synthesizing commits, trees, and blobs with canonical byte
// encodings, shared by the test suites of the packages that sit above
// revwalk (objwalk, bitmap, reachability, mergebase) and need real tree
// objects, not just commits. Grounded on the teacher's own
// internal/test helper package: a small, shared, non-production
// collaborator the test suites import rather than each hand-rolling one.
package testrepo

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strconv"

	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/store"
)

type loader struct {
	typ  store.ObjectType
	body []byte
}

func (l loader) Type() store.ObjectType { return l.typ }
func (l loader) Size() int64            { return int64(len(l.body)) }
func (l loader) Reader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.body)), nil
}

// ErrNotFound is returned by Open for an identifier the store never saw.
var ErrNotFound = errors.New("testrepo: object not found")

// Store is an in-memory store.ObjectReader. Graph and Bitmaps are nil by
// default (no commit-graph, no bitmap index); tests that need either set
// them directly before use.
type Store struct {
	objects map[identity.Identifier]loader
	shallow map[identity.Identifier]bool
	Graph   store.CommitGraph
	Bitmaps store.BitmapIndex
}

// New returns an empty store.
func New() *Store {
	return &Store{
		objects: make(map[identity.Identifier]loader),
		shallow: make(map[identity.Identifier]bool),
	}
}

func (s *Store) Open(id identity.Identifier, _ store.ObjectType) (store.ObjectLoader, error) {
	l, ok := s.objects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

func (s *Store) Has(id identity.Identifier) (bool, error) {
	_, ok := s.objects[id]
	return ok, nil
}

func (s *Store) ShallowCommits() (map[identity.Identifier]bool, error) { return s.shallow, nil }

func (s *Store) MarkShallow(id identity.Identifier) { s.shallow[id] = true }

func (s *Store) CommitGraph() (store.CommitGraph, bool) { return s.Graph, s.Graph != nil }

func (s *Store) BitmapIndex() (store.BitmapIndex, bool) { return s.Bitmaps, s.Bitmaps != nil }

// Entry is one tree entry a caller supplies to Tree, in any order - Tree
// sorts them into canonical order before encoding.
type Entry struct {
	Name string
	Mode uint32 // one of the objfmt.FileMode octal constants
	ID   identity.Identifier
}

// Blob stores content as a blob and returns its identifier.
func (s *Store) Blob(content string) identity.Identifier {
	raw := []byte(content)
	id := identity.ComputeHasher("blob", raw)
	s.objects[id] = loader{typ: store.BlobType, body: raw}
	return id
}

// Tree encodes entries in canonical tree-sort order and returns the
// resulting tree's identifier.
func (s *Store) Tree(entries ...Entry) identity.Identifier {
	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return compareTreeNames(sorted[i], sorted[j]) < 0
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		buf.WriteString(strconv.FormatUint(uint64(e.Mode), 8))
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.ID[:])
	}

	raw := buf.Bytes()
	id := identity.ComputeHasher("tree", raw)
	s.objects[id] = loader{typ: store.TreeType, body: raw}
	return id
}

func compareTreeNames(a, b Entry) int {
	const dirMode = 0o40000
	aIsDir := a.Mode&0o170000 == dirMode
	bIsDir := b.Mode&0o170000 == dirMode

	n := len(a.Name)
	if len(b.Name) < n {
		n = len(b.Name)
	}
	if c := bytes.Compare([]byte(a.Name[:n]), []byte(b.Name[:n])); c != 0 {
		return c
	}

	var aTail, bTail byte
	if n < len(a.Name) {
		aTail = a.Name[n]
	} else if aIsDir {
		aTail = '/'
	}
	if n < len(b.Name) {
		bTail = b.Name[n]
	} else if bIsDir {
		bTail = '/'
	}
	switch {
	case aTail < bTail:
		return -1
	case aTail > bTail:
		return 1
	default:
		return 0
	}
}

// Commit encodes a commit with the given tree, commit time, and parents
// (author/committer share the same timestamp and a fixed identity) and
// returns its identifier.
func (s *Store) Commit(tree identity.Identifier, commitTime int64, parents ...identity.Identifier) identity.Identifier {
	var buf bytes.Buffer
	buf.WriteString("tree " + tree.String() + "\n")
	for _, p := range parents {
		buf.WriteString("parent " + p.String() + "\n")
	}
	buf.WriteString("author A U Thor <a@example.com> " + itoa(commitTime) + " +0000\n")
	buf.WriteString("committer A U Thor <a@example.com> " + itoa(commitTime) + " +0000\n")
	buf.WriteString("\ncommit at " + itoa(commitTime) + "\n")

	raw := buf.Bytes()
	id := identity.ComputeHasher("commit", raw)
	s.objects[id] = loader{typ: store.CommitType, body: raw}
	return id
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}
