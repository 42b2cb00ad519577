package objwalk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/internal/testrepo"
	"github.com/dagwalk/revwalk/object"
	"github.com/dagwalk/revwalk/objfmt"
	"github.com/dagwalk/revwalk/revwalk"
)

func drain(t *testing.T, w *Walker) []identity.Identifier {
	t.Helper()
	var ids []identity.Identifier
	for {
		n, err := w.NextObject()
		require.NoError(t, err)
		if n == nil {
			return ids
		}
		ids = append(ids, n.Identifier())
	}
}

func TestStreamsRootTreeAndBlobsOnce(t *testing.T) {
	s := testrepo.New()
	b1 := s.Blob("hello")
	t1 := s.Tree(testrepo.Entry{Name: "a.txt", Mode: uint32(objfmt.Regular), ID: b1})
	c1 := s.Commit(t1, 100)

	rw := revwalk.New(s)
	require.NoError(t, rw.MarkStart(c1))

	ow := NewWalker(rw)
	ids := drain(t, ow)
	require.Equal(t, []identity.Identifier{t1, b1}, ids)
}

func TestSharedBlobEmittedOnceAcrossCommits(t *testing.T) {
	s := testrepo.New()
	b1 := s.Blob("unchanged")
	b2 := s.Blob("new in B")

	t1 := s.Tree(testrepo.Entry{Name: "a.txt", Mode: uint32(objfmt.Regular), ID: b1})
	t2 := s.Tree(
		testrepo.Entry{Name: "a.txt", Mode: uint32(objfmt.Regular), ID: b1},
		testrepo.Entry{Name: "b.txt", Mode: uint32(objfmt.Regular), ID: b2},
	)

	c1 := s.Commit(t1, 100)
	c2 := s.Commit(t2, 200, c1)

	rw := revwalk.New(s)
	require.NoError(t, rw.MarkStart(c2))

	ow := NewWalker(rw)
	ids := drain(t, ow)

	// t2's entries stream in canonical tree order (a.txt, b.txt); t1 then
	// contributes only itself, since its sole entry (b1) was already
	// streamed while t2 was current.
	require.Equal(t, []identity.Identifier{t2, b1, b2, t1}, ids)
}

func TestSubtreeEnteredLazily(t *testing.T) {
	s := testrepo.New()
	leaf := s.Blob("leaf content")
	sub := s.Tree(testrepo.Entry{Name: "leaf.txt", Mode: uint32(objfmt.Regular), ID: leaf})
	root := s.Tree(testrepo.Entry{Name: "dir", Mode: uint32(objfmt.Dir), ID: sub})
	c1 := s.Commit(root, 100)

	rw := revwalk.New(s)
	require.NoError(t, rw.MarkStart(c1))

	ow := NewWalker(rw)
	ids := drain(t, ow)
	require.Equal(t, []identity.Identifier{root, sub, leaf}, ids)
}

func TestSubmoduleEntrySkipped(t *testing.T) {
	s := testrepo.New()
	sub := identity.ComputeHasher("commit", []byte("not a real blob or tree"))
	blob := s.Blob("content")
	root := s.Tree(
		testrepo.Entry{Name: "gitlink", Mode: uint32(objfmt.Submodule), ID: sub},
		testrepo.Entry{Name: "file.txt", Mode: uint32(objfmt.Regular), ID: blob},
	)
	c1 := s.Commit(root, 100)

	rw := revwalk.New(s)
	require.NoError(t, rw.MarkStart(c1))

	ow := NewWalker(rw)
	ids := drain(t, ow)
	require.Equal(t, []identity.Identifier{root, blob}, ids)
}

func TestMarkTreeUninterestingPrunesClosure(t *testing.T) {
	s := testrepo.New()
	b1 := s.Blob("shared")
	tree := s.Tree(testrepo.Entry{Name: "a.txt", Mode: uint32(objfmt.Regular), ID: b1})
	c1 := s.Commit(tree, 100)

	rw := revwalk.New(s)
	require.NoError(t, rw.MarkStart(c1))

	ow := NewWalker(rw)
	require.NoError(t, ow.MarkTreeUninteresting(tree))

	require.Empty(t, drain(t, ow))
}

func TestOnCommitHookFiresBeforeTreeStreamed(t *testing.T) {
	s := testrepo.New()
	blob := s.Blob("x")
	tree := s.Tree(testrepo.Entry{Name: "x.txt", Mode: uint32(objfmt.Regular), ID: blob})
	c1 := s.Commit(tree, 100)

	rw := revwalk.New(s)
	require.NoError(t, rw.MarkStart(c1))

	ow := NewWalker(rw)
	var seenCommits []identity.Identifier
	ow.OnCommit = func(c *object.Commit) { seenCommits = append(seenCommits, c.ID) }

	ids := drain(t, ow)
	require.Equal(t, []identity.Identifier{c1}, seenCommits)
	require.Equal(t, []identity.Identifier{tree, blob}, ids)
}
