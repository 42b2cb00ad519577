package objfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	treeHex   = "8ab686eafeb1f44702738c8b0f24f2567c36da6d"
	parentHex = "1111111111111111111111111111111111111111"
)

func validCommitBytes() []byte {
	var b strings.Builder
	b.WriteString("tree " + treeHex + "\n")
	b.WriteString("parent " + parentHex + "\n")
	b.WriteString("author Jane Doe <jane@example.com> 1700000000 +0000\n")
	b.WriteString("committer Jane Doe <jane@example.com> 1700000100 -0500\n")
	b.WriteString("\n")
	b.WriteString("a commit message\n")
	return []byte(b.String())
}

func TestDecodeCommitValid(t *testing.T) {
	dc, err := DecodeCommit(validCommitBytes())
	require.NoError(t, err)
	require.Equal(t, treeHex, dc.Tree.String())
	require.Len(t, dc.Parents, 1)
	require.Equal(t, parentHex, dc.Parents[0].String())
	require.Equal(t, "Jane Doe", dc.Author.Name)
	require.Equal(t, "jane@example.com", dc.Author.Email)
	require.EqualValues(t, 1700000000, dc.Author.Seconds)
	require.Equal(t, "+0000", dc.Author.TZ)
	require.EqualValues(t, 1700000100, dc.Committer.Seconds)
	require.Equal(t, "-0500", dc.Committer.TZ)
	require.Equal(t, "a commit message\n", dc.Message)
}

func TestDecodeCommitNoParents(t *testing.T) {
	raw := []byte("tree " + treeHex + "\n" +
		"author A <a@example.com> 1 +0000\n" +
		"committer A <a@example.com> 2 +0000\n")
	dc, err := DecodeCommit(raw)
	require.NoError(t, err)
	require.Empty(t, dc.Parents)
}

func TestDecodeCommitRejectsDeviations(t *testing.T) {
	cases := map[string]string{
		"missing tree keyword": "trea " + treeHex + "\nauthor A <a@b.c> 1 +0000\ncommitter A <a@b.c> 1 +0000\n",
		"short tree hash":      "tree deadbeef\nauthor A <a@b.c> 1 +0000\ncommitter A <a@b.c> 1 +0000\n",
		"out of order parent":  "tree " + treeHex + "\nauthor A <a@b.c> 1 +0000\nparent " + parentHex + "\ncommitter A <a@b.c> 1 +0000\n",
		"missing committer":    "tree " + treeHex + "\nauthor A <a@b.c> 1 +0000\n",
		"malformed author":     "tree " + treeHex + "\nauthor not-an-identity\ncommitter A <a@b.c> 1 +0000\n",
		"non numeric tz":       "tree " + treeHex + "\nauthor A <a@b.c> 1 notanumber\ncommitter A <a@b.c> 1 +0000\n",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCommit([]byte(raw))
			require.Error(t, err)
		})
	}
}

func TestScanPersonIdentifier(t *testing.T) {
	id, ok := scanPersonIdentifier([]byte("Jane Doe <jane@example.com> 1700000000 +0200"))
	require.True(t, ok)
	require.Equal(t, "Jane Doe", id.Name)
	require.Equal(t, "jane@example.com", id.Email)
	require.EqualValues(t, 1700000000, id.Seconds)
	require.Equal(t, "+0200", id.TZ)

	_, ok = scanPersonIdentifier([]byte("no angle brackets here"))
	require.False(t, ok)
}
