package identity

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type IdentifierSuite struct {
	suite.Suite
}

func TestIdentifierSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(IdentifierSuite))
}

func (s *IdentifierSuite) TestFromHexRoundTrip() {
	id, ok := FromHex("8ab686eafeb1f44702738c8b0f24f2567c36da6d")
	s.True(ok)
	s.Equal("8ab686eafeb1f44702738c8b0f24f2567c36da6d", id.String())
}

func (s *IdentifierSuite) TestFromHexRejectsWrongLength() {
	_, ok := FromHex("deadbeef")
	s.False(ok)
}

func (s *IdentifierSuite) TestFromHexRejectsNonHex() {
	_, ok := FromHex("zab686eafeb1f44702738c8b0f24f2567c36da6d")
	s.False(ok)
}

func (s *IdentifierSuite) TestIsZero() {
	var id Identifier
	s.True(id.IsZero())

	id, _ = FromHex("8ab686eafeb1f44702738c8b0f24f2567c36da6d")
	s.False(id.IsZero())
}

func (s *IdentifierSuite) TestSort() {
	a, _ := FromHex("2222222222222222222222222222222222222222")
	b, _ := FromHex("1111111111111111111111111111111111111111")
	ids := []Identifier{a, b}

	Sort(ids)

	s.Equal(b, ids[0])
	s.Equal(a, ids[1])
}

func (s *IdentifierSuite) TestComputeHasherMatchesGitBlobHash() {
	// "blob 0\x00" hashes to git's well-known empty-blob id.
	id := ComputeHasher("blob", nil)
	s.Equal("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", id.String())
}
