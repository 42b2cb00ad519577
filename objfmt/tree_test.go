package objfmt

import (
	"testing"

	"github.com/dagwalk/revwalk/identity"
	"github.com/stretchr/testify/require"
)

func entryBytes(mode string, name string, id identity.Identifier) []byte {
	b := append([]byte(mode), ' ')
	b = append(b, name...)
	b = append(b, 0)
	b = append(b, id[:]...)
	return b
}

func TestValidateTreeAcceptsOrderedUniqueEntries(t *testing.T) {
	idA, _ := identity.FromHex("1111111111111111111111111111111111111111")
	idB, _ := identity.FromHex("2222222222222222222222222222222222222222")

	var raw []byte
	raw = append(raw, entryBytes("100644", "file.go", idA)...)
	raw = append(raw, entryBytes("40000", "sub", idB)...)

	entries, err := ValidateTree(raw)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "file.go", entries[0].Name)
	require.Equal(t, "sub", entries[1].Name)
}

func TestValidateTreeFileBeforeDirOfSameName(t *testing.T) {
	idA, _ := identity.FromHex("1111111111111111111111111111111111111111")
	idB, _ := identity.FromHex("2222222222222222222222222222222222222222")

	var raw []byte
	raw = append(raw, entryBytes("100644", "foo", idA)...)
	raw = append(raw, entryBytes("40000", "foo", idB)...)

	_, err := ValidateTree(raw)
	require.Error(t, err, "a file and a directory sharing a literal name is a duplicate even though the sort key separates them")
}

func TestValidateTreeRejectsOutOfOrder(t *testing.T) {
	idA, _ := identity.FromHex("1111111111111111111111111111111111111111")
	idB, _ := identity.FromHex("2222222222222222222222222222222222222222")

	var raw []byte
	raw = append(raw, entryBytes("100644", "zzz", idA)...)
	raw = append(raw, entryBytes("100644", "aaa", idB)...)

	_, err := ValidateTree(raw)
	require.Error(t, err)
}

func TestValidateTreeRejectsDuplicateNames(t *testing.T) {
	idA, _ := identity.FromHex("1111111111111111111111111111111111111111")
	idB, _ := identity.FromHex("2222222222222222222222222222222222222222")

	var raw []byte
	raw = append(raw, entryBytes("100644", "a", idA)...)
	raw = append(raw, entryBytes("100644", "a", idB)...)

	_, err := ValidateTree(raw)
	require.Error(t, err)
}

func TestValidateTreeRejectsReservedNames(t *testing.T) {
	idA, _ := identity.FromHex("1111111111111111111111111111111111111111")
	for _, name := range []string{".", "..", "has/slash"} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateTree(entryBytes("100644", name, idA))
			require.Error(t, err)
		})
	}
}

func TestValidateTreeRejectsUnrecognizedMode(t *testing.T) {
	idA, _ := identity.FromHex("1111111111111111111111111111111111111111")
	_, err := ValidateTree(entryBytes("100600", "file", idA))
	require.Error(t, err)
}

func TestValidateTreeRejectsLeadingZeroMode(t *testing.T) {
	idA, _ := identity.FromHex("1111111111111111111111111111111111111111")
	_, err := ValidateTree(entryBytes("040000", "dir", idA))
	require.Error(t, err, "leading zero is disallowed even though 040000 is numerically the Dir mode")
}
