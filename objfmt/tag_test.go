package objfmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTagValid(t *testing.T) {
	raw := []byte("object " + treeHex + "\n" +
		"type commit\n" +
		"tag v1.0.0\n" +
		"tagger Jane Doe <jane@example.com> 1700000000 +0000\n" +
		"\n" +
		"release notes\n")

	dt, err := DecodeTag(raw)
	require.NoError(t, err)
	require.Equal(t, treeHex, dt.Object.String())
	require.Equal(t, "commit", dt.ObjectType)
	require.Equal(t, "v1.0.0", dt.Name)
	require.NotNil(t, dt.Tagger)
	require.Equal(t, "Jane Doe", dt.Tagger.Name)
	require.Equal(t, "release notes\n", dt.Message)
}

func TestDecodeTagWithoutTagger(t *testing.T) {
	raw := []byte("object " + treeHex + "\ntype commit\ntag v1.0.0\n\nnotes\n")
	dt, err := DecodeTag(raw)
	require.NoError(t, err)
	require.Nil(t, dt.Tagger)
	require.Equal(t, "notes\n", dt.Message)
}

func TestDecodeTagRejectsDeviations(t *testing.T) {
	cases := map[string]string{
		"bad object line": "ob " + treeHex + "\ntype commit\ntag v1.0.0\n",
		"missing type":    "object " + treeHex + "\ntag v1.0.0\n",
		"empty tag name":  "object " + treeHex + "\ntype commit\ntag \n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTag([]byte(raw))
			require.Error(t, err)
		})
	}
}
