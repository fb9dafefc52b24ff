package charset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInBounds(t *testing.T) {
	require.True(t, In(' '))
	require.True(t, In('~'))
	require.True(t, In('A'))
	require.False(t, In('\t'))
	require.False(t, In(0x7F))
	require.False(t, In(0x00))
}

func TestIndexRoundTrip(t *testing.T) {
	all := All()
	require.Len(t, all, Size)
	for i, b := range all {
		require.Equal(t, i, Index(b))
	}
}

func TestIsPatternMeta(t *testing.T) {
	for _, b := range []byte("^.*+?()[]{}|\\") {
		require.Truef(t, IsPatternMeta(b), "expected %q to be a pattern metacharacter", b)
	}
	require.False(t, IsPatternMeta('a'))
	require.False(t, IsPatternMeta('-'))
}

func TestIsSetMeta(t *testing.T) {
	for _, b := range []byte("[]\\") {
		require.Truef(t, IsSetMeta(b), "expected %q to be a set metacharacter", b)
	}
	require.False(t, IsSetMeta('^'))
	require.False(t, IsSetMeta('a'))
}

func TestIsDigit(t *testing.T) {
	for b := byte('0'); b <= '9'; b++ {
		require.True(t, IsDigit(b))
	}
	require.False(t, IsDigit('a'))
	require.False(t, IsDigit(' '))
}
