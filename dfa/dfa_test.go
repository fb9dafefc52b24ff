package dfa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retik-go/retik/internal/charset"
	"github.com/retik-go/retik/internal/simplify"
	"github.com/retik-go/retik/nfa"
)

func buildDFA(t *testing.T, pattern string) *DFA {
	t.Helper()
	n, err := nfa.Build(pattern)
	require.NoError(t, err)
	d, err := Build(n)
	require.NoError(t, err)
	return d
}

func TestDFAAcceptsMatchesLiteral(t *testing.T) {
	d := buildDFA(t, "abc")
	require.Equal(t, 3, d.Accepts("abc"))
	require.Equal(t, 3, d.Accepts("abcd"))
	require.Equal(t, -1, d.Accepts("abd"))
}

func TestDFATotalTransitionFunction(t *testing.T) {
	d := buildDFA(t, "a+")
	// every state must define a transition for every symbol of Σ
	for _, st := range d.States {
		require.Len(t, st.Transitions, charset.Size)
	}
}

func TestDFASinkIsAbsorbing(t *testing.T) {
	d := buildDFA(t, "abc")
	require.Equal(t, -1, d.Accepts("xyz"))
	require.Equal(t, -1, d.Accepts("zzzzzzzzzz"))
}

func TestDFAAgreesWithNFAAcrossPatterns(t *testing.T) {
	testcases := []struct {
		pattern string
		inputs  []string
	}{
		{"a?(b|bc|[de]*)*f+", []string{"abcdeeff", "f", "bcf", "", "xyz"}},
		{`[.*+?^)(\]\[}{\\abc]+`, []string{".*+?", "abc", "x"}},
		{"[Aa]?[^Ab]+g+", []string{"Axxg", "xxg", "Abg", "g"}},
		{"a{2}|[bd]{3,}|(c|ef+){4,6}", []string{"aa", "bddd", "cccc", "efefefef", "a"}},
		{"a?b+c*", []string{"abc", "bbbb", "abccc", "c"}},
	}

	for _, tc := range testcases {
		simplified, err := simplify.Simplify(tc.pattern)
		require.NoErrorf(t, err, "pattern %q", tc.pattern)

		n, err := nfa.Build(simplified)
		require.NoErrorf(t, err, "pattern %q", tc.pattern)
		d, err := Build(n)
		require.NoErrorf(t, err, "pattern %q", tc.pattern)

		for _, in := range tc.inputs {
			require.Equalf(t, n.Accepts(in), d.Accepts(in), "pattern %q input %q", tc.pattern, in)
		}
	}
}
