package simplify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimplifyPassthrough(t *testing.T) {
	testcases := []string{
		"abc",
		"a?b+c*",
		"a(b|c)d",
		"[abc]",
		"[^abc]",
		".",
		`\(`,
		`\.`,
	}
	for _, pattern := range testcases {
		got, err := Simplify(pattern)
		require.NoErrorf(t, err, "pattern %q", pattern)
		require.Equal(t, pattern, got)
	}
}

func TestSimplifyCountedRepetition(t *testing.T) {
	testcases := []struct {
		pattern  string
		expected string
	}{
		{"a{2}", "aa"},
		{"a{0}", ""},
		{"a{2,}", "aa+"},
		{"a{0,}", "a*"},
		{"a{1,}", "a+"},
		{"a{2,4}", "aaa?a?"},
		{"(ab){2}", "(ab)(ab)"},
	}
	for _, tc := range testcases {
		got, err := Simplify(tc.pattern)
		require.NoErrorf(t, err, "pattern %q", tc.pattern)
		require.Equalf(t, tc.expected, got, "pattern %q", tc.pattern)
	}
}

func TestSimplifyErrors(t *testing.T) {
	testcases := []struct {
		pattern string
		target  error
	}{
		{`\x`, ErrInvalidEscape},
		{`[]`, ErrEmptySet},
		{`(a`, ErrUnmatchedParen},
		{`[a`, ErrUnmatchedBracket},
		{`a{2`, ErrMalformedRepetition},
		{`a{2,1}`, ErrRepetitionRange},
		{`*a`, ErrDanglingModifier},
		{`|a`, ErrEmptyAlternation},
		{`a)`, ErrTrailingInput},
	}
	for _, tc := range testcases {
		_, err := Simplify(tc.pattern)
		require.ErrorIsf(t, err, tc.target, "pattern %q", tc.pattern)
	}
}
