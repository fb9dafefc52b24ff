// Package retik is a linear-time regular-expression engine built around
// Thompson construction: a pattern is desugared, parsed into an NFA, and
// optionally converted into a DFA for faster repeated execution. There is
// no backtracking, so patterns that are catastrophic for a backtracking
// engine (a?ⁿaⁿ against aⁿ, and similar) still run in time linear in the
// length of the input.
//
// Supported syntax: literals, `.`, `[abc]`/`[^abc]`, `*`, `+`, `?`,
// `{n}`/`{n,}`/`{n,m}`, `(...)` grouping, and `|` alternation, over an
// alphabet of printable ASCII. There are no anchors, no backreferences,
// no lookaround, and no case-insensitivity — see the package README in
// SPEC_FULL.md for the full rationale.
package retik

import (
	"fmt"
	"sync"

	"github.com/retik-go/retik/dfa"
	"github.com/retik-go/retik/internal/simplify"
	"github.com/retik-go/retik/nfa"
)

// ParseError reports a failure to compile a pattern. It wraps one of the
// sentinel errors declared in internal/simplify so that callers can match
// with errors.Is(err, simplify.ErrEmptySet) and similar.
type ParseError struct {
	Pattern string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("retik: cannot compile pattern %q: %v", e.Pattern, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Group is a reserved, currently-unpopulated capture range. The data
// model carries it (per this engine's "groups reserved for future
// capture support" design) but no pattern ever produces a non-empty
// Groups slice: the parser has no capture-tagging pass.
type Group struct {
	Start, End int
}

// Match describes one location where a pattern matched a subject string.
type Match struct {
	Slice  string
	Start  int
	End    int
	Groups []Group
}

// Regexp is a compiled pattern. It is immutable after Compile returns and
// safe to use concurrently from multiple goroutines: the only internal
// mutable state is the lazily-built DFA, guarded by a sync.Once.
type Regexp struct {
	source string
	nfa    *nfa.NFA

	dfaOnce sync.Once
	dfa     *dfa.DFA
	dfaErr  error
}

// Compile parses pattern, desugars counted repetition, and builds the
// NFA. It does not build a DFA — that happens lazily the first time any
// matching method (Match, Fullmatch, Search, FindIter, FindAll, Sub,
// SubFunc) is called, and that DFA then serves every later call.
func Compile(pattern string) (*Regexp, error) {
	simplified, err := simplify.Simplify(pattern)
	if err != nil {
		return nil, &ParseError{Pattern: pattern, Err: err}
	}

	n, err := nfa.Build(simplified)
	if err != nil {
		return nil, &ParseError{Pattern: pattern, Err: err}
	}

	return &Regexp{source: pattern, nfa: n}, nil
}

// MustCompile is like Compile but panics if pattern fails to compile. It
// is intended for use in package-level var initializers, where a bad
// literal pattern is a programming error, not a runtime condition.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// String returns the original, un-simplified source pattern.
func (re *Regexp) String() string {
	return re.source
}

// automaton returns the DFA once it has been built the first time; it's
// invoked from hot paths (Search, FindAll) so that repeated matching
// against a single compiled Regexp amortizes subset construction's cost,
// per spec's "optionally converted into a DFA for faster repeated
// execution."
func (re *Regexp) automaton() (*dfa.DFA, error) {
	re.dfaOnce.Do(func() {
		re.dfa, re.dfaErr = dfa.Build(re.nfa)
	})
	return re.dfa, re.dfaErr
}

// accepts returns the length of the longest accepting prefix of s, or -1.
// It always has a correct answer available from the NFA; it prefers the
// DFA once built since a DFA step costs O(1) rather than O(|Q|).
func (re *Regexp) accepts(s string) int {
	if d, err := re.automaton(); err == nil {
		return d.Accepts(s)
	}
	return re.nfa.Accepts(s)
}

// Match reports the longest prefix of s accepted by the pattern, as in
// spec's match(s) = s[0:accepts(s)].
func (re *Regexp) Match(s string) (Match, bool) {
	k := re.accepts(s)
	if k < 0 {
		return Match{}, false
	}
	return Match{Slice: s[:k], Start: 0, End: k}, true
}

// Fullmatch reports a Match iff the pattern accepts the entirety of s.
func (re *Regexp) Fullmatch(s string) (Match, bool) {
	k := re.accepts(s)
	if k != len(s) {
		return Match{}, false
	}
	return Match{Slice: s, Start: 0, End: k}, true
}

// Search tries accepts(s[i:]) for i = 0, 1, ... until one succeeds,
// returning the first (leftmost) position that admits a match.
func (re *Regexp) Search(s string) (Match, bool) {
	for i := 0; i <= len(s); i++ {
		k := re.accepts(s[i:])
		if k >= 0 {
			return Match{Slice: s[i : i+k], Start: i, End: i + k}, true
		}
	}
	return Match{}, false
}

// FindIter returns a pull-style iterator over non-overlapping,
// left-to-right matches of the pattern in s. Each call advances past the
// previously returned match's end, by at least one position so that a
// zero-length match cannot be yielded twice at the same position (see
// SPEC_FULL.md §9). The iterator is finite: it returns ok == false once
// the remaining suffix admits no further match.
func (re *Regexp) FindIter(s string) func() (Match, bool) {
	pos := 0
	done := false

	return func() (Match, bool) {
		if done || pos > len(s) {
			return Match{}, false
		}

		for i := pos; i <= len(s); i++ {
			k := re.accepts(s[i:])
			if k < 0 {
				continue
			}

			m := Match{Slice: s[i : i+k], Start: i, End: i + k}
			if k == 0 {
				pos = i + 1
			} else {
				pos = i + k
			}
			return m, true
		}

		done = true
		return Match{}, false
	}
}

// FindAll is the eager materialization of FindIter.
func (re *Regexp) FindAll(s string) []Match {
	var out []Match
	next := re.FindIter(s)
	for {
		m, ok := next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// Sub copies the non-matching text between successive FindIter matches
// and substitutes each match with repl.
func (re *Regexp) Sub(repl string, s string) string {
	return re.SubFunc(func(Match) string { return repl }, s)
}

// SubFunc is Sub, except each match is replaced with the result of
// applying repl to its Match.
func (re *Regexp) SubFunc(repl func(Match) string, s string) string {
	var out []byte
	cursor := 0

	next := re.FindIter(s)
	for {
		m, ok := next()
		if !ok {
			break
		}
		out = append(out, s[cursor:m.Start]...)
		out = append(out, repl(m)...)
		cursor = m.End
	}
	out = append(out, s[cursor:]...)

	return string(out)
}
