// Package nfa implements Thompson construction: a recursive-descent parser
// that turns a desugared pattern into a nondeterministic finite automaton,
// plus the NFA simulation (epsilon closure, move, accepts) that executes it.
//
// States live in a flat arena (Builder.states) and are addressed by
// integer StateID rather than pointer, the way
// other_examples/640bb453_coregx-coregex__nfa-builder.go.go's Builder
// does — this gives subset construction (package dfa) a canonical,
// hashable state-set identity for free, and sidesteps the ownership-cycle
// problem that loops (*, +) create for a pointer graph.
package nfa

import "github.com/retik-go/retik/internal/charset"

// StateID addresses a State within an NFA's arena.
type StateID int

// InvalidState marks the absence of a target (e.g. the unused Right side
// of a single-target epsilon state).
const InvalidState StateID = -1

// CharSet is a membership set over Σ, used by set and wildcard matchers.
type CharSet struct {
	bits [256]bool
}

// NewCharSet builds a CharSet containing exactly the given bytes.
func NewCharSet(bytes []byte) CharSet {
	var cs CharSet
	for _, b := range bytes {
		cs.bits[b] = true
	}
	return cs
}

// Contains reports whether b is a member of the set.
func (cs CharSet) Contains(b byte) bool {
	return cs.bits[b]
}

// Matcher is a single-byte transition predicate. A Matcher with an empty
// Set and Negated set to true matches every byte — this is how the
// wildcard `.` is represented, with no separate state kind required.
type Matcher struct {
	Set     CharSet
	Negated bool
}

// Match reports whether b satisfies the matcher. Bytes outside Σ never
// match, even a negated (wildcard-style) matcher: the alphabet is fixed
// to printable ASCII, and non-printable input simply fails every
// transition rather than being special-cased in the simulator.
func (m Matcher) Match(b byte) bool {
	if !charset.In(b) {
		return false
	}
	return m.Set.Contains(b) != m.Negated
}

// State is one NFA node. Exactly one of two shapes applies:
//
//   - Split: an epsilon state with up to two outgoing epsilon edges
//     (Left always valid, Right optionally InvalidState for a single
//     unconditional epsilon transition).
//   - a byte-consuming state: Matcher is non-nil, Next is the single
//     successor reached by consuming one matching byte.
//
// Accept marks a state with no outgoing transitions that represents
// successful completion of the pattern (or of a sub-fragment, until the
// builder patches it into the larger graph — see Builder.patch).
type State struct {
	Accept  bool
	Split   bool
	Left    StateID
	Right   StateID
	Matcher *Matcher
	Next    StateID
}

// Fragment is the builder-time (entry, accepting-state) pair from which
// larger fragments are composed. Accept always identifies exactly one
// state with Accept == true and no outgoing transitions, per the
// Thompson-construction invariant that every production creates a fresh
// start and a fresh accepting end.
type Fragment struct {
	Start  StateID
	Accept StateID
}

// NFA is a finished, immutable automaton: an arena of states and the
// designated start state.
type NFA struct {
	States []State
	Start  StateID
}

// Builder constructs an NFA incrementally via Thompson fragments.
type Builder struct {
	states []State
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16)}
}

func (b *Builder) newState(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// addMatch creates a fresh accepting terminal state with no outgoing
// transitions — the "end" node of a freshly built fragment.
func (b *Builder) addMatch() StateID {
	return b.newState(State{Accept: true, Left: InvalidState, Right: InvalidState, Next: InvalidState})
}

// addByteTransition creates a state that consumes one byte matching m and
// transitions to next.
func (b *Builder) addByteTransition(m Matcher, next StateID) StateID {
	return b.newState(State{Matcher: &m, Next: next, Left: InvalidState, Right: InvalidState})
}

// addSplit creates an epsilon state with two outgoing epsilon edges.
func (b *Builder) addSplit(left, right StateID) StateID {
	return b.newState(State{Split: true, Left: left, Right: right, Next: InvalidState})
}

// addEpsilon creates an epsilon state with a single outgoing edge.
func (b *Builder) addEpsilon(next StateID) StateID {
	return b.addSplit(next, InvalidState)
}

// patch is the sole composition primitive: it turns the accepting state
// at id into a non-accepting epsilon state with an edge to target. This
// implements the single-target form used by concatenation, group
// wrapping, and the exit edge of `?`.
func (b *Builder) patch(id, target StateID) {
	b.states[id] = State{Split: true, Left: target, Right: InvalidState, Next: InvalidState}
}

// patchLoop is patch's two-target form, used by `*` and `+` where the old
// accepting state must both loop back into the fragment and offer an exit.
func (b *Builder) patchLoop(id, loopTarget, exitTarget StateID) {
	b.states[id] = State{Split: true, Left: loopTarget, Right: exitTarget, Next: InvalidState}
}

// empty returns a fragment that accepts the empty string, consuming no
// input. Used for vacuous alternatives like the left side of "(|a)".
func (b *Builder) empty() Fragment {
	end := b.addMatch()
	start := b.addEpsilon(end)
	return Fragment{Start: start, Accept: end}
}

// literal builds "start --c--> end".
func (b *Builder) literal(c byte) Fragment {
	end := b.addMatch()
	start := b.addByteTransition(Matcher{Set: NewCharSet([]byte{c})}, end)
	return Fragment{Start: start, Accept: end}
}

// wildcard builds "start --t--> end" for every t in Σ, via a negated
// empty set rather than one state per symbol.
func (b *Builder) wildcard() Fragment {
	end := b.addMatch()
	start := b.addByteTransition(Matcher{Negated: true}, end)
	return Fragment{Start: start, Accept: end}
}

// set builds "start --t--> end" for each token in the set (or its
// complement, when negated).
func (b *Builder) set(chars []byte, negated bool) Fragment {
	end := b.addMatch()
	start := b.addByteTransition(Matcher{Set: NewCharSet(chars), Negated: negated}, end)
	return Fragment{Start: start, Accept: end}
}

// group builds "(R)": start --ε--> entry(R); patch(R, end).
func (b *Builder) group(r Fragment) Fragment {
	end := b.addMatch()
	start := b.addEpsilon(r.Start)
	b.patch(r.Accept, end)
	return Fragment{Start: start, Accept: end}
}

// concatenate builds "R S" by patching R's accept directly into S's entry.
func (b *Builder) concatenate(r, s Fragment) Fragment {
	b.patch(r.Accept, s.Start)
	return Fragment{Start: r.Start, Accept: s.Accept}
}

// alternate builds "R|S".
func (b *Builder) alternate(r, s Fragment) Fragment {
	end := b.addMatch()
	start := b.addSplit(r.Start, s.Start)
	b.patch(r.Accept, end)
	b.patch(s.Accept, end)
	return Fragment{Start: start, Accept: end}
}

// star builds "R*": zero or more repetitions.
func (b *Builder) star(r Fragment) Fragment {
	end := b.addMatch()
	start := b.addSplit(r.Start, end)
	b.patchLoop(r.Accept, r.Start, end)
	return Fragment{Start: start, Accept: end}
}

// plus builds "R+": one or more repetitions.
func (b *Builder) plus(r Fragment) Fragment {
	end := b.addMatch()
	start := b.addEpsilon(r.Start)
	b.patchLoop(r.Accept, r.Start, end)
	return Fragment{Start: start, Accept: end}
}

// optional builds "R?": zero or one occurrence.
func (b *Builder) optional(r Fragment) Fragment {
	end := b.addMatch()
	start := b.addSplit(r.Start, end)
	b.patch(r.Accept, end)
	return Fragment{Start: start, Accept: end}
}
