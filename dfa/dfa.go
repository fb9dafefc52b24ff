// Package dfa converts an NFA (package nfa) into a deterministic finite
// automaton via subset construction, and executes the result.
//
// Grounded on other_examples/640bb453_coregx-coregex__nfa-builder.go.go's
// arena/StateID style and on _examples/liran-funaro-nex/nex/dfa.go's
// worklist subset-construction shape (dfaBuilder.get / nilClose / the
// "node of no return" sink built by constructEndNode).
package dfa

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/retik-go/retik/internal/charset"
	"github.com/retik-go/retik/nfa"
)

// ErrDuplicateTransition is an internal invariant violation: a DFA state
// was asked to carry two different transitions for the same label. This
// can only be caused by a bug in subset construction, never by user
// input — spec classifies it as a fatal invariant, not a parse error.
var ErrDuplicateTransition = errors.New("dfa: duplicate transition label during construction")

// StateID addresses a State within a DFA's arena.
type StateID int

// State is a DFA node: a total map from every symbol of Σ to a successor
// state (transitions missing an explicit target resolve to Sink), plus an
// Accepting flag.
type State struct {
	Accepting   bool
	Sink        bool
	Transitions [charset.Size]StateID
}

// DFA is a finished, immutable automaton.
type DFA struct {
	States []State
	Start  StateID
	Sink   StateID
}

// Build runs subset construction over n and returns the equivalent DFA.
func Build(n *nfa.NFA) (*DFA, error) {
	b := &builder{nfa: n, index: make(map[string]StateID)}

	b.sink = b.newState(nil, false)
	for i := range b.states[b.sink].Transitions {
		b.states[b.sink].Transitions[i] = b.sink
	}
	b.states[b.sink].Sink = true
	b.index[""] = b.sink

	startSet := n.Closure([]nfa.StateID{n.Start})
	startID, _ := b.get(startSet)

	// Every slot is zero-valued (StateID 0 == the sink, always the first
	// state created) until explicitly assigned below, so unmentioned
	// labels already default to the sink without a separate fixup pass.
	for len(b.worklist) > 0 {
		id := b.worklist[len(b.worklist)-1]
		b.worklist = b.worklist[:len(b.worklist)-1]
		set := b.sets[id]

		assigned := make(map[byte]StateID)
		for _, label := range n.Labels(set) {
			moved := n.Closure(n.Move(set, label))
			var target StateID
			if len(moved) == 0 {
				target = b.sink
			} else {
				target, _ = b.get(moved)
			}

			if prev, ok := assigned[label]; ok && prev != target {
				return nil, ErrDuplicateTransition
			}
			assigned[label] = target
			b.states[id].Transitions[charset.Index(label)] = target
		}
	}

	return &DFA{States: b.states, Start: startID, Sink: b.sink}, nil
}

type builder struct {
	nfa      *nfa.NFA
	states   []State
	sets     map[StateID][]nfa.StateID
	index    map[string]StateID
	worklist []StateID
	sink     StateID
}

func (b *builder) newState(set []nfa.StateID, accepting bool) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{Accepting: accepting})
	if b.sets == nil {
		b.sets = make(map[StateID][]nfa.StateID)
	}
	b.sets[id] = set
	return id
}

// get returns the canonical DFA state for the given closed NFA state set,
// creating it (and queuing it for processing) if it hasn't been seen
// before. The canonical identity of a set is its sorted StateID sequence,
// per spec's "use a sorted vector of state indices" design note.
func (b *builder) get(set []nfa.StateID) (StateID, bool) {
	key := canonicalKey(set)
	if id, ok := b.index[key]; ok {
		return id, true
	}

	id := b.newState(set, b.nfa.AnyAccepting(set))
	b.index[key] = id
	b.worklist = append(b.worklist, id)
	return id, false
}

func canonicalKey(set []nfa.StateID) string {
	sorted := append([]nfa.StateID(nil), set...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sb strings.Builder
	for i, id := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	return sb.String()
}

// Accepts returns the length of the longest prefix of s that leaves the
// automaton in an accepting state, or -1 if none (including the empty
// prefix) is accepting. Bytes outside Σ transition straight to the sink.
func (d *DFA) Accepts(s string) int {
	current := d.Start
	endIndex := -1

	if d.States[current].Accepting {
		endIndex = 0
	}

	for i := 0; i < len(s); i++ {
		b := s[i]
		if !charset.In(b) {
			current = d.Sink
		} else {
			current = d.States[current].Transitions[charset.Index(b)]
		}
		if d.States[current].Accepting {
			endIndex = i + 1
		}
	}

	return endIndex
}
