package nfa

import "github.com/retik-go/retik/internal/charset"

// Closure computes the epsilon-closure of a set of states: every state
// reachable from ids by following only epsilon (Split) edges. It uses an
// iterative worklist, not recursion — long epsilon chains produced by
// desugared {n,m} repetition can otherwise overflow the call stack.
//
// Exported so that package dfa's subset construction can reuse it
// directly instead of re-deriving epsilon-closure over the NFA arena.
func (n *NFA) Closure(ids []StateID) []StateID {
	visited := make(map[StateID]bool, len(ids)*2)
	out := make([]StateID, 0, len(ids)*2)
	stack := append([]StateID(nil), ids...)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)

		st := n.States[id]
		if !st.Split {
			continue
		}
		if st.Left != InvalidState && !visited[st.Left] {
			stack = append(stack, st.Left)
		}
		if st.Right != InvalidState && !visited[st.Right] {
			stack = append(stack, st.Right)
		}
	}

	return out
}

// Move computes the successor states reached by consuming token b from
// any state in ids, without the trailing epsilon-closure (the caller is
// expected to Closure the result). Exported for the same reason as
// Closure.
func (n *NFA) Move(ids []StateID, b byte) []StateID {
	var out []StateID
	for _, id := range ids {
		st := n.States[id]
		if st.Matcher != nil && st.Matcher.Match(b) {
			out = append(out, st.Next)
		}
	}
	return out
}

// Labels returns every distinct byte for which some state in ids has a
// consuming transition — the alphabet subset construction needs to try
// at a given DFA node, per spec's "let T be the set of non-ε labels
// appearing on any edge from any state in S."
func (n *NFA) Labels(ids []StateID) []byte {
	var seen [256]bool
	var out []byte
	for _, id := range ids {
		st := n.States[id]
		if st.Matcher == nil {
			continue
		}
		for _, b := range charset.All() {
			if st.Matcher.Match(b) && !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	return out
}

// AnyAccepting reports whether any state in ids is accepting.
func (n *NFA) AnyAccepting(ids []StateID) bool {
	for _, id := range ids {
		if n.States[id].Accept {
			return true
		}
	}
	return false
}

// Accepts returns the length of the longest prefix of s that leaves the
// automaton in an accepting state, or -1 if no prefix (including the
// empty prefix) is accepting.
func (n *NFA) Accepts(s string) int {
	current := n.Closure([]StateID{n.Start})
	endIndex := -1

	if n.AnyAccepting(current) {
		endIndex = 0
	}

	for i := 0; i < len(s); i++ {
		next := n.Move(current, s[i])
		if len(next) == 0 {
			break
		}
		current = n.Closure(next)
		if n.AnyAccepting(current) {
			endIndex = i + 1
		}
	}

	return endIndex
}
