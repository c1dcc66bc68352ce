package fst

import (
	"github.com/bits-and-blooms/bitset"
)

// TopSort
// Renumbers the states so that every transition goes from a lower to a higher state id. Returns false and
// leaves the fst untouched when it has a cycle.
func TopSort(f *VectorFst) bool {
	order, acyclic := topOrder(f)
	if !acyclic {
		return false
	}
	StateSort(f, order)
	return true
}

// IsAcyclic Returns true if the fst has no cycle, self loops included.
func IsAcyclic(f *VectorFst) bool {
	_, acyclic := topOrder(f)
	return acyclic
}

type dfsFrame struct {
	state StateID
	next  int
}

// Depth first visit from the start state and then from every state not yet reached. The visit is iterative
// so that long chains do not exhaust the goroutine stack. order[s] is the new id of s.
func topOrder(f *VectorFst) ([]StateID, bool) {
	numStates := f.NumStates()
	path := bitset.New(uint(numStates))
	visited := bitset.New(uint(numStates))
	finish := make([]StateID, 0, numStates)

	roots := make([]StateID, 0, numStates+1)
	if f.Start() != NoStateID {
		roots = append(roots, f.Start())
	}
	for s := 0; s < numStates; s++ {
		roots = append(roots, s)
	}

	stack := make([]dfsFrame, 0)
	for _, root := range roots {
		if visited.Test(uint(root)) {
			continue
		}
		visited.Set(uint(root))
		path.Set(uint(root))
		stack = append(stack, dfsFrame{state: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			trs := f.states[top.state].trs
			if top.next == len(trs) {
				path.Clear(uint(top.state))
				finish = append(finish, top.state)
				stack = stack[:len(stack)-1]
				continue
			}

			dest := trs[top.next].NextState
			top.next++
			if path.Test(uint(dest)) {
				return nil, false
			}
			if !visited.Test(uint(dest)) {
				visited.Set(uint(dest))
				path.Set(uint(dest))
				stack = append(stack, dfsFrame{state: dest})
			}
		}
	}

	order := make([]StateID, numStates)
	for i, s := range finish {
		order[s] = numStates - 1 - i
	}
	return order, true
}

// StateSort Renumbers the states: state s becomes order[s]. order must be a permutation of the state ids.
func StateSort(f *VectorFst, order []StateID) {
	sorted := make([]vectorState, len(f.states))
	for s, st := range f.states {
		for i := range st.trs {
			st.trs[i].NextState = order[st.trs[i].NextState]
		}
		sorted[order[s]] = st
	}
	f.states = sorted
	if f.start != NoStateID {
		f.start = order[f.start]
	}
}
