package fst

import (
	"github.com/bits-and-blooms/bitset"
)

// Accessible Returns the set of states reachable from the start state. Empty if there is no start state.
func Accessible(f *VectorFst) *bitset.BitSet {
	numStates := f.NumStates()
	live := bitset.New(uint(numStates))
	start := f.Start()
	if start == NoStateID {
		return live
	}

	workList := make([]StateID, 0)
	live.Set(uint(start))
	workList = append(workList, start)

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]

		for _, tr := range f.states[s].trs {
			if !live.Test(uint(tr.NextState)) {
				live.Set(uint(tr.NextState))
				workList = append(workList, tr.NextState)
			}
		}
	}
	return live
}

// Coaccessible Returns the set of states from which a final state can be reached.
func Coaccessible(f *VectorFst) *bitset.BitSet {
	numStates := f.NumStates()
	live := bitset.New(uint(numStates))

	// Reversed adjacency: predecessors[d] lists every source of a transition into d.
	predecessors := make([][]StateID, numStates)
	for s := range f.states {
		for _, tr := range f.states[s].trs {
			predecessors[tr.NextState] = append(predecessors[tr.NextState], s)
		}
	}

	workList := make([]StateID, 0)
	for s := range f.states {
		if !f.states[s].final.IsZero() {
			live.Set(uint(s))
			workList = append(workList, s)
		}
	}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]

		for _, p := range predecessors[s] {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				workList = append(workList, p)
			}
		}
	}
	return live
}

// Connect Removes every state that is not both accessible and coaccessible. Surviving states are
// renumbered in their original order. An fst without start state ends up empty.
func Connect(f *VectorFst) {
	if f.Start() == NoStateID {
		f.DeleteAllStates()
		return
	}

	live := Accessible(f)
	live.InPlaceIntersection(Coaccessible(f))

	dead := live.Complement()
	// The complement covers exactly NumStates bits.
	f.DeleteStates(dead)
}
