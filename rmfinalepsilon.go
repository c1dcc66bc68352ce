package fst

import (
	"github.com/bits-and-blooms/bitset"
)

// RmFinalEpsilon
// Removes the epsilon transitions leading to final states that have no coaccessible future. The weight of
// each removed transition, times the final weight of its destination, is added to the final weight of its
// source. Non epsilon transitions keep their relative order. The fst is connected afterwards, so final
// states left without incoming transitions disappear.
func RmFinalEpsilon(f *VectorFst) {
	coaccess := Coaccessible(f)
	removable := removableFinals(f, coaccess)

	trs := make([]Tr, 0)
	for s := range f.states {
		st := &f.states[s]
		weight := st.final
		trs = trs[:0]

		for _, tr := range st.trs {
			if removable.Test(uint(tr.NextState)) && tr.IsEpsilon() {
				weight = weight.Plus(f.states[tr.NextState].final.Times(tr.Weight))
				continue
			}
			trs = append(trs, tr)
		}

		// Only rewrite states which actually lost a transition.
		if len(trs) < len(st.trs) {
			kept := make([]Tr, len(trs))
			copy(kept, trs)
			st.trs = kept
			st.final = weight
		}
	}

	Connect(f)
}

// Final states none of whose transitions reach a coaccessible state. A self loop on a final state is
// such a future, final states being coaccessible.
func removableFinals(f *VectorFst, coaccess *bitset.BitSet) *bitset.BitSet {
	finals := bitset.New(uint(f.NumStates()))
	for s := range f.states {
		if f.states[s].final.IsZero() {
			continue
		}

		futureCoaccess := false
		for _, tr := range f.states[s].trs {
			if coaccess.Test(uint(tr.NextState)) {
				futureCoaccess = true
				break
			}
		}
		if !futureCoaccess {
			finals.Set(uint(s))
		}
	}
	return finals
}
