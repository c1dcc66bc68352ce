package fst

import "fmt"

// MakeEmpty
// Returns a new fst with a single non final start state; it accepts nothing.
func MakeEmpty() *VectorFst {
	f := NewVectorFst()
	s := f.AddState()
	_ = f.SetStart(s)
	return f
}

// MakeEmptyString
// Returns a new fst that accepts only the empty string, with weight One.
func MakeEmptyString() *VectorFst {
	f := MakeEmpty()
	_ = f.SetFinal(f.Start(), One)
	return f
}

// MakeTransducer
// Returns a linear fst mapping ilabels to olabels. The shorter side is padded with epsilons. The weight is
// put on the final state.
func MakeTransducer(ilabels, olabels []Label, weight TropicalWeight) (*VectorFst, error) {
	n := max(len(ilabels), len(olabels))
	f := NewVectorFstV1(n + 1)
	f.AddStates(n + 1)
	_ = f.SetStart(0)

	for i := 0; i < n; i++ {
		il, ol := EpsLabel, EpsLabel
		if i < len(ilabels) {
			il = ilabels[i]
		}
		if i < len(olabels) {
			ol = olabels[i]
		}
		if il < 0 || ol < 0 {
			return nil, fmt.Errorf("negative label at position %d", i)
		}
		if err := f.AddTr(i, NewTr(il, ol, One, i+1)); err != nil {
			return nil, err
		}
	}

	if err := f.SetFinal(n, weight); err != nil {
		return nil, err
	}
	return f, nil
}

// MakeAcceptor
// Returns a linear fst accepting exactly labels.
func MakeAcceptor(labels []Label, weight TropicalWeight) (*VectorFst, error) {
	return MakeTransducer(labels, labels, weight)
}
