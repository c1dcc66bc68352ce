package fst

import "fmt"

// Label Input or output symbol of a transition.
type Label = int

// StateID Dense identifier of a state, in [0, NumStates).
type StateID = int

const (
	// EpsLabel The label consuming no symbol.
	EpsLabel Label = 0
	// NoStateID Returned by Start when the fst has no start state.
	NoStateID StateID = -1
)

// Tr A transition leaving a state: it reads ILabel, writes OLabel, costs Weight and moves to NextState.
type Tr struct {
	ILabel    Label
	OLabel    Label
	Weight    TropicalWeight
	NextState StateID
}

func NewTr(ilabel, olabel Label, weight TropicalWeight, nextState StateID) Tr {
	return Tr{ILabel: ilabel, OLabel: olabel, Weight: weight, NextState: nextState}
}

// IsEpsilon Returns true if both labels are epsilon.
func (t Tr) IsEpsilon() bool {
	return t.ILabel == EpsLabel && t.OLabel == EpsLabel
}

func (t Tr) ApproxEqual(other Tr) bool {
	return t.ILabel == other.ILabel &&
		t.OLabel == other.OLabel &&
		t.NextState == other.NextState &&
		t.Weight.ApproxEqual(other.Weight)
}

func (t Tr) String() string {
	return fmt.Sprintf("%d:%d/%s -> %d", t.ILabel, t.OLabel, t.Weight, t.NextState)
}
