package fst

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

var (
	ErrStateNotFound = errors.New("state not found")
)

type vectorState struct {
	final TropicalWeight
	trs   []Tr
}

// VectorFst A mutable weighted transducer storing, for each state, its final weight and the list of
// transitions leaving it. States are integers and must be created using AddState. Mark a state as final
// using SetFinal. Add transitions using AddTr. Transitions keep their insertion order until TrSort is
// applied. There is at most one start state; NoStateID means the fst has none.
type VectorFst struct {
	states []vectorState
	start  StateID
}

func NewVectorFst() *VectorFst {
	return NewVectorFstV1(2)
}

func NewVectorFstV1(numStates int) *VectorFst {
	return &VectorFst{
		states: make([]vectorState, 0, numStates),
		start:  NoStateID,
	}
}

// AddState Create a new state, non final and without transitions.
func (f *VectorFst) AddState() StateID {
	state := len(f.states)
	f.states = append(f.states, vectorState{final: Zero})
	return state
}

// AddStates Create n new states at once.
func (f *VectorFst) AddStates(n int) {
	f.states = slices.Grow(f.states, n)
	for range n {
		f.states = append(f.states, vectorState{final: Zero})
	}
}

func (f *VectorFst) checkState(state StateID) error {
	if state < 0 || state >= len(f.states) {
		return fmt.Errorf("%w: %d (num states %d)", ErrStateNotFound, state, len(f.states))
	}
	return nil
}

// SetStart The state is now the start state; the previous start state, if any, is forgotten.
func (f *VectorFst) SetStart(state StateID) error {
	if err := f.checkState(state); err != nil {
		return err
	}
	f.start = state
	return nil
}

// Start Returns the start state, or NoStateID.
func (f *VectorFst) Start() StateID {
	return f.start
}

// SetFinal Set the final weight of the state. Setting Zero makes the state non final.
func (f *VectorFst) SetFinal(state StateID, weight TropicalWeight) error {
	if err := f.checkState(state); err != nil {
		return err
	}
	f.states[state].final = weight
	return nil
}

// DeleteFinal Make the state non final.
func (f *VectorFst) DeleteFinal(state StateID) error {
	return f.SetFinal(state, Zero)
}

// Final Returns the final weight of the state; Zero if it is not final.
func (f *VectorFst) Final(state StateID) (TropicalWeight, error) {
	if err := f.checkState(state); err != nil {
		return Zero, err
	}
	return f.states[state].final, nil
}

// IsFinal Returns true if the state exists and has a non Zero final weight.
func (f *VectorFst) IsFinal(state StateID) bool {
	if f.checkState(state) != nil {
		return false
	}
	return !f.states[state].final.IsZero()
}

// AddTr Add a transition leaving source. The destination must already exist.
func (f *VectorFst) AddTr(source StateID, tr Tr) error {
	if err := f.checkState(source); err != nil {
		return err
	}
	if err := f.checkState(tr.NextState); err != nil {
		return fmt.Errorf("next state of transition from %d: %w", source, err)
	}
	f.states[source].trs = append(f.states[source].trs, tr)
	return nil
}

// SetTrs Replace all transitions leaving the state.
func (f *VectorFst) SetTrs(state StateID, trs []Tr) error {
	if err := f.checkState(state); err != nil {
		return err
	}
	for _, tr := range trs {
		if err := f.checkState(tr.NextState); err != nil {
			return fmt.Errorf("next state of transition from %d: %w", state, err)
		}
	}
	f.states[state].trs = trs
	return nil
}

// DeleteTrs Remove all transitions leaving the state.
func (f *VectorFst) DeleteTrs(state StateID) error {
	if err := f.checkState(state); err != nil {
		return err
	}
	f.states[state].trs = nil
	return nil
}

// Trs Returns the transitions leaving the state. The slice is owned by the fst and must not be modified.
func (f *VectorFst) Trs(state StateID) ([]Tr, error) {
	if err := f.checkState(state); err != nil {
		return nil, err
	}
	return f.states[state].trs, nil
}

// NumStates How many states this fst has.
func (f *VectorFst) NumStates() int {
	return len(f.states)
}

// NumTrs How many transitions leave this state; 0 for a missing state.
func (f *VectorFst) NumTrs(state StateID) int {
	if f.checkState(state) != nil {
		return 0
	}
	return len(f.states[state].trs)
}

// TotalTrs How many transitions this fst has.
func (f *VectorFst) TotalTrs() int {
	total := 0
	for s := range f.states {
		total += len(f.states[s].trs)
	}
	return total
}

// NumFinals How many states are final.
func (f *VectorFst) NumFinals() int {
	n := 0
	for s := range f.states {
		if !f.states[s].final.IsZero() {
			n++
		}
	}
	return n
}

// States Iterates over the state ids in increasing order.
func (f *VectorFst) States() iter.Seq[StateID] {
	return func(yield func(StateID) bool) {
		for s := range f.states {
			if !yield(s) {
				return
			}
		}
	}
}

// DeleteStates Removes the states whose bit is set, together with every transition reaching them. The
// remaining states are renumbered sequentially, keeping their relative order. The start state is cleared
// if it is removed.
func (f *VectorFst) DeleteStates(dead *bitset.BitSet) {
	if dead.None() {
		return
	}

	newID := make([]StateID, len(f.states))
	next := 0
	for s := range f.states {
		if dead.Test(uint(s)) {
			newID[s] = NoStateID
			continue
		}
		newID[s] = next
		next++
	}

	for s := range f.states {
		if newID[s] == NoStateID {
			continue
		}
		st := f.states[s]
		upto := 0
		for _, tr := range st.trs {
			if newID[tr.NextState] == NoStateID {
				continue
			}
			tr.NextState = newID[tr.NextState]
			st.trs[upto] = tr
			upto++
		}
		st.trs = st.trs[:upto]
		f.states[newID[s]] = st
	}

	clear(f.states[next:])
	f.states = f.states[:next]

	if f.start != NoStateID {
		f.start = newID[f.start]
	}
}

// DeleteAllStates Remove every state; the fst has no start state afterwards.
func (f *VectorFst) DeleteAllStates() {
	f.states = f.states[:0]
	f.start = NoStateID
}

// Copy Returns a deep copy of this fst.
func (f *VectorFst) Copy() *VectorFst {
	result := NewVectorFstV1(len(f.states))
	result.start = f.start
	for _, st := range f.states {
		trs := make([]Tr, len(st.trs))
		copy(trs, st.trs)
		result.states = append(result.states, vectorState{final: st.final, trs: trs})
	}
	return result
}

// Equal Returns true if both fsts have the same start state, the same final weights and the same transitions
// in the same order. Weights are compared with ApproxEqual.
func (f *VectorFst) Equal(other *VectorFst) bool {
	if f.start != other.start || len(f.states) != len(other.states) {
		return false
	}
	for s := range f.states {
		a, b := f.states[s], other.states[s]
		if !a.final.ApproxEqual(b.final) || len(a.trs) != len(b.trs) {
			return false
		}
		for i := range a.trs {
			if !a.trs[i].ApproxEqual(b.trs[i]) {
				return false
			}
		}
	}
	return true
}

func (f *VectorFst) String() string {
	var sb strings.Builder
	_ = WriteText(&sb, f)
	return sb.String()
}
