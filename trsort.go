package fst

import (
	"sort"
)

// TrCompare Orders two transitions leaving the same state.
type TrCompare func(a, b *Tr) bool

// ILabelCompare Sorts by input label, then output label.
func ILabelCompare(a, b *Tr) bool {
	if a.ILabel != b.ILabel {
		return a.ILabel < b.ILabel
	}
	return a.OLabel < b.OLabel
}

// OLabelCompare Sorts by output label, then input label.
func OLabelCompare(a, b *Tr) bool {
	if a.OLabel != b.OLabel {
		return a.OLabel < b.OLabel
	}
	return a.ILabel < b.ILabel
}

var _ sort.Interface = &trSorter{}

type trSorter struct {
	trs  []Tr
	less TrCompare
}

func (r *trSorter) Len() int {
	return len(r.trs)
}

func (r *trSorter) Less(i, j int) bool {
	return r.less(&r.trs[i], &r.trs[j])
}

func (r *trSorter) Swap(i, j int) {
	r.trs[i], r.trs[j] = r.trs[j], r.trs[i]
}

// TrSort Sorts the transitions leaving each state. Transitions comparing equal keep their order.
func TrSort(f *VectorFst, less TrCompare) {
	sorter := &trSorter{less: less}
	for s := range f.states {
		sorter.trs = f.states[s].trs
		sort.Stable(sorter)
	}
}

// IsTrSorted Returns true if the transitions leaving every state are ordered according to less.
func IsTrSorted(f *VectorFst, less TrCompare) bool {
	for s := range f.states {
		trs := f.states[s].trs
		for i := 1; i < len(trs); i++ {
			if less(&trs[i], &trs[i-1]) {
				return false
			}
		}
	}
	return true
}
