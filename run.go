package fst

import (
	"github.com/bits-and-blooms/bitset"
)

// PathWeight
// Returns the Plus-sum of the weights of all successful paths reading ilabels and writing olabels, epsilons
// being skipped on either side. Zero means the pair is not accepted. The fst must not contain a cycle of
// negative weight that only reads and writes epsilons.
func PathWeight(f *VectorFst, ilabels, olabels []Label) TropicalWeight {
	start := f.Start()
	if start == NoStateID {
		return Zero
	}

	// A configuration is a state plus how many labels were consumed on each side.
	ni, no := len(ilabels)+1, len(olabels)+1
	width := ni * no
	index := func(s, i, o int) int { return s*width + i*no + o }

	numConfigs := f.NumStates() * width
	d := make(map[int]TropicalWeight)
	enqueued := bitset.New(uint(numConfigs))

	get := func(c int) TropicalWeight {
		if w, ok := d[c]; ok {
			return w
		}
		return Zero
	}

	first := index(start, 0, 0)
	d[first] = One
	queue := []int{first}
	enqueued.Set(uint(first))

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		enqueued.Clear(uint(c))

		s, rest := c/width, c%width
		i, o := rest/no, rest%no
		w := get(c)

		for _, tr := range f.states[s].trs {
			ni2, no2 := i, o
			if tr.ILabel != EpsLabel {
				if i >= len(ilabels) || ilabels[i] != tr.ILabel {
					continue
				}
				ni2++
			}
			if tr.OLabel != EpsLabel {
				if o >= len(olabels) || olabels[o] != tr.OLabel {
					continue
				}
				no2++
			}

			next := index(tr.NextState, ni2, no2)
			old := get(next)
			if nw := old.Plus(w.Times(tr.Weight)); !nw.ApproxEqual(old) {
				d[next] = nw
				if !enqueued.Test(uint(next)) {
					queue = append(queue, next)
					enqueued.Set(uint(next))
				}
			}
		}
	}

	result := Zero
	for s := range f.states {
		if w, ok := d[index(s, len(ilabels), len(olabels))]; ok {
			result = result.Plus(w.Times(f.states[s].final))
		}
	}
	return result
}
