package fst

import (
	"github.com/bits-and-blooms/bitset"
)

// SingleSourceShortestDistance
// Computes the shortest distance from the state source to every state, that is the Plus-sum of the weights
// of all the paths between them. A source outside the fst yields Zero everywhere.
func SingleSourceShortestDistance(f *VectorFst, source StateID) []TropicalWeight {
	numStates := f.NumStates()
	d := make([]TropicalWeight, numStates)
	r := make([]TropicalWeight, numStates)
	for i := range d {
		d[i] = Zero
		r[i] = Zero
	}

	if source < 0 || source >= numStates {
		return d
	}

	d[source] = One
	r[source] = One

	enqueued := bitset.New(uint(numStates))
	queue := []StateID{source}
	enqueued.Set(uint(source))

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		enqueued.Clear(uint(s))

		r2 := r[s]
		r[s] = Zero

		for _, tr := range f.states[s].trs {
			next := tr.NextState
			w := r2.Times(tr.Weight)
			if nd := d[next].Plus(w); !nd.ApproxEqual(d[next]) {
				d[next] = nd
				r[next] = r[next].Plus(w)
				if !enqueued.Test(uint(next)) {
					queue = append(queue, next)
					enqueued.Set(uint(next))
				}
			}
		}
	}
	return d
}

// ShortestDistance Shortest distance from the start state to every state; Zero everywhere without start.
func ShortestDistance(f *VectorFst) []TropicalWeight {
	return SingleSourceShortestDistance(f, f.Start())
}
