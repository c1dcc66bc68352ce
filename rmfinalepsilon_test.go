package fst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 0 -a/0.5-> 1 -eps/2-> 2 (final 1), with an optional extra transition 1 -b/1-> 2.
func epsilonToFinal(t *testing.T, withLabeled bool) *VectorFst {
	f := NewVectorFst()
	f.AddStates(3)
	require.Nil(t, f.SetStart(0))
	require.Nil(t, f.AddTr(0, NewTr(1, 1, 0.5, 1)))
	require.Nil(t, f.AddTr(1, NewTr(EpsLabel, EpsLabel, 2, 2)))
	if withLabeled {
		require.Nil(t, f.AddTr(1, NewTr(2, 2, 1, 2)))
	}
	require.Nil(t, f.SetFinal(2, 1))
	return f
}

func TestRmFinalEpsilon(t *testing.T) {
	t.Run("RemovesDanglingFinal", func(t *testing.T) {
		f := epsilonToFinal(t, false)
		RmFinalEpsilon(f)

		assert.Equal(t, 2, f.NumStates())
		assert.Equal(t, 1, f.TotalTrs())
		w, err := f.Final(1)
		assert.Nil(t, err)
		assert.Equal(t, TropicalWeight(3), w)
		assert.False(t, f.IsFinal(0))
	})

	t.Run("KeepsLabeledTransitions", func(t *testing.T) {
		f := epsilonToFinal(t, true)
		RmFinalEpsilon(f)

		assert.Equal(t, 3, f.NumStates())
		trs, _ := f.Trs(1)
		assert.Equal(t, []Tr{NewTr(2, 2, 1, 2)}, trs)
		w, _ := f.Final(1)
		assert.Equal(t, TropicalWeight(3), w)
		w, _ = f.Final(2)
		assert.Equal(t, TropicalWeight(1), w)
	})

	t.Run("PlusWithExistingFinal", func(t *testing.T) {
		f := epsilonToFinal(t, false)
		require.Nil(t, f.SetFinal(1, 2.5))
		RmFinalEpsilon(f)

		w, _ := f.Final(1)
		assert.Equal(t, TropicalWeight(2.5), w)
	})

	t.Run("FinalWithFutureIsKept", func(t *testing.T) {
		f := NewVectorFst()
		f.AddStates(3)
		require.Nil(t, f.SetStart(0))
		require.Nil(t, f.AddTr(0, NewTr(EpsLabel, EpsLabel, One, 1)))
		require.Nil(t, f.AddTr(1, NewTr(1, 1, One, 2)))
		require.Nil(t, f.SetFinal(1, One))
		require.Nil(t, f.SetFinal(2, One))
		want := f.Copy()

		RmFinalEpsilon(f)
		assert.True(t, want.Equal(f), "got\n%s", f)
	})

	t.Run("HalfEpsilonIsKept", func(t *testing.T) {
		f := NewVectorFst()
		f.AddStates(2)
		require.Nil(t, f.SetStart(0))
		require.Nil(t, f.AddTr(0, NewTr(EpsLabel, 5, One, 1)))
		require.Nil(t, f.SetFinal(1, One))
		want := f.Copy()

		RmFinalEpsilon(f)
		assert.True(t, want.Equal(f))
	})

	t.Run("SeveralEpsilons", func(t *testing.T) {
		f := NewVectorFst()
		f.AddStates(3)
		require.Nil(t, f.SetStart(0))
		require.Nil(t, f.AddTr(0, NewTr(EpsLabel, EpsLabel, 4, 1)))
		require.Nil(t, f.AddTr(0, NewTr(EpsLabel, EpsLabel, 1, 2)))
		require.Nil(t, f.SetFinal(1, 1))
		require.Nil(t, f.SetFinal(2, 7))

		RmFinalEpsilon(f)
		assert.Equal(t, 1, f.NumStates())
		w, _ := f.Final(0)
		assert.Equal(t, TropicalWeight(5), w)
	})

	t.Run("NoStart", func(t *testing.T) {
		f := NewVectorFst()
		f.AddStates(2)
		require.Nil(t, f.SetFinal(1, One))
		RmFinalEpsilon(f)
		assert.Equal(t, 0, f.NumStates())
	})

	t.Run("PreservesPathWeights", func(t *testing.T) {
		f, err := ReadText(sampleText())
		require.Nil(t, err)
		before := f.Copy()
		RmFinalEpsilon(f)

		inputs := [][]Label{{}, {1}, {1, 2}, {1, 3}, {2}, {1, 2, 2}}
		for _, in := range inputs {
			assert.True(t, PathWeight(before, in, in).ApproxEqual(PathWeight(f, in, in)), "input %v", in)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		f, err := ReadText(sampleText())
		require.Nil(t, err)
		RmFinalEpsilon(f)
		once := f.Copy()
		RmFinalEpsilon(f)
		assert.True(t, once.Equal(f))
	})
}
