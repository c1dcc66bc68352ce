package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		s, err := Summarize([]time.Duration{3 * time.Millisecond})
		require.Nil(t, err)
		assert.Equal(t, 1, s.Samples)
		assert.InDelta(t, 3.0, s.Mean, 1e-9)
		assert.InDelta(t, 0.0, s.Variance, 1e-9)
		assert.InDelta(t, 3.0, s.Median, 1e-9)
		assert.InDelta(t, 3.0, s.Max, 1e-9)
	})

	t.Run("Several", func(t *testing.T) {
		s, err := Summarize([]time.Duration{
			1 * time.Millisecond,
			2 * time.Millisecond,
			3 * time.Millisecond,
			6 * time.Millisecond,
		})
		require.Nil(t, err)
		assert.Equal(t, 4, s.Samples)
		assert.InDelta(t, 3.0, s.Mean, 1e-9)
		assert.InDelta(t, 3.5, s.Variance, 1e-9)
		assert.InDelta(t, 1.8708, s.StdDev, 1e-3)
		assert.InDelta(t, 1.0, s.Min, 1e-9)
		assert.InDelta(t, 2.5, s.Median, 1e-9)
		assert.InDelta(t, 6.0, s.Max, 1e-9)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Summarize(nil)
		assert.NotNil(t, err)
	})
}

func sampleEntry(samples int) *Entry {
	phases := []PhaseTimings{{Name: PhaseParsing}, {Name: PhaseAlgorithm}, {Name: PhaseSerialization}}
	for i := range phases {
		for j := 0; j < samples; j++ {
			phases[i].Samples = append(phases[i].Samples, time.Duration(j+1)*time.Millisecond)
		}
	}
	return &Entry{
		Algorithm: "rm_final_epsilon",
		Date:      time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		WarmUps:   2,
		Iters:     samples,
		Input:     FstInfo{Path: "in.fst", Bytes: 2048, NumStates: 1200, NumTrs: 3},
		Output:    FstInfo{Path: "out.fst", Bytes: 10, NumStates: 1, NumTrs: 0},
		Phases:    phases,
	}
}

func TestMarkdown(t *testing.T) {
	md, err := sampleEntry(3).Markdown()
	require.Nil(t, err)

	assert.True(t, strings.HasPrefix(md, "## rm_final_epsilon\n"))
	assert.Contains(t, md, "- Date: 2026-10-19T12:00:00Z")
	assert.Contains(t, md, "`in.fst` (2.0 kB, 1,200 states, 3 transitions)")
	assert.Contains(t, md, "- Warm-ups: 2, iterations: 3")
	assert.Contains(t, md, "- Samples: 3")
	assert.Contains(t, md, "| parsing | 2.000 |")
	assert.Contains(t, md, "| algorithm | 2.000 |")
	assert.Contains(t, md, "| serialization | 2.000 |")

	bad := sampleEntry(2)
	bad.Phases[1].Samples = bad.Phases[1].Samples[:1]
	_, err = bad.Markdown()
	assert.NotNil(t, err)
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.Nil(t, os.WriteFile(path, []byte("# Benchmarks\n\n"), 0o644))

	first, err := Append(path, sampleEntry(1))
	require.Nil(t, err)
	_, err = Append(path, sampleEntry(2))
	require.Nil(t, err)

	data, err := os.ReadFile(path)
	require.Nil(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# Benchmarks\n\n"+first))
	assert.Equal(t, 2, strings.Count(content, "## rm_final_epsilon"))

	_, err = Append(filepath.Join(t.TempDir(), "missing", "report.md"), sampleEntry(1))
	assert.NotNil(t, err)
}

func TestRender(t *testing.T) {
	md, err := sampleEntry(1).Markdown()
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, Render(&buf, md, "notty"))
	assert.Contains(t, buf.String(), "rm_final_epsilon")
}
