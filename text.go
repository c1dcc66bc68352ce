package fst

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	ErrParse = errors.New("parse error")
)

// State ids may exceed twice the number of lines by at most this much.
const textStateSlack = 1 << 16

type textLine struct {
	ints   []int
	weight TropicalWeight
}

// ReadText Parses an fst in AT&T text format. Each line is either a transition "src dst ilabel olabel
// [weight]" or a final state "state [weight]"; a missing weight means One. The source of the first line is
// the start state. Empty input yields an fst without states.
func ReadText(r io.Reader) (*VectorFst, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []textLine
	maxState := -1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		ints, weight, err := parseTextLine(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo, err)
		}
		maxState = max(maxState, ints[0])
		if len(ints) == 4 {
			maxState = max(maxState, ints[1])
		}
		if maxState >= 2*(len(lines)+1)+textStateSlack {
			return nil, fmt.Errorf("%w: line %d: state %d is out of range for a file of this size", ErrParse, lineNo, maxState)
		}
		lines = append(lines, textLine{ints: ints, weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	f := NewVectorFstV1(maxState + 1)
	f.AddStates(maxState + 1)
	for i, line := range lines {
		src := line.ints[0]
		if i == 0 {
			f.start = src
		}
		if len(line.ints) == 1 {
			f.states[src].final = line.weight
		} else {
			f.states[src].trs = append(f.states[src].trs, NewTr(line.ints[2], line.ints[3], line.weight, line.ints[1]))
		}
	}
	return f, nil
}

func parseTextLine(fields []string) ([]int, TropicalWeight, error) {
	var numInts int
	switch len(fields) {
	case 1, 2:
		numInts = 1
	case 4, 5:
		numInts = 4
	default:
		return nil, Zero, fmt.Errorf("expected 1, 2, 4 or 5 fields, got %d", len(fields))
	}

	ints := make([]int, numInts)
	for i := 0; i < numInts; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, Zero, err
		}
		if v < 0 || v > math.MaxInt32 {
			return nil, Zero, fmt.Errorf("value %d out of range [0, %d]", v, math.MaxInt32)
		}
		ints[i] = v
	}

	weight := One
	if len(fields) > numInts {
		w, err := ParseWeight(fields[numInts])
		if err != nil {
			return nil, Zero, err
		}
		weight = w
	}
	return ints, weight, nil
}

// WriteText Prints the fst in AT&T text format, start state first. Weights equal to One are omitted. A state
// without transitions is always printed, with weight Infinity if not final. An fst without start state prints nothing.
func WriteText(w io.Writer, f *VectorFst) error {
	start := f.Start()
	if start == NoStateID {
		return nil
	}

	bw := bufio.NewWriter(w)
	writeTextState(bw, f, start)
	for s := range f.states {
		if s != start {
			writeTextState(bw, f, s)
		}
	}
	return bw.Flush()
}

func writeTextState(bw *bufio.Writer, f *VectorFst, s StateID) {
	st := f.states[s]
	for _, tr := range st.trs {
		if tr.Weight == One {
			_, _ = fmt.Fprintf(bw, "%d\t%d\t%d\t%d\n", s, tr.NextState, tr.ILabel, tr.OLabel)
		} else {
			_, _ = fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%s\n", s, tr.NextState, tr.ILabel, tr.OLabel, tr.Weight)
		}
	}
	if st.final.IsZero() && len(st.trs) > 0 {
		return
	}
	if st.final == One {
		_, _ = fmt.Fprintf(bw, "%d\n", s)
	} else {
		_, _ = fmt.Fprintf(bw, "%d\t%s\n", s, st.final)
	}
}
