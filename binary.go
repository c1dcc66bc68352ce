package fst

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	// Magic number opening every OpenFST binary file.
	binaryMagic       = int32(2125659606)
	binaryFstType     = "vector"
	binaryArcType     = "standard"
	binaryFstVersion  = int32(2)
	maxHeaderString   = 1 << 10
	flagHasISymbols   = int32(0x1)
	flagHasOSymbols   = int32(0x2)
	propertyExpanded  = uint64(0x1)
	propertyMutable   = uint64(0x2)
	binaryProperties  = propertyExpanded | propertyMutable
	binaryNoStateID64 = int64(-1)
)

var (
	ErrBadMagic    = errors.New("not an fst binary file")
	ErrUnsupported = errors.New("unsupported fst binary file")
)

var byteOrder = binary.LittleEndian

type binaryHeader struct {
	fstType    string
	arcType    string
	version    int32
	flags      int32
	properties uint64
	start      int64
	numStates  int64
	numTrs     int64
}

// ReadBinary Reads an fst serialized in the OpenFST vector binary format with standard (tropical, float32)
// arcs. Files carrying symbol tables are rejected.
func ReadBinary(r io.Reader) (*VectorFst, error) {
	br := bufio.NewReader(r)

	hdr, err := readBinaryHeader(br)
	if err != nil {
		return nil, err
	}

	f := NewVectorFstV1(int(min(hdr.numStates, 1<<16)))
	for s := 0; s < int(hdr.numStates); s++ {
		var final float32
		var numTrs int64
		if err := readFields(br, &final, &numTrs); err != nil {
			return nil, fmt.Errorf("state %d: %w", s, err)
		}
		if numTrs < 0 {
			return nil, fmt.Errorf("%w: state %d has %d transitions", ErrUnsupported, s, numTrs)
		}
		trs := make([]Tr, 0, min(numTrs, 1<<16))
		for i := int64(0); i < numTrs; i++ {
			var ilabel, olabel, nextState int32
			var weight float32
			if err := readFields(br, &ilabel, &olabel, &weight, &nextState); err != nil {
				return nil, fmt.Errorf("state %d transition %d: %w", s, i, err)
			}
			if nextState < 0 || int64(nextState) >= hdr.numStates {
				return nil, fmt.Errorf("%w: state %d transition %d: next state %d", ErrStateNotFound, s, i, nextState)
			}
			trs = append(trs, NewTr(int(ilabel), int(olabel), TropicalWeight(weight), int(nextState)))
		}
		f.states = append(f.states, vectorState{final: TropicalWeight(final), trs: trs})
	}

	if hdr.start != binaryNoStateID64 {
		if err := f.SetStart(int(hdr.start)); err != nil {
			return nil, fmt.Errorf("start state: %w", err)
		}
	}
	return f, nil
}

func readBinaryHeader(br *bufio.Reader) (*binaryHeader, error) {
	var magic int32
	if err := binary.Read(br, byteOrder, &magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if magic != binaryMagic {
		return nil, fmt.Errorf("%w: magic %d", ErrBadMagic, magic)
	}

	hdr := &binaryHeader{}
	var err error
	if hdr.fstType, err = readString(br); err != nil {
		return nil, err
	}
	if hdr.arcType, err = readString(br); err != nil {
		return nil, err
	}
	if err := readFields(br, &hdr.version, &hdr.flags, &hdr.properties, &hdr.start, &hdr.numStates, &hdr.numTrs); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	switch {
	case hdr.fstType != binaryFstType:
		return nil, fmt.Errorf("%w: fst type %q", ErrUnsupported, hdr.fstType)
	case hdr.arcType != binaryArcType:
		return nil, fmt.Errorf("%w: arc type %q", ErrUnsupported, hdr.arcType)
	case hdr.version < binaryFstVersion:
		return nil, fmt.Errorf("%w: version %d", ErrUnsupported, hdr.version)
	case hdr.flags&(flagHasISymbols|flagHasOSymbols) != 0:
		return nil, fmt.Errorf("%w: symbol tables", ErrUnsupported)
	case hdr.numStates < 0 || hdr.numStates > math.MaxInt32:
		return nil, fmt.Errorf("%w: %d states", ErrUnsupported, hdr.numStates)
	}
	return hdr, nil
}

func readString(br *bufio.Reader) (string, error) {
	var n int32
	if err := binary.Read(br, byteOrder, &n); err != nil {
		return "", fmt.Errorf("header: %w", err)
	}
	if n < 0 || n > maxHeaderString {
		return "", fmt.Errorf("%w: string of length %d", ErrUnsupported, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return "", fmt.Errorf("header: %w", err)
	}
	return string(buf), nil
}

func readFields(r io.Reader, fields ...any) error {
	for _, field := range fields {
		if err := binary.Read(r, byteOrder, field); err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// WriteBinary Serializes the fst in the OpenFST vector binary format.
// Labels and state ids must fit in an int32.
func WriteBinary(w io.Writer, f *VectorFst) error {
	if err := checkInt32(f); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, byteOrder, binaryMagic); err != nil {
		return err
	}
	if err := writeString(bw, binaryFstType); err != nil {
		return err
	}
	if err := writeString(bw, binaryArcType); err != nil {
		return err
	}

	start := binaryNoStateID64
	if f.Start() != NoStateID {
		start = int64(f.Start())
	}
	err := writeFields(bw, binaryFstVersion, int32(0), binaryProperties,
		start, int64(f.NumStates()), int64(f.TotalTrs()))
	if err != nil {
		return err
	}

	for s := range f.states {
		st := f.states[s]
		if err := writeFields(bw, float32(st.final), int64(len(st.trs))); err != nil {
			return err
		}
		for _, tr := range st.trs {
			err := writeFields(bw, int32(tr.ILabel), int32(tr.OLabel), float32(tr.Weight), int32(tr.NextState))
			if err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

func checkInt32(f *VectorFst) error {
	if len(f.states) > math.MaxInt32 {
		return fmt.Errorf("%w: %d states", ErrUnsupported, len(f.states))
	}
	for s, st := range f.states {
		for i, tr := range st.trs {
			if tr.ILabel < 0 || tr.ILabel > math.MaxInt32 || tr.OLabel < 0 || tr.OLabel > math.MaxInt32 {
				return fmt.Errorf("%w: state %d transition %d: labels %d:%d do not fit in int32", ErrUnsupported, s, i, tr.ILabel, tr.OLabel)
			}
		}
	}
	return nil
}

func writeFields(w io.Writer, fields ...any) error {
	for _, field := range fields {
		if err := binary.Write(w, byteOrder, field); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, byteOrder, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}
