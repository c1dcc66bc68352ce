package fst

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format Serialization of an fst on disk.
type Format int

const (
	// FormatAuto Picks FormatText for ".txt" and ".att" files, FormatBinary otherwise.
	FormatAuto Format = iota
	FormatBinary
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatBinary:
		return "binary"
	case FormatText:
		return "text"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat Parses the name printed by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "binary", "bin":
		return FormatBinary, nil
	case "text", "txt", "att":
		return FormatText, nil
	}
	return FormatAuto, fmt.Errorf("unknown fst format %q", s)
}

// Resolve Returns the concrete format used for path.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".att":
		return FormatText
	default:
		return FormatBinary
	}
}

// ReadFile Loads an fst from path.
func ReadFile(path string, format Format) (*VectorFst, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var f *VectorFst
	if format.Resolve(path) == FormatText {
		f, err = ReadText(file)
	} else {
		f, err = ReadBinary(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return f, nil
}

// WriteFile Stores the fst at path, truncating any existing file.
func WriteFile(path string, f *VectorFst, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if format.Resolve(path) == FormatText {
		err = WriteText(file, f)
	} else {
		err = WriteBinary(file, f)
	}
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
