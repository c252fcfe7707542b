package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalLayout converts a layout to indented JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeLayoutTo(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLayout deserializes JSON bytes to a Layout.
// Returns an error if the strategy is present but unknown.
func UnmarshalLayout(data []byte) (Layout, error) {
	return readLayoutFrom(bytes.NewReader(data))
}

// WriteLayoutFile writes a layout to a JSON file.
// The file is created with 0644 permissions.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeLayoutTo(l, f)
}

// ReadLayoutFile reads a JSON file and returns the decoded layout.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readLayoutFrom(f)
}

// WriteLayout writes a layout as JSON to an io.Writer.
func WriteLayout(l Layout, w io.Writer) error {
	return writeLayoutTo(l, w)
}

// ReadLayout decodes a JSON layout from an io.Reader.
func ReadLayout(r io.Reader) (Layout, error) {
	return readLayoutFrom(r)
}

func writeLayoutTo(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readLayoutFrom(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode: %w", err)
	}
	if l.Strategy != "" {
		if err := ValidateStrategy(l.Strategy); err != nil {
			return Layout{}, err
		}
	}
	return l, nil
}
