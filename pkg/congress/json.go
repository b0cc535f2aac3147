package congress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadJSON decodes a dataset from r.
//
// The input must be a JSON array of sessions. Chamber lists may be omitted;
// a present list must not be null. Session order is preserved exactly.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Dataset, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	ds := make(Dataset, 0, len(raw))
	for i, msg := range raw {
		var s Session
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		if err := checkNullChambers(msg); err != nil {
			return nil, fmt.Errorf("session %d: %w", s.SessionNo, err)
		}
		ds = append(ds, s)
	}
	return ds, nil
}

// checkNullChambers rejects explicit nulls for chamber lists, which the
// struct decoder would otherwise silently treat as absent.
func checkNullChambers(msg json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil {
		return err
	}
	for _, key := range []string{"senateScores", "houseScores"} {
		if v, ok := fields[key]; ok && string(v) == "null" {
			return fmt.Errorf("%s is null", key)
		}
	}
	return nil
}

// ImportJSON reads and decodes the dataset file at path.
func ImportJSON(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// WriteJSON encodes ds to w with two-space indentation.
func WriteJSON(w io.Writer, ds Dataset) error {
	if ds == nil {
		ds = Dataset{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON replaces the file at path with the encoded dataset,
// creating parent directories as needed.
func ExportJSON(path string, ds Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
