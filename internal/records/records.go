// Package records loads datasets whose rows formulas are evaluated against.
// A dataset is a list of records mapping attribute names to cell values, as
// the data host hands them over.
package records

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Record is one row of a dataset.
type Record = map[string]interface{}

// Format is the encoding of a dataset file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown dataset format for %q, expected .json, .yaml or .csv", path)
}

// Load reads a dataset file, picking the format from its extension.
func Load(path string) ([]Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %q: %w", path, err)
	}
	recs, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %q: %w", path, err)
	}
	return recs, nil
}

// Decode reads a dataset in the given format. JSON and YAML datasets are a
// list of objects. CSV datasets have a header row naming the attributes;
// cells are kept as text and coerced when the formula environment is built.
func Decode(r io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatJSON:
		var recs []Record
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&recs); err != nil {
			return nil, err
		}
		return normalize(recs), nil
	case FormatYAML:
		var recs []Record
		if err := yaml.NewDecoder(r).Decode(&recs); err != nil {
			if errors.Is(err, io.EOF) {
				return []Record{}, nil
			}
			return nil, err
		}
		return normalize(recs), nil
	case FormatCSV:
		return decodeCSV(r)
	}
	return nil, fmt.Errorf("unsupported dataset format %q", format)
}

// normalize turns json.Number cells into their text, which formula
// environments parse as numbers, and drops null rows.
func normalize(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		for k, v := range rec {
			if n, ok := v.(json.Number); ok {
				rec[k] = n.String()
			}
		}
		out = append(out, rec)
	}
	return out
}

func decodeCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}
	header := rows[0]
	recs := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Attributes returns the sorted names of all attributes in a dataset.
func Attributes(recs []Record) []string {
	seen := map[string]struct{}{}
	for _, rec := range recs {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}
