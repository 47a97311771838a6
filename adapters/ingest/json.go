package ingest

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"reportanalysis/domain/table"
	"reportanalysis/internal/errors"
)

// loadJSON reads a record-oriented JSON file: an array of flat objects.
// Column order follows first appearance across records; absent keys become
// missing cells.
func (l *Loader) loadJSON(path string) (*table.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read JSON file %s", path)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.UnsupportedFormat("JSON source must be an array of objects: %v", err)
	}

	var headers []string
	seen := make(map[string]bool)
	for _, rec := range records {
		// Two passes keep column order deterministic within a record: JSON
		// object iteration order is randomized in Go, so sort keys per record.
		for _, key := range sortedKeys(rec) {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, headers)
	for _, rec := range records {
		row := make([]string, len(headers))
		for j, key := range headers {
			val, ok := rec[key]
			if !ok || val == nil {
				continue
			}
			row[j] = scalarString(val)
		}
		rows = append(rows, row)
	}
	return l.fromStringRows(rows)
}

// scalarString renders a decoded JSON value as its raw textual form so that
// the shared type inference treats JSON and CSV sources identically.
func scalarString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
