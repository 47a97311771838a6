package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"reportanalysis/domain/table"
)

// Coercion thresholds: the share of non-missing sampled values that must
// parse as a type before the column is declared that type.
const (
	numericThreshold   = 0.8
	booleanThreshold   = 0.9
	timestampThreshold = 0.8
	maxSampleSize      = 500
)

// missingTokens are treated as explicitly missing cells regardless of the
// column's declared type.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"nil":  true,
	"nan":  true,
	"none": true,
	"-":    true,
}

func isMissing(s string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(s))]
}

// parseNumeric parses a numeric string, tolerating thousands separators and
// a trailing percent sign.
func parseNumeric(s string) (float64, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, false
	}
	clean = strings.TrimSuffix(clean, "%")
	if strings.Contains(clean, ",") && strings.Contains(clean, ".") {
		clean = strings.ReplaceAll(clean, ",", "")
	} else if strings.Count(clean, ",") > 0 && !strings.Contains(clean, ".") {
		// Comma as thousands separator only when the groups look like one.
		parts := strings.Split(clean, ",")
		grouped := true
		for i, p := range parts {
			if i > 0 && len(p) != 3 {
				grouped = false
				break
			}
		}
		if grouped {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	}
	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// parseBool accepts common textual boolean representations. Bare 0/1 are
// deliberately excluded so integer flag columns stay numeric.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "on":
		return true, true
	case "false", "no", "n", "off":
		return false, true
	}
	return false, false
}

func parseTime(s string) (time.Time, bool) {
	return table.ParseTime(s)
}

// inferType declares a column type from a sample of raw values. Numeric wins
// over boolean so that 0/1 flag columns and currency-ish columns stay
// numeric; temporal is checked last among the typed options because date
// strings never parse as floats.
func inferType(sample []string) table.ValueType {
	valid := 0
	numeric, boolean, temporal := 0, 0, 0
	for _, raw := range sample {
		if isMissing(raw) {
			continue
		}
		valid++
		if _, ok := parseNumeric(raw); ok {
			numeric++
		}
		if _, ok := parseBool(raw); ok {
			boolean++
		}
		if _, ok := parseTime(raw); ok {
			temporal++
		}
	}
	if valid == 0 {
		return table.TypeCategorical
	}
	n := float64(valid)
	switch {
	case float64(numeric)/n >= numericThreshold:
		return table.TypeNumeric
	case float64(boolean)/n >= booleanThreshold:
		return table.TypeBoolean
	case float64(temporal)/n >= timestampThreshold:
		return table.TypeTemporal
	default:
		return table.TypeCategorical
	}
}

// sampleValues returns up to maxSampleSize values spread evenly across the
// column.
func sampleValues(values []string) []string {
	if len(values) <= maxSampleSize {
		return values
	}
	out := make([]string, 0, maxSampleSize)
	step := float64(len(values)) / float64(maxSampleSize)
	for i := 0; i < maxSampleSize; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx >= len(values) {
			idx = len(values) - 1
		}
		out = append(out, values[idx])
	}
	return out
}

// buildColumn coerces every raw value under the declared type. Values that
// fail coercion become missing cells that keep their raw text.
func buildColumn(name string, vt table.ValueType, values []string) table.Column {
	cells := make([]table.Cell, len(values))
	for i, raw := range values {
		raw = strings.TrimSpace(raw)
		if isMissing(raw) {
			cells[i] = table.Cell{Missing: true}
			continue
		}
		cell := table.Cell{Raw: raw}
		switch vt {
		case table.TypeNumeric:
			if v, ok := parseNumeric(raw); ok {
				cell.Num = v
			} else {
				cell.Missing = true
			}
		case table.TypeBoolean:
			if v, ok := parseBool(raw); ok {
				cell.Bool = v
			} else {
				cell.Missing = true
			}
		case table.TypeTemporal:
			if v, ok := parseTime(raw); ok {
				cell.Time = v
			} else {
				cell.Missing = true
			}
		}
		cells[i] = cell
	}
	return table.Column{Name: name, Type: vt, Cells: cells}
}
