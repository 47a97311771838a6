// Package testkit provides table fixtures shared across stage tests.
package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"reportanalysis/domain/table"
)

// Numeric builds a numeric column. NaN is not used for missing values; use
// NumericWithMissing when gaps are needed.
func Numeric(name string, values ...float64) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = table.Cell{Raw: strconv.FormatFloat(v, 'g', -1, 64), Num: v}
	}
	return table.Column{Name: name, Type: table.TypeNumeric, Cells: cells}
}

// NumericWithMissing builds a numeric column from pointers; nil means
// missing.
func NumericWithMissing(name string, values ...*float64) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		if v == nil {
			cells[i] = table.Cell{Missing: true}
		} else {
			cells[i] = table.Cell{Raw: strconv.FormatFloat(*v, 'g', -1, 64), Num: *v}
		}
	}
	return table.Column{Name: name, Type: table.TypeNumeric, Cells: cells}
}

// Categorical builds a categorical column; empty strings are missing.
func Categorical(name string, values ...string) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = table.Cell{Missing: true}
		} else {
			cells[i] = table.Cell{Raw: v}
		}
	}
	return table.Column{Name: name, Type: table.TypeCategorical, Cells: cells}
}

// Temporal builds a temporal column of consecutive days starting at the
// given date.
func Temporal(name string, start time.Time, days int) table.Column {
	cells := make([]table.Cell, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		cells[i] = table.Cell{Raw: d.Format("2006-01-02"), Time: d}
	}
	return table.Column{Name: name, Type: table.TypeTemporal, Cells: cells}
}

// TableOf builds a table from columns, failing the test on shape mismatch.
func TableOf(t *testing.T, columns ...table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(columns)
	if err != nil {
		t.Fatalf("build fixture table: %v", err)
	}
	return tbl
}

// Float returns a pointer for NumericWithMissing values.
func Float(v float64) *float64 { return &v }

// WriteCSV writes rows as a CSV file under the test temp dir and returns
// the path.
func WriteCSV(t *testing.T, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	var b []byte
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				b = append(b, ',')
			}
			b = append(b, field...)
		}
		b = append(b, '\n')
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// SalesFixture is a small time series with a perfectly linear sales column.
func SalesFixture(t *testing.T) string {
	t.Helper()
	rows := [][]string{{"date", "sales"}}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rows = append(rows, []string{
			start.AddDate(0, 0, i).Format("2006-01-02"),
			fmt.Sprintf("%d", 100+10*i),
		})
	}
	return WriteCSV(t, "sales.csv", rows)
}
