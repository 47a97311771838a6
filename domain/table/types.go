// Package table defines the in-memory tabular data model shared by every
// pipeline stage. Column types are decided once at load time and never
// re-inferred downstream.
package table

import (
	"fmt"
	"strings"
	"time"
)

// ValueType is the closed set of semantic column types.
type ValueType string

const (
	TypeNumeric     ValueType = "numeric"
	TypeCategorical ValueType = "categorical"
	TypeTemporal    ValueType = "temporal"
	TypeBoolean     ValueType = "boolean"
)

// Cell holds a single tagged value. Exactly one of the typed fields is
// meaningful, selected by the owning column's ValueType. Missing cells carry
// only the Missing flag.
type Cell struct {
	Raw     string    `json:"raw,omitempty"`
	Missing bool      `json:"missing,omitempty"`
	Num     float64   `json:"num,omitempty"`
	Time    time.Time `json:"time,omitempty"`
	Bool    bool      `json:"bool,omitempty"`
}

// Column is an ordered sequence of cells sharing one semantic type.
type Column struct {
	Name  string    `json:"name"`
	Type  ValueType `json:"type"`
	Cells []Cell    `json:"cells"`
}

// SupportsMean reports whether mean-style aggregations apply.
func (c *Column) SupportsMean() bool { return c.Type == TypeNumeric }

// SupportsValueCounts reports whether value-count aggregations apply.
func (c *Column) SupportsValueCounts() bool {
	return c.Type == TypeCategorical || c.Type == TypeBoolean
}

// SupportsDatetimeOps reports whether date arithmetic applies.
func (c *Column) SupportsDatetimeOps() bool { return c.Type == TypeTemporal }

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Missing {
			n++
		}
	}
	return n
}

// Floats returns the non-missing numeric values in row order.
// Returns nil for non-numeric columns.
func (c *Column) Floats() []float64 {
	if c.Type != TypeNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing {
			out = append(out, cell.Num)
		}
	}
	return out
}

// Times returns the non-missing temporal values in row order.
// Returns nil for non-temporal columns.
func (c *Column) Times() []time.Time {
	if c.Type != TypeTemporal {
		return nil
	}
	out := make([]time.Time, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing {
			out = append(out, cell.Time)
		}
	}
	return out
}

// Strings returns the non-missing raw string values in row order.
func (c *Column) Strings() []string {
	out := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing {
			out = append(out, cell.Raw)
		}
	}
	return out
}

// Table is an immutable snapshot of loaded tabular data. All columns share
// the same row count.
type Table struct {
	Columns []Column `json:"columns"`
}

// New validates column shape and builds a table.
func New(columns []Column) (*Table, error) {
	if len(columns) > 0 {
		rows := len(columns[0].Cells)
		for _, col := range columns[1:] {
			if len(col.Cells) != rows {
				return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), rows)
			}
		}
	}
	return &Table{Columns: columns}, nil
}

// RowCount returns the shared row count.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.Columns) }

// ColumnNames returns names in column order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// NumericColumns returns pointers to numeric columns in column order.
func (t *Table) NumericColumns() []*Column {
	var cols []*Column
	for i := range t.Columns {
		if t.Columns[i].Type == TypeNumeric {
			cols = append(cols, &t.Columns[i])
		}
	}
	return cols
}

// CategoricalColumns returns pointers to categorical columns in column order.
// Boolean columns count as categorical for aggregation purposes.
func (t *Table) CategoricalColumns() []*Column {
	var cols []*Column
	for i := range t.Columns {
		if t.Columns[i].SupportsValueCounts() {
			cols = append(cols, &t.Columns[i])
		}
	}
	return cols
}

// TemporalColumn returns the first column declared temporal at load time.
func (t *Table) TemporalColumn() *Column {
	for i := range t.Columns {
		if t.Columns[i].Type == TypeTemporal {
			return &t.Columns[i]
		}
	}
	return nil
}

// MissingCells returns the total number of missing cells across all columns.
func (t *Table) MissingCells() int {
	n := 0
	for i := range t.Columns {
		n += t.Columns[i].MissingCount()
	}
	return n
}

// TotalCells returns rows * columns.
func (t *Table) TotalCells() int {
	return t.RowCount() * t.ColumnCount()
}

// DuplicateRowCount counts rows that are exact duplicates of an earlier row
// across every column. Missing cells compare equal to missing cells.
func (t *Table) DuplicateRowCount() int {
	seen := make(map[string]bool, t.RowCount())
	dupes := 0
	var b strings.Builder
	for row := 0; row < t.RowCount(); row++ {
		b.Reset()
		for i := range t.Columns {
			cell := t.Columns[i].Cells[row]
			if cell.Missing {
				b.WriteString("\x00")
			} else {
				b.WriteString(cell.Raw)
			}
			b.WriteString("\x1f")
		}
		key := b.String()
		if seen[key] {
			dupes++
		} else {
			seen[key] = true
		}
	}
	return dupes
}

// EstimatedBytes approximates in-memory size: raw string bytes plus a fixed
// per-cell overhead for the tagged value.
func (t *Table) EstimatedBytes() int {
	const cellOverhead = 48
	total := 0
	for i := range t.Columns {
		total += len(t.Columns[i].Name)
		for _, cell := range t.Columns[i].Cells {
			total += len(cell.Raw) + cellOverhead
		}
	}
	return total
}
