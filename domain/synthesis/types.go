// Package synthesis defines the structures produced by the synthesis stage.
package synthesis

import (
	"time"

	"reportanalysis/domain/table"
)

// NumericSummary describes one numeric column at synthesis level.
type NumericSummary struct {
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Missing int     `json:"missing"`
}

// ValueCount pairs a categorical value with its frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary describes one categorical column.
type CategoricalSummary struct {
	UniqueValues int          `json:"unique_values"`
	TopValues    []ValueCount `json:"top_values"` // at most 5, by descending count
	Missing      int          `json:"missing"`
}

// Summary holds the per-table and per-column synthesis output.
type Summary struct {
	TotalRows    int                           `json:"total_rows"`
	TotalColumns int                           `json:"total_columns"`
	ColumnTypes  map[string]table.ValueType    `json:"column_types"`
	Numeric      map[string]NumericSummary     `json:"numeric_summary"`
	Categorical  map[string]CategoricalSummary `json:"categorical_summary"`
}

// DateRange is the observed span of the first temporal column.
type DateRange struct {
	Column string    `json:"column"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// DataQuality captures table-level completeness metrics.
type DataQuality struct {
	Completeness  float64 `json:"completeness"` // percentage of non-missing cells
	MissingValues int     `json:"missing_values"`
	DuplicateRows int     `json:"duplicate_rows"`
	TotalCells    int     `json:"total_cells"`
}

// Metadata describes dataset shape and estimated footprint.
type Metadata struct {
	Shape       [2]int   `json:"shape"` // rows, columns
	Columns     []string `json:"columns"`
	MemoryBytes int      `json:"memory_bytes"`
}

// Synthesis is the complete synthesis stage output. The source table is
// carried forward for the analyzer; nothing here is mutated after creation.
type Synthesis struct {
	Table       *table.Table              `json:"-"`
	Summary     Summary                   `json:"summary"`
	DateRange   *DateRange                `json:"date_range,omitempty"`
	Categorical map[string]map[string]int `json:"categorical_aggregations"`
	Quality     DataQuality               `json:"data_quality"`
	Metadata    Metadata                  `json:"metadata"`
	AIInsights  map[string]any            `json:"ai_insights,omitempty"`
}
