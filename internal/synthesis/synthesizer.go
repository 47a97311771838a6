// Package synthesis implements the second pipeline stage: aggregating a
// loaded table into summary structures for the analyzer.
package synthesis

import (
	"context"
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"

	"reportanalysis/domain/synthesis"
	"reportanalysis/domain/table"
	"reportanalysis/internal"
	"reportanalysis/internal/config"
	"reportanalysis/ports"
)

// maxCategoricalAggregations bounds the full value-count maps to the first
// few categorical columns by column order.
const maxCategoricalAggregations = 5

// Synthesizer computes the synthesis stage output.
type Synthesizer struct {
	cfg     config.SynthesisConfig
	insight ports.InsightClient
	log     *internal.Logger
}

// NewSynthesizer creates the stage. A nil insight client falls back to a
// disconnected collaborator.
func NewSynthesizer(cfg config.SynthesisConfig, insight ports.InsightClient, log *internal.Logger) *Synthesizer {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Synthesizer{cfg: cfg, insight: insight, log: log}
}

// Execute synthesizes the table. The table itself is carried forward
// unmodified for the analyzer.
func (s *Synthesizer) Execute(ctx context.Context, tbl *table.Table) (*synthesis.Synthesis, error) {
	s.log.Info("[Synthesis] starting data synthesis")

	out := &synthesis.Synthesis{
		Table:       tbl,
		Summary:     s.summarize(tbl),
		DateRange:   s.temporalRange(tbl),
		Categorical: s.categoricalAggregations(tbl),
		Quality:     s.assessQuality(tbl),
		Metadata:    s.metadata(tbl),
	}

	if s.cfg.EnableAIInsights && s.insight != nil && s.insight.Connected() {
		out.AIInsights = s.insight.GenerateInsights(ctx, s.sample(tbl))
	}

	s.log.Info("[Synthesis] completed (%d numeric, %d categorical columns)",
		len(out.Summary.Numeric), len(out.Summary.Categorical))
	return out, nil
}

func (s *Synthesizer) summarize(tbl *table.Table) synthesis.Summary {
	summary := synthesis.Summary{
		TotalRows:    tbl.RowCount(),
		TotalColumns: tbl.ColumnCount(),
		ColumnTypes:  make(map[string]table.ValueType, tbl.ColumnCount()),
		Numeric:      make(map[string]synthesis.NumericSummary),
		Categorical:  make(map[string]synthesis.CategoricalSummary),
	}
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		summary.ColumnTypes[col.Name] = col.Type
		switch {
		case col.SupportsMean():
			summary.Numeric[col.Name] = numericSummary(col)
		case col.SupportsValueCounts():
			summary.Categorical[col.Name] = categoricalSummary(col)
		}
	}
	return summary
}

func numericSummary(col *table.Column) synthesis.NumericSummary {
	values := col.Floats()
	ns := synthesis.NumericSummary{Missing: col.MissingCount()}
	if len(values) == 0 {
		return ns
	}
	ns.Mean, _ = mstats.Mean(values)
	ns.Median, _ = mstats.Median(values)
	ns.Min, _ = mstats.Min(values)
	ns.Max, _ = mstats.Max(values)
	if len(values) > 1 {
		ns.StdDev, _ = mstats.StandardDeviationSample(values)
	}
	return ns
}

func categoricalSummary(col *table.Column) synthesis.CategoricalSummary {
	counts := valueCounts(col)
	cs := synthesis.CategoricalSummary{
		UniqueValues: len(counts),
		Missing:      col.MissingCount(),
	}
	cs.TopValues = topValues(counts, 5)
	return cs
}

func valueCounts(col *table.Column) map[string]int {
	counts := make(map[string]int)
	for _, v := range col.Strings() {
		counts[v]++
	}
	return counts
}

// topValues returns the n most frequent values, count-descending with a
// stable value tiebreak.
func topValues(counts map[string]int, n int) []synthesis.ValueCount {
	out := make([]synthesis.ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, synthesis.ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// temporalRange records the min and max timestamp of the first temporal
// column. When no column was declared temporal at load time, every other
// column is probed with a non-mutating parse; the first fully parseable one
// wins. A table without any temporal candidate yields nil, not an error.
func (s *Synthesizer) temporalRange(tbl *table.Table) *synthesis.DateRange {
	if col := tbl.TemporalColumn(); col != nil {
		return dateRangeOf(col.Name, col.Times())
	}
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		if col.Type == table.TypeNumeric || col.Type == table.TypeBoolean {
			continue
		}
		if times, ok := probeTimes(col); ok {
			return dateRangeOf(col.Name, times)
		}
	}
	return nil
}

func probeTimes(col *table.Column) ([]time.Time, bool) {
	var times []time.Time
	for _, raw := range col.Strings() {
		t, ok := table.ParseTime(raw)
		if !ok {
			return nil, false
		}
		times = append(times, t)
	}
	return times, len(times) > 0
}

func dateRangeOf(name string, times []time.Time) *synthesis.DateRange {
	if len(times) == 0 {
		return nil
	}
	min, max := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return &synthesis.DateRange{Column: name, Start: min, End: max}
}

// categoricalAggregations builds full value->count maps for the first
// maxCategoricalAggregations categorical columns by column order.
func (s *Synthesizer) categoricalAggregations(tbl *table.Table) map[string]map[string]int {
	aggs := make(map[string]map[string]int)
	count := 0
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		if !col.SupportsValueCounts() {
			continue
		}
		if count >= maxCategoricalAggregations {
			break
		}
		aggs[col.Name] = valueCounts(col)
		count++
	}
	return aggs
}

func (s *Synthesizer) assessQuality(tbl *table.Table) synthesis.DataQuality {
	totalCells := tbl.TotalCells()
	missing := tbl.MissingCells()
	q := synthesis.DataQuality{
		MissingValues: missing,
		DuplicateRows: tbl.DuplicateRowCount(),
		TotalCells:    totalCells,
	}
	if totalCells > 0 {
		q.Completeness = float64(totalCells-missing) / float64(totalCells) * 100
	}
	return q
}

func (s *Synthesizer) metadata(tbl *table.Table) synthesis.Metadata {
	return synthesis.Metadata{
		Shape:       [2]int{tbl.RowCount(), tbl.ColumnCount()},
		Columns:     tbl.ColumnNames(),
		MemoryBytes: tbl.EstimatedBytes(),
	}
}

// sample renders up to the configured number of leading rows as a
// column-oriented map for the collaborator.
func (s *Synthesizer) sample(tbl *table.Table) map[string]any {
	limit := s.cfg.SampleRows
	if limit <= 0 {
		limit = 100
	}
	if limit > tbl.RowCount() {
		limit = tbl.RowCount()
	}
	cols := make(map[string]any, tbl.ColumnCount())
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		values := make([]any, 0, limit)
		for _, cell := range col.Cells[:limit] {
			if cell.Missing {
				values = append(values, nil)
			} else {
				values = append(values, cell.Raw)
			}
		}
		cols[col.Name] = values
	}
	return map[string]any{
		"rows":    limit,
		"columns": cols,
	}
}
