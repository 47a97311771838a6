package analysis

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"reportanalysis/domain/analysis"
	"reportanalysis/domain/synthesis"
	"reportanalysis/domain/table"
)

// trends fits an ordinary least-squares line per numeric column against row
// position after sorting by the detected temporal column. Restricted to the
// first maxTrendColumns numeric columns; columns with fewer than two
// non-missing values are skipped. Without a temporal column the result is
// empty, not an error.
func (a *Analyzer) trends(tbl *table.Table, dateRange *synthesis.DateRange) map[string]analysis.Trend {
	out := make(map[string]analysis.Trend)
	if dateRange == nil {
		return out
	}
	order, ok := temporalOrder(tbl, dateRange.Column)
	if !ok {
		return out
	}

	numeric := tbl.NumericColumns()
	if len(numeric) > maxTrendColumns {
		numeric = numeric[:maxTrendColumns]
	}
	for _, col := range numeric {
		values := make([]float64, 0, len(order))
		for _, row := range order {
			cell := col.Cells[row]
			if !cell.Missing {
				values = append(values, cell.Num)
			}
		}
		if len(values) < 2 {
			a.log.Debug("[Analysis] trend skipped for %q: fewer than 2 values", col.Name)
			continue
		}
		out[col.Name] = fitTrend(values)
	}
	return out
}

// temporalOrder returns row indices sorted ascending by the named column's
// timestamps. Rows whose timestamp is missing or unparseable sort last in
// their original order. Declared temporal columns use their typed cells;
// probe-detected ones parse raw text without mutating the table.
func temporalOrder(tbl *table.Table, column string) ([]int, bool) {
	col := tbl.Column(column)
	if col == nil {
		return nil, false
	}
	type stamped struct {
		row int
		at  time.Time
		ok  bool
	}
	stamps := make([]stamped, len(col.Cells))
	for i, cell := range col.Cells {
		s := stamped{row: i}
		if !cell.Missing {
			if col.Type == table.TypeTemporal {
				s.at, s.ok = cell.Time, true
			} else {
				s.at, s.ok = table.ParseTime(cell.Raw)
			}
		}
		stamps[i] = s
	}
	sort.SliceStable(stamps, func(i, j int) bool {
		if stamps[i].ok != stamps[j].ok {
			return stamps[i].ok
		}
		if !stamps[i].ok {
			return false
		}
		return stamps[i].at.Before(stamps[j].at)
	})
	order := make([]int, len(stamps))
	for i, s := range stamps {
		order[i] = s.row
	}
	return order, true
}

// fitTrend regresses values against their positions. R-squared equals the
// squared Pearson correlation of the simple regression; a flat series has no
// meaningful fit and reports a weak zero trend.
func fitTrend(values []float64) analysis.Trend {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)
	r := stat.Correlation(xs, values, nil)
	if math.IsNaN(r) || math.IsNaN(slope) {
		return analysis.Trend{Direction: analysis.DirectionDecreasing, Strength: analysis.StrengthWeak}
	}

	t := analysis.Trend{
		Slope:    slope,
		RSquared: r * r,
	}
	if slope > 0 {
		t.Direction = analysis.DirectionIncreasing
	} else {
		t.Direction = analysis.DirectionDecreasing
	}
	switch abs := math.Abs(r); {
	case abs > strongR:
		t.Strength = analysis.StrengthStrong
	case abs > moderateR:
		t.Strength = analysis.StrengthModerate
	default:
		t.Strength = analysis.StrengthWeak
	}
	return t
}
