package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"reportanalysis/domain/analysis"
	"reportanalysis/domain/table"
)

// correlations builds a symmetric Pearson matrix over every numeric column
// pair using pairwise-complete observations. Fewer than two numeric columns
// yields an empty result. Pairs whose absolute coefficient clears the
// configured threshold are reported separately in deterministic order.
func (a *Analyzer) correlations(tbl *table.Table) analysis.Correlation {
	numeric := tbl.NumericColumns()
	if len(numeric) < 2 {
		return analysis.Correlation{
			Matrix: map[string]map[string]float64{},
			Strong: []analysis.StrongPair{},
		}
	}

	matrix := make(map[string]map[string]float64, len(numeric))
	for _, col := range numeric {
		matrix[col.Name] = make(map[string]float64, len(numeric))
		matrix[col.Name][col.Name] = 1.0
	}

	strong := []analysis.StrongPair{}
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r := pairwiseCorrelation(numeric[i], numeric[j])
			matrix[numeric[i].Name][numeric[j].Name] = r
			matrix[numeric[j].Name][numeric[i].Name] = r
			if math.Abs(r) > a.cfg.CorrelationThreshold {
				strong = append(strong, analysis.StrongPair{
					VariableX:   numeric[i].Name,
					VariableY:   numeric[j].Name,
					Correlation: r,
					Strength:    correlationLabel(r),
				})
			}
		}
	}
	sort.Slice(strong, func(i, j int) bool {
		if strong[i].VariableX != strong[j].VariableX {
			return strong[i].VariableX < strong[j].VariableX
		}
		return strong[i].VariableY < strong[j].VariableY
	})
	return analysis.Correlation{Matrix: matrix, Strong: strong}
}

// pairwiseCorrelation keeps only rows where both cells are present.
// Degenerate pairs (under two shared observations, or zero variance on
// either side) report 0 rather than NaN.
func pairwiseCorrelation(x, y *table.Column) float64 {
	var xs, ys []float64
	for i := range x.Cells {
		if x.Cells[i].Missing || y.Cells[i].Missing {
			continue
		}
		xs = append(xs, x.Cells[i].Num)
		ys = append(ys, y.Cells[i].Num)
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func correlationLabel(r float64) string {
	if r > 0 {
		return "strong positive"
	}
	return "strong negative"
}

// describePair is used by key findings to phrase a strong pair.
func describePair(p analysis.StrongPair) string {
	return fmt.Sprintf("%s and %s show a %s correlation (r=%.2f)", p.VariableX, p.VariableY, p.Strength, p.Correlation)
}
