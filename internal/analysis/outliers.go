package analysis

import (
	mstats "github.com/montanaflynn/stats"

	"reportanalysis/domain/analysis"
	"reportanalysis/domain/table"
)

// detectOutliers flags values outside the Tukey fences, Q1-1.5*IQR and
// Q3+1.5*IQR, per numeric column. Columns with fewer than four non-missing
// values have no stable quartiles and are skipped.
func (a *Analyzer) detectOutliers(tbl *table.Table) map[string]analysis.Outlier {
	out := make(map[string]analysis.Outlier)
	if a.cfg.OutlierMethod != "iqr" {
		a.log.Warn("[Analysis] unknown outlier method %q, using iqr", a.cfg.OutlierMethod)
	}
	for _, col := range tbl.NumericColumns() {
		values := col.Floats()
		if len(values) < 4 {
			continue
		}
		q, err := mstats.Quartile(mstats.Float64Data(values))
		if err != nil {
			a.log.Warn("[Analysis] quartiles failed for %q: %v", col.Name, err)
			continue
		}
		iqr := q.Q3 - q.Q1
		lower := q.Q1 - 1.5*iqr
		upper := q.Q3 + 1.5*iqr

		count := 0
		for _, v := range values {
			if v < lower || v > upper {
				count++
			}
		}
		out[col.Name] = analysis.Outlier{
			Count:      count,
			Percentage: float64(count) / float64(len(values)) * 100,
			LowerBound: lower,
			UpperBound: upper,
		}
	}
	return out
}
