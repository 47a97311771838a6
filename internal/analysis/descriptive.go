package analysis

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"reportanalysis/domain/analysis"
	"reportanalysis/domain/table"
)

// descriptiveStats computes distribution statistics per numeric column over
// non-missing values. Columns with no usable values are omitted rather than
// aborting the analysis; zero-variance columns report zero skewness and
// kurtosis instead of NaN.
func (a *Analyzer) descriptiveStats(tbl *table.Table) map[string]analysis.Descriptive {
	out := make(map[string]analysis.Descriptive)
	for _, col := range tbl.NumericColumns() {
		values := col.Floats()
		if len(values) == 0 {
			a.log.Warn("[Analysis] skipping column %q: no non-missing values", col.Name)
			continue
		}
		out[col.Name] = describe(values)
	}
	return out
}

func describe(values []float64) analysis.Descriptive {
	d := analysis.Descriptive{Count: len(values)}
	d.Mean, _ = mstats.Mean(values)
	d.Median, _ = mstats.Median(values)

	if modes, err := mstats.Mode(values); err == nil && len(modes) > 0 {
		mode := modes[0]
		d.Mode = &mode
	}

	if len(values) > 1 {
		d.StdDev, _ = mstats.StandardDeviationSample(values)
		d.Variance, _ = mstats.SampleVariance(values)
	}

	if d.StdDev > 0 && len(values) >= 3 {
		if sk := stat.Skew(values, nil); !math.IsNaN(sk) {
			d.Skewness = sk
		}
	}
	if d.StdDev > 0 && len(values) >= 4 {
		if k := stat.ExKurtosis(values, nil); !math.IsNaN(k) {
			d.Kurtosis = k
		}
	}

	d.Quartiles = quartilesOf(values)
	return d
}

func quartilesOf(values []float64) analysis.Quartiles {
	q, err := mstats.Quartile(values)
	if err != nil {
		// Too few values for the quartile split; collapse onto the median.
		med, _ := mstats.Median(values)
		return analysis.Quartiles{Q1: med, Q2: med, Q3: med}
	}
	return analysis.Quartiles{Q1: q.Q1, Q2: q.Q2, Q3: q.Q3}
}
