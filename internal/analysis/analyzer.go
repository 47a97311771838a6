// Package analysis implements the third pipeline stage: statistical analysis
// of the synthesized table.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"reportanalysis/domain/analysis"
	"reportanalysis/domain/synthesis"
	"reportanalysis/domain/table"
	"reportanalysis/internal"
	"reportanalysis/internal/config"
	"reportanalysis/ports"
)

// Trend strength cut points on |r|.
const (
	strongR   = 0.7
	moderateR = 0.4
)

// maxTrendColumns bounds trend analysis to the leading numeric columns.
const maxTrendColumns = 3

// aiSampleRows bounds the sample handed to the collaborator for analysis.
const aiSampleRows = 50

// Analyzer computes the analysis stage output. Per-column statistical
// failures are isolated: a column that cannot be summarized is skipped, the
// run continues.
type Analyzer struct {
	cfg     config.AnalysisConfig
	insight ports.InsightClient
	log     *internal.Logger
}

// NewAnalyzer creates the stage. A nil insight client falls back to a
// disconnected collaborator.
func NewAnalyzer(cfg config.AnalysisConfig, insight ports.InsightClient, log *internal.Logger) *Analyzer {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Analyzer{cfg: cfg, insight: insight, log: log}
}

// Execute analyzes the synthesized data.
func (a *Analyzer) Execute(ctx context.Context, syn *synthesis.Synthesis) (*analysis.Result, error) {
	a.log.Info("[Analysis] starting data analysis")
	tbl := syn.Table

	result := &analysis.Result{
		Synthesis:   syn,
		Descriptive: a.descriptiveStats(tbl),
		Correlation: a.correlations(tbl),
		Outliers:    a.detectOutliers(tbl),
	}
	if a.cfg.TrendAnalysis {
		result.Trends = a.trends(tbl, syn.DateRange)
	} else {
		result.Trends = map[string]analysis.Trend{}
	}
	result.KeyFindings = a.keyFindings(syn, result.Correlation.Strong)
	result.Recommendations = a.recommendations(syn, result.Outliers)

	if a.insight != nil && a.insight.Connected() {
		result.AIAnalysis = a.insight.Analyze(ctx, map[string]any{
			"summary": syn.Summary,
			"sample":  rowSample(tbl, aiSampleRows),
		})
	}

	a.log.Info("[Analysis] completed (%d columns, %d trends, %d strong correlations)",
		len(result.Descriptive), len(result.Trends), len(result.Correlation.Strong))
	return result, nil
}

// keyFindings derives deterministic, templated statements from the synthesis
// summary and quality metrics.
func (a *Analyzer) keyFindings(syn *synthesis.Synthesis, strong []analysis.StrongPair) []string {
	findings := []string{
		fmt.Sprintf("Dataset contains %d records across %d variables",
			syn.Summary.TotalRows, syn.Summary.TotalColumns),
		fmt.Sprintf("Data completeness: %.1f%% (%d missing values)",
			syn.Quality.Completeness, syn.Quality.MissingValues),
	}
	if len(syn.Summary.Numeric) > 0 {
		findings = append(findings, fmt.Sprintf(
			"Analysis includes %d numeric variables and %d categorical variables",
			len(syn.Summary.Numeric), len(syn.Summary.Categorical)))
	}
	if syn.DateRange != nil {
		findings = append(findings, fmt.Sprintf(
			"Temporal coverage spans %s to %s (column %q)",
			syn.DateRange.Start.Format("2006-01-02"), syn.DateRange.End.Format("2006-01-02"),
			syn.DateRange.Column))
	}
	for i, pair := range strong {
		if i == 3 {
			break
		}
		findings = append(findings, describePair(pair))
	}
	return findings
}

// recommendations applies the fixed rules: completeness below 90% and
// columns whose outlier share exceeds 5%.
func (a *Analyzer) recommendations(syn *synthesis.Synthesis, outliers map[string]analysis.Outlier) []string {
	var recs []string
	if syn.Quality.Completeness < 90 {
		recs = append(recs, "Consider addressing missing data to improve analysis accuracy")
	}
	var noisy []string
	for name, o := range outliers {
		if o.Percentage > 5 {
			noisy = append(noisy, name)
		}
	}
	if len(noisy) > 0 {
		sort.Strings(noisy)
		if len(noisy) > 3 {
			noisy = noisy[:3]
		}
		recs = append(recs, "Review outliers in: "+strings.Join(noisy, ", "))
	}
	return recs
}

// rowSample renders the leading rows of the table as records for the
// collaborator.
func rowSample(tbl *table.Table, limit int) []map[string]any {
	if limit > tbl.RowCount() {
		limit = tbl.RowCount()
	}
	rows := make([]map[string]any, 0, limit)
	for i := 0; i < limit; i++ {
		rec := make(map[string]any, tbl.ColumnCount())
		for j := range tbl.Columns {
			cell := tbl.Columns[j].Cells[i]
			if cell.Missing {
				rec[tbl.Columns[j].Name] = nil
			} else {
				rec[tbl.Columns[j].Name] = cell.Raw
			}
		}
		rows = append(rows, rec)
	}
	return rows
}
