package analysis

import (
	"context"
	"math"
	"testing"
	"time"

	"reportanalysis/adapters/mcp"
	"reportanalysis/domain/analysis"
	"reportanalysis/domain/table"
	"reportanalysis/internal/config"
	synthstage "reportanalysis/internal/synthesis"
	"reportanalysis/internal/testkit"
)

func analysisDefaults() config.AnalysisConfig {
	return config.AnalysisConfig{
		CorrelationThreshold: 0.7,
		OutlierMethod:        "iqr",
		TrendAnalysis:        true,
	}
}

// runAnalysis pushes a table through the synthesis stage first so the
// analyzer sees realistic input.
func runAnalysis(t *testing.T, cfg config.AnalysisConfig, tbl *table.Table) *analysis.Result {
	t.Helper()
	syn, err := synthstage.NewSynthesizer(config.SynthesisConfig{}, mcp.NoopClient{}, nil).
		Execute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}
	result, err := NewAnalyzer(cfg, mcp.NoopClient{}, nil).Execute(context.Background(), syn)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestDescriptive_KnownSeries(t *testing.T) {
	tbl := testkit.TableOf(t, testkit.Numeric("v", 2, 4, 4, 4, 5, 5, 7, 9))
	result := runAnalysis(t, analysisDefaults(), tbl)

	d, ok := result.Descriptive["v"]
	if !ok {
		t.Fatal("descriptive stats for v missing")
	}
	if d.Count != 8 {
		t.Errorf("Count = %d, want 8", d.Count)
	}
	if d.Mean != 5 {
		t.Errorf("Mean = %v, want 5", d.Mean)
	}
	if d.Median != 4.5 {
		t.Errorf("Median = %v, want 4.5", d.Median)
	}
	if d.Mode == nil || *d.Mode != 4 {
		t.Errorf("Mode = %v, want 4", d.Mode)
	}
	if d.Quartiles.Q1 > d.Quartiles.Q2 || d.Quartiles.Q2 > d.Quartiles.Q3 {
		t.Errorf("quartiles out of order: %+v", d.Quartiles)
	}
}

func TestDescriptive_ZeroVariance(t *testing.T) {
	tbl := testkit.TableOf(t, testkit.Numeric("flat", 5, 5, 5, 5, 5))
	result := runAnalysis(t, analysisDefaults(), tbl)

	d := result.Descriptive["flat"]
	if d.StdDev != 0 || d.Variance != 0 {
		t.Errorf("flat series should have zero spread, got std=%v var=%v", d.StdDev, d.Variance)
	}
	if d.Skewness != 0 || d.Kurtosis != 0 {
		t.Errorf("flat series should report zero shape stats, got skew=%v kurt=%v", d.Skewness, d.Kurtosis)
	}
}

func TestCorrelation_SelfAndSymmetry(t *testing.T) {
	tbl := testkit.TableOf(t,
		testkit.Numeric("x", 1, 2, 3, 4, 5),
		testkit.Numeric("y", 2, 4, 6, 8, 10),
		testkit.Numeric("z", 5, 3, 8, 1, 9),
	)
	result := runAnalysis(t, analysisDefaults(), tbl)
	m := result.Correlation.Matrix

	for _, name := range []string{"x", "y", "z"} {
		if m[name][name] != 1.0 {
			t.Errorf("self-correlation of %s = %v, want 1.0", name, m[name][name])
		}
	}
	if m["x"]["z"] != m["z"]["x"] {
		t.Errorf("matrix not symmetric: %v vs %v", m["x"]["z"], m["z"]["x"])
	}
	if math.Abs(m["x"]["y"]-1.0) > 1e-9 {
		t.Errorf("perfectly linear pair correlation = %v, want 1.0", m["x"]["y"])
	}

	found := false
	for _, p := range result.Correlation.Strong {
		if p.VariableX == "x" && p.VariableY == "y" {
			found = true
			if p.Strength != "strong positive" {
				t.Errorf("strength = %q, want strong positive", p.Strength)
			}
		}
	}
	if !found {
		t.Error("x/y pair should be reported as strong")
	}
}

func TestCorrelation_RequiresTwoNumericColumns(t *testing.T) {
	tbl := testkit.TableOf(t,
		testkit.Numeric("only", 1, 2, 3),
		testkit.Categorical("c", "a", "b", "c"),
	)
	result := runAnalysis(t, analysisDefaults(), tbl)
	if len(result.Correlation.Matrix) != 0 {
		t.Errorf("Matrix = %v, want empty", result.Correlation.Matrix)
	}
	if len(result.Correlation.Strong) != 0 {
		t.Errorf("Strong = %v, want empty", result.Correlation.Strong)
	}
}

func TestCorrelation_NegativePair(t *testing.T) {
	tbl := testkit.TableOf(t,
		testkit.Numeric("up", 1, 2, 3, 4, 5),
		testkit.Numeric("down", 10, 8, 6, 4, 2),
	)
	result := runAnalysis(t, analysisDefaults(), tbl)
	if len(result.Correlation.Strong) != 1 {
		t.Fatalf("Strong pairs = %d, want 1", len(result.Correlation.Strong))
	}
	if result.Correlation.Strong[0].Strength != "strong negative" {
		t.Errorf("strength = %q, want strong negative", result.Correlation.Strong[0].Strength)
	}
}

func TestOutliers_BoundsOrdered(t *testing.T) {
	tbl := testkit.TableOf(t,
		testkit.Numeric("v", 10, 11, 12, 11, 10, 12, 11, 100),
	)
	result := runAnalysis(t, analysisDefaults(), tbl)
	o, ok := result.Outliers["v"]
	if !ok {
		t.Fatal("outliers for v missing")
	}
	if o.LowerBound >= o.UpperBound {
		t.Errorf("bounds inverted: lower=%v upper=%v", o.LowerBound, o.UpperBound)
	}
	if o.Count != 1 {
		t.Errorf("Count = %d, want 1 (the 100)", o.Count)
	}
	if o.Percentage != 12.5 {
		t.Errorf("Percentage = %v, want 12.5", o.Percentage)
	}
}

func TestOutliers_SkipsShortColumns(t *testing.T) {
	tbl := testkit.TableOf(t, testkit.Numeric("v", 1, 2, 3))
	result := runAnalysis(t, analysisDefaults(), tbl)
	if _, ok := result.Outliers["v"]; ok {
		t.Error("columns with fewer than 4 values should be skipped")
	}
}

func TestTrends_IncreasingLinearSeries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tbl := testkit.TableOf(t,
		testkit.Temporal("date", start, 5),
		testkit.Numeric("sales", 1, 2, 3, 4, 5),
	)
	result := runAnalysis(t, analysisDefaults(), tbl)
	tr, ok := result.Trends["sales"]
	if !ok {
		t.Fatal("trend for sales missing")
	}
	if tr.Direction != analysis.DirectionIncreasing {
		t.Errorf("Direction = %q, want %q", tr.Direction, analysis.DirectionIncreasing)
	}
	if tr.Slope <= 0 {
		t.Errorf("Slope = %v, want > 0", tr.Slope)
	}
	if math.Abs(tr.RSquared-1.0) > 1e-9 {
		t.Errorf("RSquared = %v, want 1.0", tr.RSquared)
	}
	if tr.Strength != analysis.StrengthStrong {
		t.Errorf("Strength = %q, want %q", tr.Strength, analysis.StrengthStrong)
	}
}

func TestTrends_SortedByTimestamp(t *testing.T) {
	// Rows arrive shuffled; the fit must follow time order, not row order.
	dates := table.Column{Name: "date", Type: table.TypeTemporal, Cells: []table.Cell{
		{Raw: "2024-01-03", Time: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{Raw: "2024-01-01", Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Raw: "2024-01-02", Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}}
	tbl := testkit.TableOf(t, dates, testkit.Numeric("v", 30, 10, 20))
	result := runAnalysis(t, analysisDefaults(), tbl)
	tr, ok := result.Trends["v"]
	if !ok {
		t.Fatal("trend for v missing")
	}
	if tr.Direction != analysis.DirectionIncreasing {
		t.Errorf("Direction = %q, want increasing after time sort", tr.Direction)
	}
	if math.Abs(tr.RSquared-1.0) > 1e-9 {
		t.Errorf("RSquared = %v, want 1.0 after time sort", tr.RSquared)
	}
}

func TestTrends_DisabledByConfig(t *testing.T) {
	cfg := analysisDefaults()
	cfg.TrendAnalysis = false
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tbl := testkit.TableOf(t,
		testkit.Temporal("date", start, 3),
		testkit.Numeric("v", 1, 2, 3),
	)
	result := runAnalysis(t, cfg, tbl)
	if len(result.Trends) != 0 {
		t.Errorf("Trends = %v, want empty when disabled", result.Trends)
	}
}

func TestTrends_NoTemporalColumn(t *testing.T) {
	tbl := testkit.TableOf(t, testkit.Numeric("v", 1, 2, 3))
	result := runAnalysis(t, analysisDefaults(), tbl)
	if len(result.Trends) != 0 {
		t.Errorf("Trends = %v, want empty without a temporal column", result.Trends)
	}
}

func TestKeyFindings_AlwaysPresent(t *testing.T) {
	tbl := testkit.TableOf(t, testkit.Numeric("v", 1, 2, 3))
	result := runAnalysis(t, analysisDefaults(), tbl)
	if len(result.KeyFindings) == 0 {
		t.Fatal("key findings must never be empty")
	}
}

func TestRecommendations_MissingDataRule(t *testing.T) {
	tbl := testkit.TableOf(t,
		testkit.NumericWithMissing("v",
			testkit.Float(1), nil, nil, nil, testkit.Float(5)),
	)
	result := runAnalysis(t, analysisDefaults(), tbl)
	found := false
	for _, r := range result.Recommendations {
		if r == "Consider addressing missing data to improve analysis accuracy" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-data recommendation absent: %v", result.Recommendations)
	}
}

func TestAIAnalysis_EmptyWhenDisconnected(t *testing.T) {
	tbl := testkit.TableOf(t, testkit.Numeric("v", 1, 2, 3))
	result := runAnalysis(t, analysisDefaults(), tbl)
	if len(result.AIAnalysis) != 0 {
		t.Errorf("AIAnalysis = %v, want empty", result.AIAnalysis)
	}
}
