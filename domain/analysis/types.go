// Package analysis defines the structures produced by the analysis stage.
package analysis

import "reportanalysis/domain/synthesis"

// Quartiles holds the three quartile cut points of a distribution.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// Descriptive captures distribution statistics for one numeric column,
// computed over non-missing values only. Skewness uses the Fisher definition
// and Kurtosis is excess kurtosis.
type Descriptive struct {
	Count     int       `json:"count"`
	Mean      float64   `json:"mean"`
	Median    float64   `json:"median"`
	Mode      *float64  `json:"mode,omitempty"` // first modal value, nil when undefined
	StdDev    float64   `json:"std"`
	Variance  float64   `json:"variance"`
	Skewness  float64   `json:"skewness"`
	Kurtosis  float64   `json:"kurtosis"`
	Quartiles Quartiles `json:"quartiles"`
}

// Trend direction labels.
const (
	DirectionIncreasing = "increasing"
	DirectionDecreasing = "decreasing"
)

// Trend strength labels, classified by |r|.
const (
	StrengthStrong   = "strong"   // |r| > 0.7
	StrengthModerate = "moderate" // |r| > 0.4
	StrengthWeak     = "weak"
)

// Trend is the least-squares fit of a numeric column against row position
// after sorting by the table's temporal column.
type Trend struct {
	Slope     float64 `json:"slope"`
	Direction string  `json:"direction"`
	RSquared  float64 `json:"r_squared"`
	Strength  string  `json:"strength"`
}

// StrongPair records a correlation with |r| above the strong threshold.
type StrongPair struct {
	VariableX   string  `json:"variable_x"`
	VariableY   string  `json:"variable_y"`
	Correlation float64 `json:"correlation"`
	Strength    string  `json:"strength"` // "strong positive" or "strong negative"
}

// Correlation holds the pairwise Pearson matrix over numeric columns.
// Matrix is symmetric with a unit diagonal; empty when fewer than two
// numeric columns exist.
type Correlation struct {
	Matrix map[string]map[string]float64 `json:"correlation_matrix"`
	Strong []StrongPair                  `json:"strong_correlations"`
}

// Outlier reports IQR-fence outliers for one numeric column.
type Outlier struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// Result aggregates every analysis output for one pipeline run.
// It is an immutable snapshot handed to the report renderer.
type Result struct {
	RunID           string                 `json:"run_id,omitempty"`
	Synthesis       *synthesis.Synthesis   `json:"synthesized_data"`
	Descriptive     map[string]Descriptive `json:"descriptive_stats"`
	Trends          map[string]Trend       `json:"temporal_trends"`
	Correlation     Correlation            `json:"correlation_analysis"`
	Outliers        map[string]Outlier     `json:"outlier_detection"`
	KeyFindings     []string               `json:"key_findings"`
	Recommendations []string               `json:"recommendations"`
	AIAnalysis      map[string]any         `json:"ai_analysis,omitempty"`
}
