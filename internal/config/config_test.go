package config

import (
	"os"
	"path/filepath"
	"testing"

	"reportanalysis/internal/errors"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.MinRows != 1 {
		t.Errorf("data.min_rows = %d, want 1", cfg.Data.MinRows)
	}
	if cfg.Data.CSVComma != "," {
		t.Errorf("data.csv_delimiter = %q, want %q", cfg.Data.CSVComma, ",")
	}
	if !cfg.Synthesis.EnableAIInsights {
		t.Error("synthesis.enable_ai_insights should default to true")
	}
	if cfg.Analysis.CorrelationThreshold != 0.7 {
		t.Errorf("analysis.correlation_threshold = %v, want 0.7", cfg.Analysis.CorrelationThreshold)
	}
	if cfg.Analysis.OutlierMethod != "iqr" {
		t.Errorf("analysis.outlier_method = %q, want iqr", cfg.Analysis.OutlierMethod)
	}
	if cfg.Report.PageSize != "letter" {
		t.Errorf("report.page_size = %q, want letter", cfg.Report.PageSize)
	}
	if cfg.Insight.Enabled {
		t.Error("insight.enabled should default to false")
	}
	if cfg.Insight.TimeoutSeconds != 30 {
		t.Errorf("insight.timeout = %d, want 30", cfg.Insight.TimeoutSeconds)
	}
}

func TestLoad_FileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "analysis:\n  correlation_threshold: 0.5\nreport:\n  page_size: a4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.CorrelationThreshold != 0.5 {
		t.Errorf("overridden threshold = %v, want 0.5", cfg.Analysis.CorrelationThreshold)
	}
	if cfg.Report.PageSize != "a4" {
		t.Errorf("overridden page_size = %q, want a4", cfg.Report.PageSize)
	}
	// Untouched sections keep their defaults.
	if cfg.Analysis.OutlierMethod != "iqr" {
		t.Errorf("outlier_method = %q, want iqr", cfg.Analysis.OutlierMethod)
	}
	if cfg.Data.MinRows != 1 {
		t.Errorf("data.min_rows = %d, want 1", cfg.Data.MinRows)
	}
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "analysis:\n  correlation_threshold: 0.6\nfuture_section:\n  something: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.CorrelationThreshold != 0.6 {
		t.Errorf("threshold = %v, want 0.6", cfg.Analysis.CorrelationThreshold)
	}
}

func TestLoad_AbsentFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("absent config file should not error, got %v", err)
	}
	if cfg.Data.MinRows != 1 {
		t.Errorf("data.min_rows = %d, want 1", cfg.Data.MinRows)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("data: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.HasCode(err, errors.CodeConfigInvalid) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeConfigInvalid)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	saved := Default()
	saved.Analysis.CorrelationThreshold = 0.9
	if err := Save(saved, path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.CorrelationThreshold != 0.9 {
		t.Errorf("round-tripped threshold = %v, want 0.9", cfg.Analysis.CorrelationThreshold)
	}
}
