// Package config handles loading, merging, and saving pipeline configuration.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"reportanalysis/internal/errors"
)

// Config is the complete pipeline configuration. User values from the YAML
// file deep-merge over the documented defaults key-by-key; unknown keys are
// carried by the file but ignored here.
type Config struct {
	Data      DataConfig      `mapstructure:"data" yaml:"data"`
	Synthesis SynthesisConfig `mapstructure:"synthesis" yaml:"synthesis"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" yaml:"analysis"`
	Report    ReportConfig    `mapstructure:"report" yaml:"report"`
	Insight   InsightConfig   `mapstructure:"insight" yaml:"insight"`
}

// DataConfig holds ingestion settings
type DataConfig struct {
	MinRows    int    `mapstructure:"min_rows" yaml:"min_rows"`
	CSVComma   string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	ExcelSheet string `mapstructure:"excel_sheet" yaml:"excel_sheet"` // empty = first sheet
	SQLQuery   string `mapstructure:"sql_query" yaml:"sql_query"`
}

// SynthesisConfig holds synthesis stage settings
type SynthesisConfig struct {
	EnableAIInsights bool `mapstructure:"enable_ai_insights" yaml:"enable_ai_insights"`
	SampleRows       int  `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// AnalysisConfig holds analysis stage settings
type AnalysisConfig struct {
	CorrelationThreshold float64 `mapstructure:"correlation_threshold" yaml:"correlation_threshold"`
	OutlierMethod        string  `mapstructure:"outlier_method" yaml:"outlier_method"`
	TrendAnalysis        bool    `mapstructure:"trend_analysis" yaml:"trend_analysis"`
}

// ReportConfig holds renderer settings
type ReportConfig struct {
	PageSize      string `mapstructure:"page_size" yaml:"page_size"`
	IncludeCharts bool   `mapstructure:"include_charts" yaml:"include_charts"`
	MaxCharts     int    `mapstructure:"max_charts" yaml:"max_charts"`
}

// InsightConfig holds AI collaborator settings
type InsightConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	ServerURL      string `mapstructure:"server_url" yaml:"server_url"`
	TimeoutSeconds int    `mapstructure:"timeout" yaml:"timeout"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Data: DataConfig{
			MinRows:  1,
			CSVComma: ",",
		},
		Synthesis: SynthesisConfig{
			EnableAIInsights: true,
			SampleRows:       100,
		},
		Analysis: AnalysisConfig{
			CorrelationThreshold: 0.7,
			OutlierMethod:        "iqr",
			TrendAnalysis:        true,
		},
		Report: ReportConfig{
			PageSize:      "letter",
			IncludeCharts: true,
			MaxCharts:     2,
		},
		Insight: InsightConfig{
			Enabled:        false,
			ServerURL:      "",
			TimeoutSeconds: 30,
		},
	}
}

// Load reads configuration from the optional file path, merged over defaults.
// Precedence: env (REPORTANALYSIS_*) > config file > defaults. A missing
// cfgFile is not an error; a present but unreadable one is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REPORTANALYSIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("data.min_rows", def.Data.MinRows)
	v.SetDefault("data.csv_delimiter", def.Data.CSVComma)
	v.SetDefault("data.excel_sheet", def.Data.ExcelSheet)
	v.SetDefault("data.sql_query", def.Data.SQLQuery)
	v.SetDefault("synthesis.enable_ai_insights", def.Synthesis.EnableAIInsights)
	v.SetDefault("synthesis.sample_rows", def.Synthesis.SampleRows)
	v.SetDefault("analysis.correlation_threshold", def.Analysis.CorrelationThreshold)
	v.SetDefault("analysis.outlier_method", def.Analysis.OutlierMethod)
	v.SetDefault("analysis.trend_analysis", def.Analysis.TrendAnalysis)
	v.SetDefault("report.page_size", def.Report.PageSize)
	v.SetDefault("report.include_charts", def.Report.IncludeCharts)
	v.SetDefault("report.max_charts", def.Report.MaxCharts)
	v.SetDefault("insight.enabled", def.Insight.Enabled)
	v.SetDefault("insight.server_url", def.Insight.ServerURL)
	v.SetDefault("insight.timeout", def.Insight.TimeoutSeconds)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			// An absent file means defaults; a malformed one is an error.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !stderrors.Is(err, fs.ErrNotExist) {
				return nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: fmt.Sprintf("read config %s", cfgFile), Cause: err}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: "unmarshal config", Cause: err}
	}
	return &c, nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func Save(c Config, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
