package ports

import (
	"context"

	"reportanalysis/domain/analysis"
)

// ReportRenderer materializes an analysis result into a document at the
// given output path. It returns the written path, or an error carrying
// errors.CodeRender on write failure. No partial document is left behind
// on failure.
type ReportRenderer interface {
	Render(ctx context.Context, result *analysis.Result, outputPath string) (string, error)
}
