// Package render materializes analysis results into report documents.
// The output format follows the output path's extension; PDF is the default.
package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"reportanalysis/domain/analysis"
	"reportanalysis/internal"
	"reportanalysis/internal/config"
	"reportanalysis/internal/errors"
	"reportanalysis/ports"
)

// Renderer dispatches to a format writer by output extension.
type Renderer struct {
	cfg config.ReportConfig
	log *internal.Logger
}

var _ ports.ReportRenderer = (*Renderer)(nil)

func NewRenderer(cfg config.ReportConfig, log *internal.Logger) *Renderer {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Renderer{cfg: cfg, log: log}
}

// Render writes the report. Content is produced into a sibling temp file and
// renamed into place so a failed run never leaves a partial document.
func (r *Renderer) Render(ctx context.Context, result *analysis.Result, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Render("render canceled", err)
	}
	ext := strings.ToLower(filepath.Ext(outputPath))
	if ext == "" {
		outputPath += ".pdf"
		ext = ".pdf"
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Render("create output directory", err)
		}
	}

	tmp := outputPath + ".tmp"
	var err error
	switch ext {
	case ".pdf":
		err = r.writePDF(result, tmp)
	case ".md":
		err = os.WriteFile(tmp, []byte(r.renderMarkdown(result)), 0o644)
	case ".html":
		err = os.WriteFile(tmp, r.renderHTML(result), 0o644)
	default:
		return "", errors.Render("unsupported report format "+ext, nil)
	}
	if err != nil {
		os.Remove(tmp)
		return "", errors.Render("write report", err)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		os.Remove(tmp)
		return "", errors.Render("finalize report", err)
	}
	r.log.Info("[Render] report written to %s", outputPath)
	return outputPath, nil
}
