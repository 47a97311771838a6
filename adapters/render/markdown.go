package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"reportanalysis/domain/analysis"
)

// renderMarkdown builds the report as a Markdown document covering the same
// sections as the PDF layout.
func (r *Renderer) renderMarkdown(result *analysis.Result) string {
	syn := result.Synthesis
	var b strings.Builder

	b.WriteString("# Data Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("## Executive Summary\n\n")
	for _, f := range result.KeyFindings {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	b.WriteString("\n## Data Overview\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Rows | %d |\n", syn.Metadata.Shape[0])
	fmt.Fprintf(&b, "| Columns | %d |\n", syn.Metadata.Shape[1])
	fmt.Fprintf(&b, "| Completeness | %.1f%% |\n", syn.Quality.Completeness)
	fmt.Fprintf(&b, "| Missing values | %d |\n", syn.Quality.MissingValues)
	fmt.Fprintf(&b, "| Duplicate rows | %d |\n", syn.Quality.DuplicateRows)
	if syn.DateRange != nil {
		fmt.Fprintf(&b, "| Date range | %s to %s (%s) |\n",
			syn.DateRange.Start.Format("2006-01-02"),
			syn.DateRange.End.Format("2006-01-02"),
			syn.DateRange.Column)
	}

	if len(result.Descriptive) > 0 {
		b.WriteString("\n## Descriptive Statistics\n\n")
		b.WriteString("| Variable | Count | Mean | Median | Std | Min | Max |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, name := range sortedKeys(result.Descriptive) {
			d := result.Descriptive[name]
			num := syn.Summary.Numeric[name]
			fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				name, d.Count, d.Mean, d.Median, d.StdDev, num.Min, num.Max)
		}
	}

	if len(result.Trends) > 0 {
		b.WriteString("\n## Temporal Trends\n\n")
		for _, name := range sortedKeys(result.Trends) {
			t := result.Trends[name]
			fmt.Fprintf(&b, "- **%s**: %s (%s, slope %.4f, R-squared %.3f)\n",
				name, t.Direction, t.Strength, t.Slope, t.RSquared)
		}
	}

	if len(result.Correlation.Strong) > 0 {
		b.WriteString("\n## Strong Correlations\n\n")
		for _, p := range result.Correlation.Strong {
			fmt.Fprintf(&b, "- %s vs %s: %.3f (%s)\n", p.VariableX, p.VariableY, p.Correlation, p.Strength)
		}
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	if result.RunID != "" {
		fmt.Fprintf(&b, "\n---\nRun %s\n", result.RunID)
	}
	return b.String()
}

// renderHTML converts the Markdown layout into a complete HTML page.
func (r *Renderer) renderHTML(result *analysis.Result) []byte {
	src := []byte(r.renderMarkdown(result))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(src)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Data Analysis Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}
