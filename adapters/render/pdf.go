package render

import (
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"reportanalysis/domain/analysis"
	"reportanalysis/domain/synthesis"
)

const tableWidth = 170.0

// writePDF lays out the full report: title, executive summary, data
// overview, descriptive statistics, trends, correlations, optional bar
// charts, and recommendations.
func (r *Renderer) writePDF(result *analysis.Result, path string) error {
	pdf := gofpdf.New("P", "mm", pageSizeName(r.cfg.PageSize), "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Data Analysis Report")
	pdf.Ln(15)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))
	pdf.Ln(12)

	r.pdfSection(pdf, "Executive Summary")
	pdf.SetFont("Arial", "", 10)
	for _, finding := range result.KeyFindings {
		pdf.MultiCell(tableWidth, 6, "- "+finding, "", "L", false)
	}
	pdf.Ln(4)

	r.pdfOverview(pdf, result)
	r.pdfDescriptive(pdf, result)
	r.pdfTrends(pdf, result)
	r.pdfCorrelations(pdf, result)
	if r.cfg.IncludeCharts {
		r.pdfCharts(pdf, result)
	}
	r.pdfRecommendations(pdf, result)

	pdf.SetFont("Arial", "I", 8)
	pdf.Ln(10)
	pdf.Cell(0, 6, fmt.Sprintf("Run %s", result.RunID))

	return pdf.OutputFileAndClose(path)
}

func (r *Renderer) pdfSection(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
}

func (r *Renderer) pdfOverview(pdf *gofpdf.Fpdf, result *analysis.Result) {
	syn := result.Synthesis
	r.pdfSection(pdf, "Data Overview")

	rows := [][2]string{
		{"Rows", fmt.Sprintf("%d", syn.Metadata.Shape[0])},
		{"Columns", fmt.Sprintf("%d", syn.Metadata.Shape[1])},
		{"Completeness", fmt.Sprintf("%.1f%%", syn.Quality.Completeness)},
		{"Missing values", fmt.Sprintf("%d", syn.Quality.MissingValues)},
		{"Duplicate rows", fmt.Sprintf("%d", syn.Quality.DuplicateRows)},
		{"Approx. memory", fmt.Sprintf("%d bytes", syn.Metadata.MemoryBytes)},
	}
	if syn.DateRange != nil {
		rows = append(rows, [2]string{
			"Date range",
			fmt.Sprintf("%s to %s (%s)",
				syn.DateRange.Start.Format("2006-01-02"),
				syn.DateRange.End.Format("2006-01-02"),
				syn.DateRange.Column),
		})
	}

	pdf.SetFont("Arial", "", 9)
	for i, row := range rows {
		fillRow(pdf, i)
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(tableWidth-60, 7, row[1], "1", 0, "L", true, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (r *Renderer) pdfDescriptive(pdf *gofpdf.Fpdf, result *analysis.Result) {
	if len(result.Descriptive) == 0 {
		return
	}
	r.pdfSection(pdf, "Descriptive Statistics")

	headers := []string{"Variable", "Count", "Mean", "Median", "Std", "Min", "Max"}
	widths := []float64{44, 18, 24, 24, 24, 18, 18}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(225, 225, 225)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for row, name := range sortedKeys(result.Descriptive) {
		d := result.Descriptive[name]
		num := result.Synthesis.Summary.Numeric[name]
		fillRow(pdf, row)
		cells := []string{
			truncate(name, 28),
			fmt.Sprintf("%d", d.Count),
			fmt.Sprintf("%.2f", d.Mean),
			fmt.Sprintf("%.2f", d.Median),
			fmt.Sprintf("%.2f", d.StdDev),
			fmt.Sprintf("%.2f", num.Min),
			fmt.Sprintf("%.2f", num.Max),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (r *Renderer) pdfTrends(pdf *gofpdf.Fpdf, result *analysis.Result) {
	if len(result.Trends) == 0 {
		return
	}
	r.pdfSection(pdf, "Temporal Trends")
	pdf.SetFont("Arial", "", 10)
	for _, name := range sortedKeys(result.Trends) {
		t := result.Trends[name]
		pdf.MultiCell(tableWidth, 6,
			fmt.Sprintf("- %s: %s (%s, slope %.4f, R-squared %.3f)",
				name, t.Direction, t.Strength, t.Slope, t.RSquared),
			"", "L", false)
	}
	pdf.Ln(4)
}

func (r *Renderer) pdfCorrelations(pdf *gofpdf.Fpdf, result *analysis.Result) {
	if len(result.Correlation.Strong) == 0 {
		return
	}
	r.pdfSection(pdf, "Strong Correlations")
	pdf.SetFont("Arial", "", 10)
	for _, p := range result.Correlation.Strong {
		pdf.MultiCell(tableWidth, 6,
			fmt.Sprintf("- %s vs %s: %.3f (%s)", p.VariableX, p.VariableY, p.Correlation, p.Strength),
			"", "L", false)
	}
	pdf.Ln(4)
}

// pdfCharts draws bar charts of the top values for the leading categorical
// columns, capped by the configured chart budget.
func (r *Renderer) pdfCharts(pdf *gofpdf.Fpdf, result *analysis.Result) {
	names := sortedKeys(result.Synthesis.Summary.Categorical)
	drawn := 0
	for _, name := range names {
		if drawn >= r.cfg.MaxCharts {
			break
		}
		cat := result.Synthesis.Summary.Categorical[name]
		if len(cat.TopValues) == 0 {
			continue
		}
		if drawn == 0 {
			r.pdfSection(pdf, "Distributions")
		}
		r.pdfBarChart(pdf, name, cat.TopValues)
		drawn++
	}
	if drawn > 0 {
		pdf.Ln(4)
	}
}

// pdfBarChart renders a simple horizontal bar chart with rectangle
// primitives. Bar lengths are scaled to the largest count.
func (r *Renderer) pdfBarChart(pdf *gofpdf.Fpdf, title string, values []synthesis.ValueCount) {
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)

	maxCount := 0
	for _, v := range values {
		if v.Count > maxCount {
			maxCount = v.Count
		}
	}
	if maxCount == 0 {
		return
	}

	const labelWidth, barArea = 50.0, 100.0
	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(100, 149, 237)
	for _, v := range values {
		x, y := pdf.GetX(), pdf.GetY()
		pdf.CellFormat(labelWidth, 6, truncate(v.Value, 30), "", 0, "L", false, 0, "")
		barLen := barArea * float64(v.Count) / float64(maxCount)
		pdf.Rect(x+labelWidth, y+1, barLen, 4, "F")
		pdf.SetXY(x+labelWidth+barLen+2, y)
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", v.Count), "", 0, "L", false, 0, "")
		pdf.Ln(6)
		pdf.SetX(x)
	}
	pdf.Ln(4)
}

func fillRow(pdf *gofpdf.Fpdf, row int) {
	if row%2 == 1 {
		pdf.SetFillColor(240, 240, 240)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
}

func (r *Renderer) pdfRecommendations(pdf *gofpdf.Fpdf, result *analysis.Result) {
	if len(result.Recommendations) == 0 {
		return
	}
	r.pdfSection(pdf, "Recommendations")
	pdf.SetFont("Arial", "", 10)
	for _, rec := range result.Recommendations {
		pdf.MultiCell(tableWidth, 6, "- "+rec, "", "L", false)
	}
}

func pageSizeName(size string) string {
	switch size {
	case "a4", "A4":
		return "A4"
	default:
		return "Letter"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
