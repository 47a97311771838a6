// Package ingest loads tabular sources into the shared table model. Format
// dispatch happens on the source's extension; SQL sources are recognized by
// their DSN scheme. Column types are inferred once here and never revisited
// by later stages.
package ingest

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"reportanalysis/domain/table"
	"reportanalysis/internal"
	"reportanalysis/internal/config"
	"reportanalysis/internal/errors"
)

// Loader reads a tabular source into a Table.
type Loader struct {
	cfg config.DataConfig
	log *internal.Logger
}

// NewLoader creates a loader with the given ingestion settings.
func NewLoader(cfg config.DataConfig, log *internal.Logger) *Loader {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Loader{cfg: cfg, log: log}
}

// Load reads, type-infers, and validates the source.
func (l *Loader) Load(ctx context.Context, source string) (*table.Table, error) {
	if isSQLSource(source) {
		tbl, err := l.loadSQL(ctx, source)
		if err != nil {
			return nil, err
		}
		return l.validate(tbl)
	}

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return nil, errors.NotFoundf("data source not found: %s", source)
	}

	var (
		tbl *table.Table
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(source)); ext {
	case ".csv":
		tbl, err = l.loadCSV(source)
	case ".xlsx", ".xls":
		tbl, err = l.loadExcel(source)
	case ".json":
		tbl, err = l.loadJSON(source)
	case ".parquet":
		tbl, err = l.loadParquet(source)
	default:
		return nil, errors.UnsupportedFormat("unsupported file format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	return l.validate(tbl)
}

func isSQLSource(source string) bool {
	return strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://")
}

func (l *Loader) loadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open CSV file %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if l.cfg.CSVComma != "" {
		reader.Comma = rune(l.cfg.CSVComma[0])
	}
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read CSV file %s", path)
	}
	l.log.Debug("[Loader] CSV file read (%d raw rows)", len(rows))
	return l.fromStringRows(rows)
}

func (l *Loader) loadExcel(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open spreadsheet %s", path)
	}
	defer f.Close()

	sheet := l.cfg.ExcelSheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	l.log.Debug("[Loader] sheet %q read (%d raw rows)", sheet, len(rows))
	return l.fromStringRows(rows)
}

// fromStringRows converts a header row plus data rows into a typed table.
// Short rows are padded with missing cells.
func (l *Loader) fromStringRows(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return table.New(nil)
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	data := rows[1:]

	columns := make([]table.Column, 0, len(headers))
	for j, name := range headers {
		values := make([]string, len(data))
		for i, row := range data {
			if j < len(row) {
				values[i] = row[j]
			}
		}
		vt := inferType(sampleValues(values))
		columns = append(columns, buildColumn(name, vt, values))
	}
	tbl, err := table.New(columns)
	if err != nil {
		return nil, errors.Wrap(err, "assemble table")
	}
	l.log.Info("[Loader] loaded %d rows and %d columns", tbl.RowCount(), tbl.ColumnCount())
	return tbl, nil
}

// validate enforces non-emptiness and the configured minimum row count.
func (l *Loader) validate(tbl *table.Table) (*table.Table, error) {
	if tbl.ColumnCount() == 0 || tbl.RowCount() == 0 {
		return nil, errors.Validation("loaded data is empty")
	}
	minRows := l.cfg.MinRows
	if minRows < 1 {
		minRows = 1
	}
	if tbl.RowCount() < minRows {
		return nil, errors.Validation("data has only %d rows, minimum required: %d", tbl.RowCount(), minRows)
	}
	return tbl, nil
}
