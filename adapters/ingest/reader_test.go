package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"reportanalysis/domain/table"
	"reportanalysis/internal/config"
	"reportanalysis/internal/errors"
)

func newTestLoader(cfg config.DataConfig) *Loader {
	if cfg.CSVComma == "" {
		cfg.CSVComma = ","
	}
	if cfg.MinRows == 0 {
		cfg.MinRows = 1
	}
	return NewLoader(cfg, nil)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_CSVWithInference(t *testing.T) {
	path := writeFile(t, "data.csv",
		"date,region,sales,active\n"+
			"2024-01-01,north,100,yes\n"+
			"2024-01-02,south,110,no\n"+
			"2024-01-03,north,120,yes\n")
	tbl, err := newTestLoader(config.DataConfig{}).Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.RowCount() != 3 || tbl.ColumnCount() != 4 {
		t.Fatalf("shape = %dx%d, want 3x4", tbl.RowCount(), tbl.ColumnCount())
	}
	wantTypes := map[string]table.ValueType{
		"date":   table.TypeTemporal,
		"region": table.TypeCategorical,
		"sales":  table.TypeNumeric,
		"active": table.TypeBoolean,
	}
	for name, want := range wantTypes {
		col := tbl.Column(name)
		if col == nil {
			t.Fatalf("column %q missing", name)
		}
		if col.Type != want {
			t.Errorf("column %q type = %s, want %s", name, col.Type, want)
		}
	}
	if got := tbl.Column("sales").Floats(); len(got) != 3 || got[0] != 100 {
		t.Errorf("sales values = %v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newTestLoader(config.DataConfig{}).Load(context.Background(), "/no/such/file.csv")
	if !errors.HasCode(err, errors.CodeNotFound) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeNotFound)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "data.txt", "hello")
	_, err := newTestLoader(config.DataConfig{}).Load(context.Background(), path)
	if !errors.HasCode(err, errors.CodeUnsupportedFormat) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeUnsupportedFormat)
	}
}

func TestLoad_EmptyDataset(t *testing.T) {
	path := writeFile(t, "empty.csv", "a,b\n")
	_, err := newTestLoader(config.DataConfig{}).Load(context.Background(), path)
	if !errors.HasCode(err, errors.CodeValidation) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeValidation)
	}
}

func TestLoad_MinRowsBoundary(t *testing.T) {
	path := writeFile(t, "two.csv", "a\n1\n2\n")

	// Exactly the minimum passes.
	if _, err := newTestLoader(config.DataConfig{MinRows: 2}).Load(context.Background(), path); err != nil {
		t.Errorf("rows == min_rows should pass, got %v", err)
	}
	// One under the minimum fails.
	_, err := newTestLoader(config.DataConfig{MinRows: 3}).Load(context.Background(), path)
	if !errors.HasCode(err, errors.CodeValidation) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeValidation)
	}
}

func TestLoad_JSONRecords(t *testing.T) {
	path := writeFile(t, "data.json",
		`[{"name":"a","score":1},{"name":"b","score":2},{"score":3}]`)
	tbl, err := newTestLoader(config.DataConfig{}).Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.RowCount() != 3 {
		t.Fatalf("RowCount = %d, want 3", tbl.RowCount())
	}
	name := tbl.Column("name")
	if name == nil {
		t.Fatal("column name missing")
	}
	// Third record omits name; the cell must be missing, not empty text.
	if !name.Cells[2].Missing {
		t.Error("absent JSON field should produce a missing cell")
	}
	if score := tbl.Column("score"); score == nil || score.Type != table.TypeNumeric {
		t.Error("score should infer numeric")
	}
}

func TestLoad_JSONNotArrayOfObjects(t *testing.T) {
	path := writeFile(t, "bad.json", `{"rows": []}`)
	_, err := newTestLoader(config.DataConfig{}).Load(context.Background(), path)
	if !errors.HasCode(err, errors.CodeUnsupportedFormat) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeUnsupportedFormat)
	}
}

func TestLoad_SQLSourceRequiresQuery(t *testing.T) {
	_, err := newTestLoader(config.DataConfig{}).Load(context.Background(), "postgres://localhost/db")
	if !errors.HasCode(err, errors.CodeValidation) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeValidation)
	}
}

func TestLoad_CSVCustomDelimiter(t *testing.T) {
	path := writeFile(t, "semi.csv", "a;b\n1;2\n")
	tbl, err := newTestLoader(config.DataConfig{CSVComma: ";"}).Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.ColumnCount() != 2 {
		t.Errorf("ColumnCount = %d, want 2", tbl.ColumnCount())
	}
}

func TestLoad_ShortRowsPadded(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b\n1,2\n3\n")
	tbl, err := newTestLoader(config.DataConfig{}).Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	b := tbl.Column("b")
	if b == nil || len(b.Cells) != 2 {
		t.Fatal("column b should have 2 cells")
	}
	if !b.Cells[1].Missing {
		t.Error("padded cell should be missing")
	}
}
