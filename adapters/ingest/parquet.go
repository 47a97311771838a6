package ingest

import (
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"reportanalysis/domain/table"
	"reportanalysis/internal/errors"
)

// loadParquet reads a flat parquet file. Values are rendered through the
// file's physical types and fed to the shared inference so the declared
// column types match the other formats.
func (l *Loader) loadParquet(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open parquet file %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat parquet file %s", path)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, errors.UnsupportedFormat("not a readable parquet file: %v", err)
	}

	fields := pf.Schema().Fields()
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = field.Name()
	}

	rows := [][]string{headers}
	buf := make([]parquet.Row, 64)
	for _, rg := range pf.RowGroups() {
		rr := rg.Rows()
		for {
			n, err := rr.ReadRows(buf)
			for _, row := range buf[:n] {
				rec := make([]string, len(headers))
				for _, val := range row {
					col := int(val.Column())
					if col < 0 || col >= len(rec) {
						continue
					}
					rec[col] = parquetString(val)
				}
				rows = append(rows, rec)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rr.Close()
				return nil, errors.Wrapf(err, "read parquet rows from %s", path)
			}
		}
		rr.Close()
	}
	return l.fromStringRows(rows)
}

func parquetString(val parquet.Value) string {
	if val.IsNull() {
		return ""
	}
	switch val.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(val.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(val.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(val.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(val.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(val.Double(), 'f', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(val.ByteArray())
	default:
		return val.String()
	}
}
