package ingest

import (
	"context"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"reportanalysis/domain/table"
	"reportanalysis/internal/errors"
)

// loadSQL reads rows from a Postgres source. The source is the DSN; the
// query comes from the data configuration.
func (l *Loader) loadSQL(ctx context.Context, dsn string) (*table.Table, error) {
	if l.cfg.SQLQuery == "" {
		return nil, errors.Validation("sql_query must be configured for SQL sources")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.NotFoundf("data source not reachable: %v", err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, l.cfg.SQLQuery)
	if err != nil {
		return nil, errors.Wrapf(err, "execute query against %s", db.DriverName())
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read result columns")
	}

	out := [][]string{headers}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "scan result row")
		}
		rec := make([]string, len(headers))
		for i, val := range vals {
			if i < len(rec) {
				rec[i] = sqlString(val)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate result rows")
	}
	l.log.Debug("[Loader] SQL query returned %d rows", len(out)-1)
	return l.fromStringRows(out)
}

func sqlString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
