package ports

import (
	"context"

	"reportanalysis/domain/table"
)

// TableLoader loads a tabular source into an in-memory table.
// Implementations fail with errors.CodeNotFound when the source is missing,
// errors.CodeUnsupportedFormat for unrecognized formats, and
// errors.CodeValidation when the loaded table is empty or under the
// configured minimum row count.
type TableLoader interface {
	Load(ctx context.Context, source string) (*table.Table, error)
}
