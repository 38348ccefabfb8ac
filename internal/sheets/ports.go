package sheets

import "context"

// Ports for outbound adapters.
type (
	// RowExporter replaces the contents of a remote sheet with rows.
	// The first row is the header.
	RowExporter interface {
		ExportRows(ctx context.Context, rows [][]string) (written int, err error)
	}
)
