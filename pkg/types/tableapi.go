package types

import (
	"context"
	"fmt"
)

// TableAPI is the narrow contract every roster operation goes through. The
// remote spreadsheet offers no transactions; the implementation is expected
// to absorb rate limiting behind each call and to propagate every other
// failure unmodified.
//
// Row ranges use A1 notation built by the range helpers below. Row indices
// are 1-based data-row indices; implementations apply the header offset.
type TableAPI interface {
	// Read returns the cell values inside rowRange, one slice per row.
	// Rows and cells the remote trims as empty may be absent or short.
	Read(ctx context.Context, p Partition, rowRange string) ([][]string, error)

	// Write overwrites rowRange with the given rows.
	Write(ctx context.Context, p Partition, rowRange string, rows [][]string) error

	// Append adds rows after the last non-empty row of the partition.
	// Append is not idempotent: a retry after an unacknowledged remote
	// write can duplicate rows. Accepted risk.
	Append(ctx context.Context, p Partition, rows [][]string) error

	// DeleteRow removes exactly one data row. Later rows shift up, so any
	// Location at a higher index in the same partition becomes stale.
	DeleteRow(ctx context.Context, p Partition, rowIndex int) error

	// ListPartitions returns the names of all tabs present remotely.
	ListPartitions(ctx context.Context) ([]string, error)

	// CreatePartition adds a new empty tab.
	CreatePartition(ctx context.Context, name string) error
}

// HeaderRange addresses the header row of a partition.
const HeaderRange = "A1:D1"

// DataRange addresses every data row of a partition (open-ended).
const DataRange = "A2:D"

// RowRange addresses the full 4-cell row at the given 1-based data-row index.
func RowRange(row int) string {
	return fmt.Sprintf("A%d:D%d", row+1, row+1)
}

// RoleCellRange addresses only the role cell of the given data row.
func RoleCellRange(row int) string {
	return fmt.Sprintf("D%d", row+1)
}
