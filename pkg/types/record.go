package types

import (
	"errors"
	"fmt"
)

// Partition names one of the role-scoped sheet tabs that together act as a
// single logical table. The set of partitions is small and fixed; see
// Config.Mappings for the role-to-partition assignment.
type Partition string

// Header is the fixed column schema of every partition. A partition whose
// first row differs from Header is rewritten on startup.
var Header = []string{"Username", "UserId", "WalletAddress", "RoleLabel"}

// Column indices into a data row, matching Header.
const (
	ColUsername = 0
	ColUserID   = 1
	ColWallet   = 2
	ColRole     = 3
)

// Record is one member's stored submission. UserID is the unique key; a
// settled roster holds at most one row per UserID across all partitions.
type Record struct {
	Username string
	UserID   string
	Wallet   string
	Role     string
}

// Cells serializes the record as a sheet row in Header order.
func (r Record) Cells() []string {
	return []string{r.Username, r.UserID, r.Wallet, r.Role}
}

// RecordFromCells builds a Record from a sheet row. Short rows are padded;
// extra cells are ignored.
func RecordFromCells(cells []string) Record {
	var rec Record
	get := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	rec.Username = get(ColUsername)
	rec.UserID = get(ColUserID)
	rec.Wallet = get(ColWallet)
	rec.Role = get(ColRole)
	return rec
}

// Location is a transient pointer to one data row: the partition and the
// 1-based data-row index (the header row is not counted). A Location is
// invalidated by any deletion at a lower index in the same partition, so it
// must never be held across a remote mutation without re-resolution.
type Location struct {
	Partition Partition
	Row       int
}

// String renders the location for log fields and error messages.
func (l Location) String() string {
	return fmt.Sprintf("%s!row%d", l.Partition, l.Row)
}

// Row pairs a Location with the Record parsed from it. LocateAll returns one
// Row per data row across all partitions, captured as a single snapshot.
type Row struct {
	Location Location
	Record   Record
}

// UpsertAction reports what an upsert did.
type UpsertAction string

// Upsert outcomes. Skipped means the role resolved to no partition and
// nothing was written.
const (
	Inserted UpsertAction = "inserted"
	Updated  UpsertAction = "updated"
	Skipped  UpsertAction = "skipped"
)

// Roster operation errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidUserID    = errors.New("user id must not be empty")
	ErrInvalidRow       = errors.New("row index must be positive")
	ErrPartitionUnknown = errors.New("unknown partition")
)
