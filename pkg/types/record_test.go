package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordCellsRoundTrip(t *testing.T) {
	rec := Record{Username: "alice", UserID: "u1", Wallet: "0xabc", Role: "OG"}
	assert.Equal(t, []string{"alice", "u1", "0xabc", "OG"}, rec.Cells())
	assert.Equal(t, rec, RecordFromCells(rec.Cells()))
}

func TestRecordFromCells(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  Record
	}{
		{
			name:  "short row padded",
			cells: []string{"alice", "u1"},
			want:  Record{Username: "alice", UserID: "u1"},
		},
		{
			name:  "empty row",
			cells: nil,
			want:  Record{},
		},
		{
			name:  "extra cells ignored",
			cells: []string{"alice", "u1", "0xabc", "OG", "stray note"},
			want:  Record{Username: "alice", UserID: "u1", Wallet: "0xabc", Role: "OG"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecordFromCells(tt.cells))
		})
	}
}

func TestRangeHelpers(t *testing.T) {
	// Data row 1 lives on sheet row 2, below the header.
	assert.Equal(t, "A2:D2", RowRange(1))
	assert.Equal(t, "A7:D7", RowRange(6))
	assert.Equal(t, "D2", RoleCellRange(1))
	assert.Equal(t, "D10", RoleCellRange(9))
}

func TestLocationString(t *testing.T) {
	loc := Location{Partition: "OG Wallets", Row: 3}
	assert.Equal(t, "OG Wallets!row3", loc.String())
}
