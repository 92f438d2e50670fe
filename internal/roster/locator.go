package roster

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// Locate finds the current row for userID, scanning partitions in priority
// order and rows in sheet order. Returns ErrNotFound when the user has no
// row. When a user somehow has rows in more than one partition the first
// match wins; duplicates are not surfaced here, only logged by LocateAll.
func (s *Store) Locate(ctx context.Context, userID string) (*types.Row, error) {
	if userID == "" {
		return nil, types.ErrInvalidUserID
	}
	for _, p := range s.resolver.Partitions() {
		rows, err := s.api.Read(ctx, p, types.DataRange)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
		for i, cells := range rows {
			rec := types.RecordFromCells(cells)
			if rec.UserID == userID {
				return &types.Row{
					Location: types.Location{Partition: p, Row: i + 1},
					Record:   rec,
				}, nil
			}
		}
	}
	return nil, types.ErrNotFound
}

// LocateAll enumerates every data row across all partitions, in priority
// order, as one snapshot for bulk operations. Empty rows (no user id) are
// skipped. A user id seen in more than one partition is logged at WARN; the
// duplicate rows are still returned.
func (s *Store) LocateAll(ctx context.Context) ([]types.Row, error) {
	var all []types.Row
	seen := make(map[string]types.Partition)

	for _, p := range s.resolver.Partitions() {
		rows, err := s.api.Read(ctx, p, types.DataRange)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
		for i, cells := range rows {
			rec := types.RecordFromCells(cells)
			if rec.UserID == "" {
				continue
			}
			if prev, dup := seen[rec.UserID]; dup {
				s.logger.Warn("user present in multiple partitions",
					zap.String("user_id", rec.UserID),
					zap.String("first", string(prev)),
					zap.String("also", string(p)))
			} else {
				seen[rec.UserID] = p
			}
			all = append(all, types.Row{
				Location: types.Location{Partition: p, Row: i + 1},
				Record:   rec,
			})
		}
	}
	return all, nil
}
