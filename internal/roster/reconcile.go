package roster

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// Reconcile applies many role-driven transitions sequentially. Per
// transition: an unresolvable new role deletes the row (counted as updated),
// a different target partition deletes then re-upserts (counted as moved),
// and the same partition rewrites only the role cell (counted as updated).
//
// Every Location in the input must come from one LocateAll snapshot taken
// immediately before the call. Transitions are applied per partition in
// descending row order, so the run's own deletions never invalidate a
// not-yet-processed index. Out-of-band deletions from the same partitions
// still make indices stale; that is not detected.
func (s *Store) Reconcile(ctx context.Context, transitions []types.Transition) (types.ReconcileResult, error) {
	var res types.ReconcileResult

	ordered := make([]types.Transition, len(transitions))
	copy(ordered, transitions)
	sortDescending(ordered, func(t types.Transition) types.Location { return t.Location })

	for _, t := range ordered {
		target, ok := s.resolver.Resolve(t.NewRole)
		switch {
		case !ok:
			// Role no longer qualifies: the row goes away.
			if err := s.DeleteAt(ctx, t.Location); err != nil {
				return res, fmt.Errorf("remove %s: %w", t.Location, err)
			}
			res.Updated++

		case target != t.Location.Partition:
			if err := s.DeleteAt(ctx, t.Location); err != nil {
				return res, fmt.Errorf("move %s: %w", t.Location, err)
			}
			rec := t.Record
			rec.Role = t.NewRole
			if _, err := s.Upsert(ctx, rec); err != nil {
				return res, fmt.Errorf("move %s to %s: %w", t.Location, target, err)
			}
			res.Moved++

		default:
			rng := types.RoleCellRange(t.Location.Row)
			if err := s.api.Write(ctx, t.Location.Partition, rng, [][]string{{t.NewRole}}); err != nil {
				return res, fmt.Errorf("update role at %s: %w", t.Location, err)
			}
			res.Updated++
		}
	}

	s.logger.Info("reconcile finished",
		zap.Int("updated", res.Updated),
		zap.Int("moved", res.Moved))
	return res, nil
}

// DeleteMany removes the given rows, grouped by partition and ordered
// descending by row index within each partition, so earlier deletions never
// shift the index of a later one.
func (s *Store) DeleteMany(ctx context.Context, locs []types.Location) error {
	ordered := make([]types.Location, len(locs))
	copy(ordered, locs)
	sortDescending(ordered, func(l types.Location) types.Location { return l })

	for _, loc := range ordered {
		if err := s.DeleteAt(ctx, loc); err != nil {
			return fmt.Errorf("delete %s: %w", loc, err)
		}
	}
	return nil
}

// sortDescending orders items by partition (grouped, stable across
// partitions by name) and by row index descending within a partition.
func sortDescending[T any](items []T, loc func(T) types.Location) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := loc(items[i]), loc(items[j])
		if a.Partition != b.Partition {
			return a.Partition < b.Partition
		}
		return a.Row > b.Row
	})
}
