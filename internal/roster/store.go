package roster

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// Store ties the resolver to the remote table client. All roster reads and
// writes go through a Store; it holds no row data between calls, so every
// logical read goes over the wire.
type Store struct {
	api      types.TableAPI
	resolver *Resolver
	logger   *zap.Logger
}

// NewStore creates a Store over the given table client and resolver.
func NewStore(api types.TableAPI, resolver *Resolver, logger *zap.Logger) *Store {
	return &Store{api: api, resolver: resolver, logger: logger}
}

// EnsureSchema creates any missing partition tab and rewrites any header row
// that does not match the fixed column schema. Called once at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	existing, err := s.api.ListPartitions(ctx)
	if err != nil {
		return fmt.Errorf("list partitions: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, p := range s.resolver.Partitions() {
		if !present[string(p)] {
			if err := s.api.CreatePartition(ctx, string(p)); err != nil {
				return fmt.Errorf("create partition %s: %w", p, err)
			}
		}
		rows, err := s.api.Read(ctx, p, types.HeaderRange)
		if err != nil {
			return fmt.Errorf("read header of %s: %w", p, err)
		}
		if len(rows) == 1 && equalCells(rows[0], types.Header) {
			continue
		}
		if err := s.api.Write(ctx, p, types.HeaderRange, [][]string{types.Header}); err != nil {
			return fmt.Errorf("write header of %s: %w", p, err)
		}
		s.logger.Info("rewrote partition header", zap.String("partition", string(p)))
	}
	return nil
}

// Upsert persists rec in the partition dictated by its role. Returns
// Skipped without writing when the role resolves to no partition; an
// existing row for the same user is left untouched in that case. A user
// found in a different partition is moved: the old row is deleted, then the
// record is appended to the target. The move is not atomic; if the append
// fails after the delete, the record is lost and the error propagates.
func (s *Store) Upsert(ctx context.Context, rec types.Record) (types.UpsertAction, error) {
	if rec.UserID == "" {
		return "", types.ErrInvalidUserID
	}
	target, ok := s.resolver.Resolve(rec.Role)
	if !ok {
		return types.Skipped, nil
	}

	current, err := s.Locate(ctx, rec.UserID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return "", err
	}

	if current != nil && current.Location.Partition != target {
		if err := s.DeleteAt(ctx, current.Location); err != nil {
			return "", fmt.Errorf("delete old row at %s: %w", current.Location, err)
		}
		current = nil
	}

	if current == nil {
		if err := s.api.Append(ctx, target, [][]string{rec.Cells()}); err != nil {
			return "", fmt.Errorf("append to %s: %w", target, err)
		}
		return types.Inserted, nil
	}

	rng := types.RowRange(current.Location.Row)
	if err := s.api.Write(ctx, target, rng, [][]string{rec.Cells()}); err != nil {
		return "", fmt.Errorf("update row at %s: %w", current.Location, err)
	}
	return types.Updated, nil
}

// UpdateRole re-files an already known user under a new role, keeping the
// stored username and wallet. Returns false without writing when the user
// has no record.
func (s *Store) UpdateRole(ctx context.Context, userID, roleLabel string) (bool, error) {
	current, err := s.Locate(ctx, userID)
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	rec := current.Record
	rec.Role = roleLabel
	if _, err := s.Upsert(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAt removes exactly one row. The location must be freshly resolved:
// row indices shift after any deletion at a lower index in the same
// partition, and a stale index silently deletes the wrong row.
func (s *Store) DeleteAt(ctx context.Context, loc types.Location) error {
	if loc.Row < 1 {
		return types.ErrInvalidRow
	}
	return s.api.DeleteRow(ctx, loc.Partition, loc.Row)
}

func equalCells(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
