package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// RoleSource yields the current highest-priority qualifying role label for a
// member, or the empty string when the member holds none. Implemented by the
// Discord adapter; faked in tests.
type RoleSource interface {
	RoleLabel(ctx context.Context, userID string) (string, error)
}

// Notifier receives the report once a refresh run has finished. How and
// where the result is announced is the caller's business.
type Notifier func(types.RefreshReport)

// RefreshRoles re-derives the role of every stored member and reconciles the
// roster. Role lookups run on a bounded pool of workers; all resulting
// writes are applied sequentially by Reconcile afterward, which keeps row
// indices sane. A failed lookup aborts the run before any write. The run is
// not cancellable beyond ctx reaching the individual remote calls.
func (s *Store) RefreshRoles(ctx context.Context, src RoleSource, workers int, notify Notifier) (types.RefreshReport, error) {
	var report types.RefreshReport
	if workers < 1 {
		workers = types.DefaultWorkers
	}

	snapshot, err := s.LocateAll(ctx)
	if err != nil {
		return report, fmt.Errorf("snapshot roster: %w", err)
	}
	report.Scanned = len(snapshot)

	jobID := uuid.NewString()
	s.logger.Info("role refresh started",
		zap.String("job_id", jobID),
		zap.Int("rows", len(snapshot)),
		zap.Int("workers", workers))

	labels := make([]string, len(snapshot))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, row := range snapshot {
		eg.Go(func() error {
			label, err := src.RoleLabel(egCtx, row.Record.UserID)
			if err != nil {
				return fmt.Errorf("roles of %s: %w", row.Record.UserID, err)
			}
			labels[i] = label
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return report, err
	}

	var transitions []types.Transition
	for i, row := range snapshot {
		if strings.EqualFold(labels[i], row.Record.Role) {
			report.Unchanged++
			continue
		}
		transitions = append(transitions, types.Transition{
			Location: row.Location,
			Record:   row.Record,
			NewRole:  labels[i],
		})
	}

	report.Result, err = s.Reconcile(ctx, transitions)
	if err != nil {
		return report, err
	}

	s.logger.Info("role refresh finished",
		zap.String("job_id", jobID),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("updated", report.Result.Updated),
		zap.Int("moved", report.Result.Moved))
	if notify != nil {
		notify(report)
	}
	return report, nil
}
