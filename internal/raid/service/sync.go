package service

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentSyncs bounds parallelism against the external registry.
const maxConcurrentSyncs = 4

// SyncReport summarizes one SyncAll run.
type SyncReport struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SyncAll walks every minted project, refreshes its dirty flag, and pushes
// the ones that drifted to the registry. Individual failures are counted and
// logged but do not abort the batch; only context cancellation stops it
// early.
func (s *Service) SyncAll(ctx context.Context) (SyncReport, error) {
	ctx, span := s.tracer.Start(ctx, "raid.SyncAll")
	defer span.End()

	projectIDs, err := s.projects.ListMinted(ctx)
	if err != nil {
		return SyncReport{}, err
	}

	var synced, skipped, failed atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSyncs)
	for _, projectID := range projectIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info, err := s.RefreshDirty(ctx, projectID)
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "dirty refresh failed",
					"project_id", projectID.String(), "error", err)
				return nil
			}
			if !info.Dirty {
				skipped.Add(1)
				return nil
			}

			if _, err := s.Sync(ctx, projectID); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "sync failed",
					"project_id", projectID.String(), "error", err)
				return nil
			}
			synced.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SyncReport{}, err
	}

	report := SyncReport{
		Synced:  int(synced.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "sync batch finished",
		"synced", report.Synced, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}
