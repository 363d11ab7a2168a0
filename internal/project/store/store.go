// Package store loads fully materialized project snapshots and persists the
// registry linkage record. The mapping/checking engine never touches the
// database itself; it only sees snapshots produced here.
package store

import (
	"context"

	"conflux/internal/project/models"
	id "conflux/pkg/domain"
)

// Store is the persistence boundary for project snapshots.
type Store interface {
	// GetSnapshot loads the full project graph. Returns sentinel.ErrNotFound
	// (wrapped) when the project does not exist.
	GetSnapshot(ctx context.Context, projectID id.ProjectID) (*models.ProjectSnapshot, error)
	// ListMinted returns the ids of all projects that have a RAiD linked.
	ListMinted(ctx context.Context) ([]id.ProjectID, error)
	// SaveRAiDInfo persists the registry linkage record after a mint or sync.
	SaveRAiDInfo(ctx context.Context, projectID id.ProjectID, info *models.RAiDInfo) error
}
