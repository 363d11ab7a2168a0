// Package service orchestrates the RAiD mint and sync flows: load a
// snapshot, gate it through the compatibility checker, map it to the wire
// format, talk to the registry, and persist the linkage record.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	projectModels "conflux/internal/project/models"
	"conflux/internal/project/store"
	"conflux/internal/raid"
	"conflux/internal/raid/client"
	"conflux/internal/raid/compatibility"
	"conflux/internal/raid/mapper"
	"conflux/internal/raid/metrics"
	raidModels "conflux/internal/raid/models"
	id "conflux/pkg/domain"
	dErrors "conflux/pkg/domain-errors"
	"conflux/pkg/platform/sentinel"
)

// CompatibilityError carries the incompatibility list when a mint or sync is
// blocked. The list is ordinary data; wrapping it in an error only signals
// that the requested operation did not happen.
type CompatibilityError struct {
	Incompatibilities []compatibility.Incompatibility
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("project is not RAiD compatible: %d incompatibilities", len(e.Incompatibilities))
}

// Service runs the mint/sync flows.
type Service struct {
	projects store.Store
	registry client.Registry
	checker  *compatibility.Checker
	mapper   *mapper.Mapper
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	clock    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source used for sync timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func New(
	projects store.Store,
	registry client.Registry,
	checker *compatibility.Checker,
	requestMapper *mapper.Mapper,
	opts ...Option,
) (*Service, error) {
	if projects == nil {
		return nil, fmt.Errorf("project store is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry client is required")
	}
	if checker == nil {
		return nil, fmt.Errorf("compatibility checker is required")
	}
	if requestMapper == nil {
		return nil, fmt.Errorf("request mapper is required")
	}

	svc := &Service{
		projects: projects,
		registry: registry,
		checker:  checker,
		mapper:   requestMapper,
		logger:   slog.Default(),
		tracer:   otel.Tracer("conflux/raid"),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Check runs the compatibility battery for a project and returns the ordered
// incompatibility list. An empty list means the project can be minted or
// synced.
func (s *Service) Check(ctx context.Context, projectID id.ProjectID) ([]compatibility.Incompatibility, error) {
	snapshot, err := s.projects.GetSnapshot(ctx, projectID)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}

	incompatibilities := s.checker.Check(snapshot)
	if s.metrics != nil {
		s.metrics.ObserveCheck(incompatibilities)
	}
	return incompatibilities, nil
}

// Mint registers the project with the RAiD registry and persists the
// resulting linkage record. Blocked with a CompatibilityError when the
// project violates any structural invariant.
func (s *Service) Mint(ctx context.Context, projectID id.ProjectID) (*projectModels.RAiDInfo, error) {
	ctx, span := s.tracer.Start(ctx, "raid.Mint")
	defer span.End()

	snapshot, err := s.projects.GetSnapshot(ctx, projectID)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	if snapshot.RAiD != nil {
		return nil, dErrors.ForEntity(dErrors.CodeInvalidState, projectID.String(), "project already has a RAiD")
	}

	if incompatibilities := s.checker.Check(snapshot); len(incompatibilities) > 0 {
		if s.metrics != nil {
			s.metrics.ObserveCheck(incompatibilities)
			s.metrics.RecordMint("incompatible")
		}
		return nil, &CompatibilityError{Incompatibilities: incompatibilities}
	}

	createReq, err := s.mapper.CreationRequest(snapshot)
	if err != nil {
		s.recordMint("mapping_fault")
		return nil, err
	}

	start := s.clock()
	dto, err := s.registry.Mint(ctx, createReq)
	s.observeRegistry(start)
	if err != nil {
		s.recordMint("registry_error")
		return nil, fmt.Errorf("mint raid: %w", err)
	}

	info := infoFromIdentifier(dto, s.clock())
	snapshot.RAiD = info
	info.Checksum, err = s.checksum(snapshot)
	if err != nil {
		s.recordMint("hash_fault")
		return nil, err
	}

	if err := s.projects.SaveRAiDInfo(ctx, projectID, info); err != nil {
		s.recordMint("store_error")
		return nil, fmt.Errorf("persist raid info: %w", err)
	}

	s.recordMint("ok")
	s.logger.InfoContext(ctx, "minted raid",
		"project_id", projectID.String(),
		"raid_id", info.RAiDId,
		"version", info.Version,
	)
	return info, nil
}

// Sync pushes the project's current state to the registry and refreshes the
// stored checksum and version. Blocked with a CompatibilityError when the
// project violates any structural invariant.
func (s *Service) Sync(ctx context.Context, projectID id.ProjectID) (*projectModels.RAiDInfo, error) {
	ctx, span := s.tracer.Start(ctx, "raid.Sync")
	defer span.End()

	snapshot, err := s.projects.GetSnapshot(ctx, projectID)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	if snapshot.RAiD == nil {
		return nil, dErrors.ForEntity(dErrors.CodeInvalidState, projectID.String(), "project has no RAiD to sync")
	}

	if incompatibilities := s.checker.Check(snapshot); len(incompatibilities) > 0 {
		if s.metrics != nil {
			s.metrics.ObserveCheck(incompatibilities)
			s.metrics.RecordSync("incompatible")
		}
		return nil, &CompatibilityError{Incompatibilities: incompatibilities}
	}

	updateReq, err := s.mapper.UpdateRequest(snapshot)
	if err != nil {
		s.recordSync("mapping_fault")
		return nil, err
	}
	prefix, suffix, err := raid.SplitIdentifier(snapshot.RAiD.RAiDId)
	if err != nil {
		s.recordSync("mapping_fault")
		return nil, err
	}

	start := s.clock()
	dto, err := s.registry.Update(ctx, prefix, suffix, updateReq)
	s.observeRegistry(start)
	if err != nil {
		s.recordSync("registry_error")
		return nil, fmt.Errorf("sync raid: %w", err)
	}

	checksum, err := mapper.Checksum(*updateReq)
	if err != nil {
		s.recordSync("hash_fault")
		return nil, err
	}

	info := infoFromIdentifier(dto, s.clock())
	info.Checksum = checksum

	if err := s.projects.SaveRAiDInfo(ctx, projectID, info); err != nil {
		s.recordSync("store_error")
		return nil, fmt.Errorf("persist raid info: %w", err)
	}

	s.recordSync("ok")
	s.logger.InfoContext(ctx, "synced raid",
		"project_id", projectID.String(),
		"raid_id", info.RAiDId,
		"version", info.Version,
	)
	return info, nil
}

// RefreshDirty recomputes the content hash and flags the linkage record dirty
// when it no longer matches the checksum last confirmed synced. The flag is
// persisted only on transitions.
func (s *Service) RefreshDirty(ctx context.Context, projectID id.ProjectID) (*projectModels.RAiDInfo, error) {
	snapshot, err := s.projects.GetSnapshot(ctx, projectID)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	if snapshot.RAiD == nil {
		return nil, dErrors.ForEntity(dErrors.CodeInvalidState, projectID.String(), "project has no RAiD")
	}

	checksum, err := s.checksum(snapshot)
	if err != nil {
		return nil, err
	}

	info := *snapshot.RAiD
	dirty := checksum != info.Checksum
	if dirty != info.Dirty {
		info.Dirty = dirty
		if err := s.projects.SaveRAiDInfo(ctx, projectID, &info); err != nil {
			return nil, fmt.Errorf("persist dirty flag: %w", err)
		}
	}
	return &info, nil
}

func (s *Service) checksum(snapshot *projectModels.ProjectSnapshot) (string, error) {
	updateReq, err := s.mapper.UpdateRequest(snapshot)
	if err != nil {
		return "", err
	}
	return mapper.Checksum(*updateReq)
}

func infoFromIdentifier(dto *raidModels.RaidDto, now time.Time) *projectModels.RAiDInfo {
	return &projectModels.RAiDInfo{
		RAiDId:               dto.Identifier.IDValue,
		RegistrationAgencyID: dto.Identifier.RegistrationAgency.ID,
		OwnerID:              dto.Identifier.Owner.ID,
		OwnerServicePoint:    dto.Identifier.Owner.ServicePoint,
		Version:              dto.Identifier.Version,
		LatestSync:           now,
	}
}

func (s *Service) translateStoreErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(dErrors.CodeNotFound, "project not found", err)
	}
	return err
}

func (s *Service) recordMint(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordMint(outcome)
	}
}

func (s *Service) recordSync(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSync(outcome)
	}
}

func (s *Service) observeRegistry(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRegistryLatency(s.clock().Sub(start))
	}
}
