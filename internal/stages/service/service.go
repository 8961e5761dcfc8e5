package service

import (
	"context"
	"errors"
	"time"

	"agency_portal_backend/internal/events"
	"agency_portal_backend/internal/stages/domain"
	"agency_portal_backend/internal/stages/repository"
	"agency_portal_backend/internal/stages/transport"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/metrics"
)

// Service provides business logic for the stage catalog.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new stage catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateStage adds a name to the catalog.
func (s *Service) CreateStage(ctx context.Context, req transport.CreateStageRequest) (resp transport.StageResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation("create_stage", started, err) }(time.Now())

	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		return transport.StageResponse{}, err
	}

	st, err := s.repo.Create(ctx, name)
	if err != nil {
		return transport.StageResponse{}, err
	}

	s.log.WithContext(ctx).Info("stage created", "name", st.Name)
	s.bus.Publish(ctx, events.StageCreated{BaseEvent: events.NewBaseEvent(), Name: st.Name})
	return toResponse(st), nil
}

// ListStages returns the whole catalog in insertion order.
func (s *Service) ListStages(ctx context.Context) (transport.StageListResponse, error) {
	stages, err := s.repo.List(ctx)
	if err != nil {
		return transport.StageListResponse{}, err
	}

	items := make([]transport.StageResponse, len(stages))
	for i, st := range stages {
		items[i] = toResponse(st)
	}
	return transport.StageListResponse{Items: items, Total: len(items)}, nil
}

// SeedDefaults creates every missing name and returns how many were added.
// Existing names are skipped, so seeding is idempotent.
func (s *Service) SeedDefaults(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, raw := range names {
		name, err := domain.NormalizeName(raw)
		if err != nil {
			return created, err
		}
		if _, err := s.repo.Create(ctx, name); err != nil {
			if errors.Is(err, domain.ErrDuplicateStage) {
				continue
			}
			return created, err
		}
		created++
	}

	if created > 0 {
		s.log.Info("stage catalog seeded", "created", created)
	}
	return created, nil
}

func toResponse(st domain.Stage) transport.StageResponse {
	return transport.StageResponse{
		Name:      st.Name,
		IsPinned:  domain.IsPinned(st.Name),
		CreatedAt: st.CreatedAt,
	}
}
