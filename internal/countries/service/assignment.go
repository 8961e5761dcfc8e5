package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agency_portal_backend/internal/countries/domain"
	"agency_portal_backend/internal/countries/transport"
	"agency_portal_backend/internal/events"
	stagedomain "agency_portal_backend/internal/stages/domain"
	"agency_portal_backend/platform/metrics"
)

// GetSequence returns the authoritative sequence of a country.
func (s *Service) GetSequence(ctx context.Context, id uuid.UUID) (transport.SequenceResponse, error) {
	seq, err := s.repo.GetSequence(ctx, id)
	if err != nil {
		return transport.SequenceResponse{}, err
	}
	return toSequenceResponse(id, seq), nil
}

// AssignStage appends a catalog stage at the end of the sequence.
func (s *Service) AssignStage(ctx context.Context, id uuid.UUID, req transport.AssignStageRequest) (resp transport.SequenceResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation(opAssignStage, started, err) }(time.Now())

	name, err := stagedomain.NormalizeName(req.Stage)
	if err != nil {
		return transport.SequenceResponse{}, err
	}
	exists, err := s.catalog.Exists(ctx, name)
	if err != nil {
		return transport.SequenceResponse{}, err
	}
	if !exists {
		return transport.SequenceResponse{}, stagedomain.StageNotFound(name)
	}

	var added domain.Link
	seq, err := s.repo.UpdateSequence(ctx, id, func(current domain.Sequence) (domain.Sequence, error) {
		next, link, err := current.Assign(name)
		added = link
		return next, err
	})
	if err != nil {
		return transport.SequenceResponse{}, err
	}

	s.log.WithContext(ctx).Info("stage assigned", "entityId", id, "stage", name, "order", added.Order)
	s.bus.Publish(ctx, events.StageAssigned{
		BaseEvent: events.NewBaseEvent(),
		EntityID:  id,
		StageName: name,
		Order:     added.Order,
	})
	return toSequenceResponse(id, seq), nil
}

// RemoveStage deletes a link and compacts the later positions in the same write.
func (s *Service) RemoveStage(ctx context.Context, id uuid.UUID, stage string) (resp transport.SequenceResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation(opRemoveStage, started, err) }(time.Now())

	name, err := stagedomain.NormalizeName(stage)
	if err != nil {
		return transport.SequenceResponse{}, err
	}

	var removed domain.Link
	seq, err := s.repo.UpdateSequence(ctx, id, func(current domain.Sequence) (domain.Sequence, error) {
		next, link, err := current.Remove(name)
		removed = link
		return next, err
	})
	if err != nil {
		return transport.SequenceResponse{}, err
	}

	s.log.WithContext(ctx).Info("stage removed", "entityId", id, "stage", name, "order", removed.Order)
	s.bus.Publish(ctx, events.StageRemoved{
		BaseEvent: events.NewBaseEvent(),
		EntityID:  id,
		StageName: name,
		Order:     removed.Order,
	})
	return toSequenceResponse(id, seq), nil
}

// SetStageActive sets the active flag of one link without touching order.
func (s *Service) SetStageActive(ctx context.Context, id uuid.UUID, stage string, req transport.SetStageActiveRequest) (resp transport.SequenceResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation(opSetActive, started, err) }(time.Now())

	name, err := stagedomain.NormalizeName(stage)
	if err != nil {
		return transport.SequenceResponse{}, err
	}
	active := req.IsActive != nil && *req.IsActive

	var changed bool
	seq, err := s.repo.UpdateSequence(ctx, id, func(current domain.Sequence) (domain.Sequence, error) {
		next, ok, err := current.SetActive(name, active)
		changed = ok
		return next, err
	})
	if err != nil {
		return transport.SequenceResponse{}, err
	}

	if changed {
		s.log.WithContext(ctx).Info("stage active changed", "entityId", id, "stage", name, "isActive", active)
		s.bus.Publish(ctx, events.StageActiveChanged{
			BaseEvent: events.NewBaseEvent(),
			EntityID:  id,
			StageName: name,
			IsActive:  active,
		})
	}
	return toSequenceResponse(id, seq), nil
}
