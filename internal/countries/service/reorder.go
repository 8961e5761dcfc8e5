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

// ReorderStage moves one stage to req.Order and returns the full sequence.
// Moving a stage to the position it already holds succeeds without a write.
func (s *Service) ReorderStage(ctx context.Context, id uuid.UUID, req transport.ReorderStageRequest) (resp transport.SequenceResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation(opReorder, started, err) }(time.Now())

	name, err := stagedomain.NormalizeName(req.Stage)
	if err != nil {
		return transport.SequenceResponse{}, err
	}
	target := 0
	if req.Order != nil {
		target = *req.Order
	}

	var from int
	seq, err := s.repo.UpdateSequence(ctx, id, func(current domain.Sequence) (domain.Sequence, error) {
		next, prev, err := current.Reorder(name, target)
		from = prev
		return next, err
	})
	if err != nil {
		return transport.SequenceResponse{}, err
	}

	if from != target {
		s.log.WithContext(ctx).Info("stage reordered", "entityId", id, "stage", name, "from", from, "to", target)
		s.bus.Publish(ctx, events.StageReordered{
			BaseEvent: events.NewBaseEvent(),
			EntityID:  id,
			StageName: name,
			FromOrder: from,
			ToOrder:   target,
		})
	}
	return toSequenceResponse(id, seq), nil
}
