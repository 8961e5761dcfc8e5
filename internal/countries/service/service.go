// Package service implements the representing country operations: entity
// lifecycle, stage assignment, reordering and notes.
package service

import (
	"github.com/google/uuid"

	"agency_portal_backend/internal/countries/domain"
	"agency_portal_backend/internal/countries/ports"
	"agency_portal_backend/internal/countries/repository"
	"agency_portal_backend/internal/countries/transport"
	"agency_portal_backend/internal/events"
	stagedomain "agency_portal_backend/internal/stages/domain"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/logger"
)

// Operation names used for metrics.
const (
	opCreateCountry = "create_country"
	opToggleActive  = "toggle_active"
	opAssignStage   = "assign_stage"
	opRemoveStage   = "remove_stage"
	opSetActive     = "set_stage_active"
	opReorder       = "reorder_stage"
	opSetNote       = "set_note"
)

// Service provides business logic for representing countries.
type Service struct {
	repo          repository.Repository
	catalog       ports.StageCatalog
	bus           events.Bus
	log           *logger.Logger
	noteMaxLength int
}

// New creates a new representing country service.
func New(repo repository.Repository, catalog ports.StageCatalog, bus events.Bus, cfg config.NotesConfig, log *logger.Logger) *Service {
	return &Service{
		repo:          repo,
		catalog:       catalog,
		bus:           bus,
		log:           log,
		noteMaxLength: cfg.GetNoteMaxLength(),
	}
}

func toCountryResponse(c domain.Country) transport.CountryResponse {
	return transport.CountryResponse{
		ID:          c.ID,
		Name:        c.Name,
		CountryCode: c.CountryCode,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toLinkResponses(seq domain.Sequence) []transport.StageLinkResponse {
	sorted := seq.Sorted()
	out := make([]transport.StageLinkResponse, len(sorted))
	for i, l := range sorted {
		out[i] = transport.StageLinkResponse{
			StageName: l.StageName,
			Order:     l.Order,
			IsActive:  l.IsActive,
			IsPinned:  stagedomain.IsPinned(l.StageName),
			Notes:     l.Notes,
		}
	}
	return out
}

func toSequenceResponse(id uuid.UUID, seq domain.Sequence) transport.SequenceResponse {
	return transport.SequenceResponse{EntityID: id, Stages: toLinkResponses(seq)}
}
