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
	"agency_portal_backend/platform/sanitize"
)

// SetNote upserts the note of one assigned stage. Empty text clears it.
func (s *Service) SetNote(ctx context.Context, id uuid.UUID, stage string, req transport.SetNoteRequest) (resp transport.NoteResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation(opSetNote, started, err) }(time.Now())

	name, err := stagedomain.NormalizeName(stage)
	if err != nil {
		return transport.NoteResponse{}, err
	}
	text := sanitize.Note(req.Text)

	_, err = s.repo.UpdateSequence(ctx, id, func(current domain.Sequence) (domain.Sequence, error) {
		return current.SetNote(name, text, s.noteMaxLength)
	})
	if err != nil {
		return transport.NoteResponse{}, err
	}

	s.log.WithContext(ctx).Info("stage note saved", "entityId", id, "stage", name, "cleared", text == "")
	s.bus.Publish(ctx, events.StageNoteSaved{
		BaseEvent: events.NewBaseEvent(),
		EntityID:  id,
		StageName: name,
		Cleared:   text == "",
	})
	return transport.NoteResponse{EntityID: id, StageName: name, Text: text}, nil
}

// GetNotes maps every assigned stage to its note; unset notes are empty.
func (s *Service) GetNotes(ctx context.Context, id uuid.UUID) (transport.NotesResponse, error) {
	seq, err := s.repo.GetSequence(ctx, id)
	if err != nil {
		return transport.NotesResponse{}, err
	}
	return transport.NotesResponse{EntityID: id, Notes: seq.Notes()}, nil
}
