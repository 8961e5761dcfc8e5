package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateCountryRequest contains data for creating a representing country.
type CreateCountryRequest struct {
	Name        string `json:"name" validate:"required,notblank,printable,max=120"`
	CountryCode string `json:"countryCode" validate:"omitempty,len=2,alpha"`
}

// AssignStageRequest appends a catalog stage to a country's sequence.
type AssignStageRequest struct {
	Stage string `json:"stage" validate:"required,notblank,printable,max=100"`
}

// ReorderStageRequest moves one stage to a new 1-based position.
type ReorderStageRequest struct {
	Stage string `json:"stage" validate:"required,notblank,max=100"`
	Order *int   `json:"order" validate:"required"`
}

// SetStageActiveRequest sets the active flag of one assigned stage.
type SetStageActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// SetNoteRequest sets or clears (empty text) a stage note.
type SetNoteRequest struct {
	Text string `json:"text" validate:"printable"`
}

// CountryResponse represents a representing country in API responses.
type CountryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CountryCode string    `json:"countryCode,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CountryDetailResponse is a country with its current sequence.
type CountryDetailResponse struct {
	CountryResponse
	Stages []StageLinkResponse `json:"stages"`
}

// CountryListResponse wraps a list of countries.
type CountryListResponse struct {
	Items []CountryResponse `json:"items"`
	Total int               `json:"total"`
}

// StageLinkResponse is one position in a country's sequence.
type StageLinkResponse struct {
	StageName string  `json:"stageName"`
	Order     int     `json:"order"`
	IsActive  bool    `json:"isActive"`
	IsPinned  bool    `json:"isPinned"`
	Notes     *string `json:"notes"`
}

// SequenceResponse is the authoritative sequence after a read or mutation.
type SequenceResponse struct {
	EntityID uuid.UUID           `json:"entityId"`
	Stages   []StageLinkResponse `json:"stages"`
}

// NotesResponse maps each assigned stage to its note text.
type NotesResponse struct {
	EntityID uuid.UUID         `json:"entityId"`
	Notes    map[string]string `json:"notes"`
}

// NoteResponse is the stored note after setNote.
type NoteResponse struct {
	EntityID  uuid.UUID `json:"entityId"`
	StageName string    `json:"stageName"`
	Text      string    `json:"text"`
}
