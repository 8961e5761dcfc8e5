package repository

import (
	"context"

	"github.com/google/uuid"

	"agency_portal_backend/internal/countries/domain"
)

// SequenceMutation computes a country's next sequence from the current one.
// It runs while the country is locked; returning an error aborts the write
// and leaves the stored sequence untouched.
type SequenceMutation func(current domain.Sequence) (domain.Sequence, error)

// CountryReader provides read-only access to representing countries.
type CountryReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Country, error)
	List(ctx context.Context) ([]domain.Country, error)
}

// CountryWriter provides write operations on the entity itself.
type CountryWriter interface {
	// Create stores c together with its pinned first link.
	Create(ctx context.Context, c domain.Country) (domain.Country, error)
	// ToggleActive flips the activation flag and returns the updated row.
	ToggleActive(ctx context.Context, id uuid.UUID) (domain.Country, error)
}

// SequenceStore reads and atomically rewrites a country's stage sequence.
type SequenceStore interface {
	// GetSequence returns the links sorted by position.
	GetSequence(ctx context.Context, id uuid.UUID) (domain.Sequence, error)
	// UpdateSequence serialises fn against every other mutation of the same
	// country and persists its result as a whole.
	UpdateSequence(ctx context.Context, id uuid.UUID, fn SequenceMutation) (domain.Sequence, error)
}

// Repository combines all representing country operations.
type Repository interface {
	CountryReader
	CountryWriter
	SequenceStore
}
