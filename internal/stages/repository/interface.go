package repository

import (
	"context"

	"agency_portal_backend/internal/stages/domain"
)

// StageReader provides read operations for the stage catalog.
type StageReader interface {
	List(ctx context.Context) ([]domain.Stage, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// StageWriter provides write operations for the stage catalog.
type StageWriter interface {
	// Create inserts name and fails with domain.ErrDuplicateStage when it
	// already exists.
	Create(ctx context.Context, name string) (domain.Stage, error)
}

// Repository combines all stage catalog operations.
type Repository interface {
	StageReader
	StageWriter
}
