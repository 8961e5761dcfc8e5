package adapters

import (
	"context"
	"fmt"

	"agency_portal_backend/internal/countries/ports"
	stagerepo "agency_portal_backend/internal/stages/repository"
)

// StageCatalogReader adapts the stage catalog repository for the
// representing countries domain, satisfying ports.StageCatalog.
type StageCatalogReader struct {
	repo stagerepo.StageReader
}

// NewStageCatalogReader creates a new stage catalog adapter.
func NewStageCatalogReader(repo stagerepo.StageReader) *StageCatalogReader {
	return &StageCatalogReader{repo: repo}
}

// Exists reports whether name is in the catalog.
func (a *StageCatalogReader) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := a.repo.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("stage catalog adapter: exists: %w", err)
	}
	return ok, nil
}

var _ ports.StageCatalog = (*StageCatalogReader)(nil)
