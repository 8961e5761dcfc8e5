package repository

import (
	"context"
	"sync"
	"time"

	"agency_portal_backend/internal/stages/domain"
)

// MemoryRepo is a process-local catalog. It starts with the pinned stage,
// matching the seed row of the SQL migration.
type MemoryRepo struct {
	mu     sync.RWMutex
	stages []domain.Stage
	index  map[string]struct{}
	now    func() time.Time
}

// NewMemory creates an in-memory catalog.
func NewMemory() *MemoryRepo {
	r := &MemoryRepo{index: make(map[string]struct{}), now: time.Now}
	r.stages = append(r.stages, domain.Stage{Name: domain.PinnedStage, CreatedAt: r.now()})
	r.index[domain.PinnedStage] = struct{}{}
	return r
}

var _ Repository = (*MemoryRepo)(nil)

func (r *MemoryRepo) Create(_ context.Context, name string) (domain.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[name]; ok {
		return domain.Stage{}, domain.DuplicateStage(name)
	}
	st := domain.Stage{Name: name, CreatedAt: r.now()}
	r.stages = append(r.stages, st)
	r.index[name] = struct{}{}
	return st, nil
}

func (r *MemoryRepo) List(_ context.Context) ([]domain.Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Stage, len(r.stages))
	copy(out, r.stages)
	return out, nil
}

func (r *MemoryRepo) Exists(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[name]
	return ok, nil
}
