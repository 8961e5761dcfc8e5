package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"agency_portal_backend/internal/countries/domain"
)

type memoryEntry struct {
	// mu serialises sequence mutations of one country.
	mu      sync.Mutex
	country domain.Country
	seq     domain.Sequence
}

// MemoryRepo keeps countries in process memory. Mutations of one country
// are serialised by its own lock; different countries never contend.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{entries: make(map[uuid.UUID]*memoryEntry), now: time.Now}
}

var _ Repository = (*MemoryRepo)(nil)

func (r *MemoryRepo) entry(id uuid.UUID) (*memoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, domain.CountryNotFound()
	}
	return e, nil
}

func (r *MemoryRepo) Create(_ context.Context, c domain.Country) (domain.Country, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[c.ID]; ok {
		return domain.Country{}, domain.InvalidCountry("representing country already exists")
	}
	r.entries[c.ID] = &memoryEntry{country: c, seq: domain.NewSequence()}
	return c, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Country, error) {
	e, err := r.entry(id)
	if err != nil {
		return domain.Country{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.country, nil
}

func (r *MemoryRepo) List(_ context.Context) ([]domain.Country, error) {
	r.mu.RLock()
	entries := make([]*memoryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]domain.Country, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.country)
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepo) ToggleActive(_ context.Context, id uuid.UUID) (domain.Country, error) {
	e, err := r.entry(id)
	if err != nil {
		return domain.Country{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.country.IsActive = !e.country.IsActive
	e.country.UpdatedAt = r.now()
	return e.country, nil
}

func (r *MemoryRepo) GetSequence(_ context.Context, id uuid.UUID) (domain.Sequence, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.Sorted(), nil
}

func (r *MemoryRepo) UpdateSequence(_ context.Context, id uuid.UUID, fn SequenceMutation) (domain.Sequence, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.seq.Sorted())
	if err != nil {
		return nil, err
	}
	if !diffSequences(e.seq, next).empty() {
		e.country.UpdatedAt = r.now()
	}
	e.seq = next.Sorted()
	return e.seq.Sorted(), nil
}
