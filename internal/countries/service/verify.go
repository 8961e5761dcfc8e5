package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// verifyConcurrency bounds how many sequences are read in parallel.
const verifyConcurrency = 8

// Violation reports one country whose stored sequence breaks a structural rule.
type Violation struct {
	EntityID uuid.UUID
	Name     string
	Problems []string
}

// Verify reads every country's sequence and returns those that are not a
// contiguous, pinned-first, duplicate-free assignment.
func (s *Service) Verify(ctx context.Context) ([]Violation, error) {
	countries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out []Violation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)

	for _, c := range countries {
		g.Go(func() error {
			seq, err := s.repo.GetSequence(gctx, c.ID)
			if err != nil {
				return err
			}
			if problems := seq.Violations(); len(problems) > 0 {
				mu.Lock()
				out = append(out, Violation{EntityID: c.ID, Name: c.Name, Problems: problems})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > 0 {
		s.log.Warn("sequence violations found", "countries", len(out))
	}
	return out, nil
}
