package adapters

import (
	"context"
	"errors"
	"testing"

	stagedomain "agency_portal_backend/internal/stages/domain"
	stagerepo "agency_portal_backend/internal/stages/repository"
)

type failingReader struct{ err error }

func (f failingReader) List(context.Context) ([]stagedomain.Stage, error) { return nil, f.err }

func (f failingReader) Exists(context.Context, string) (bool, error) { return false, f.err }

func TestStageCatalogReaderExists(t *testing.T) {
	repo := stagerepo.NewMemory()
	ctx := context.Background()
	if _, err := repo.Create(ctx, "Visa Filed"); err != nil {
		t.Fatalf("create stage: %v", err)
	}

	reader := NewStageCatalogReader(repo)

	ok, err := reader.Exists(ctx, "Visa Filed")
	if err != nil || !ok {
		t.Fatalf("expected Visa Filed to exist, got ok=%v err=%v", ok, err)
	}
	ok, err = reader.Exists(ctx, "visa filed")
	if err != nil || ok {
		t.Fatalf("expected case-sensitive miss, got ok=%v err=%v", ok, err)
	}
}

func TestStageCatalogReaderPropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")

	ok, err := NewStageCatalogReader(failingReader{err: boom}).Exists(context.Background(), "Docs")
	if !errors.Is(err, boom) || ok {
		t.Fatalf("expected store error, got ok=%v err=%v", ok, err)
	}
}
