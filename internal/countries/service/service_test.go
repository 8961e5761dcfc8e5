package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"agency_portal_backend/internal/adapters"
	"agency_portal_backend/internal/countries/domain"
	"agency_portal_backend/internal/countries/repository"
	"agency_portal_backend/internal/countries/transport"
	"agency_portal_backend/internal/events"
	stagedomain "agency_portal_backend/internal/stages/domain"
	stagerepo "agency_portal_backend/internal/stages/repository"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/logger"
)

type noteLimit int

func (n noteLimit) GetNoteMaxLength() int { return int(n) }

type fixture struct {
	svc     *Service
	repo    *repository.MemoryRepo
	catalog *stagerepo.MemoryRepo
	bus     *events.InMemoryBus
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, "test")
	bus := events.NewInMemoryBus(log)
	catalog := stagerepo.NewMemory()
	for _, name := range []string{"Docs", "Visa", "Approved", "Interview"} {
		if _, err := catalog.Create(context.Background(), name); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	repo := repository.NewMemory()
	svc := New(repo, adapters.NewStageCatalogReader(catalog), bus, noteLimit(20), log)
	return fixture{svc: svc, repo: repo, catalog: catalog, bus: bus}
}

func (f fixture) country(t *testing.T, stages ...string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	created, err := f.svc.CreateCountry(ctx, transport.CreateCountryRequest{Name: "Australia", CountryCode: "au"})
	if err != nil {
		t.Fatalf("create country: %v", err)
	}
	for _, st := range stages {
		if _, err := f.svc.AssignStage(ctx, created.ID, transport.AssignStageRequest{Stage: st}); err != nil {
			t.Fatalf("assign %q: %v", st, err)
		}
	}
	return created.ID
}

func names(resp transport.SequenceResponse) string {
	parts := make([]string, len(resp.Stages))
	for i, l := range resp.Stages {
		parts[i] = fmt.Sprintf("%s(%d)", l.StageName, l.Order)
	}
	return strings.Join(parts, " ")
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestCreateCountrySeedsPinnedStage(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateCountry(context.Background(), transport.CreateCountryRequest{Name: " <b>Canada</b> ", CountryCode: "ca"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Canada" || created.CountryCode != "CA" || !created.IsActive {
		t.Fatalf("unexpected country %+v", created.CountryResponse)
	}
	if len(created.Stages) != 1 || created.Stages[0].StageName != stagedomain.PinnedStage || !created.Stages[0].IsPinned {
		t.Fatalf("expected pinned stage only, got %+v", created.Stages)
	}
}

func TestAssignStageAppends(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs", "Visa")

	resp, err := f.svc.AssignStage(context.Background(), id, transport.AssignStageRequest{Stage: "Interview"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(resp); got != "New(1) Docs(2) Visa(3) Interview(4)" {
		t.Fatalf("unexpected sequence %s", got)
	}
}

func TestAssignStageErrors(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs")
	ctx := context.Background()

	if _, err := f.svc.AssignStage(ctx, id, transport.AssignStageRequest{Stage: "Docs"}); !errors.Is(err, domain.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
	if _, err := f.svc.AssignStage(ctx, id, transport.AssignStageRequest{Stage: "Unknown"}); !errors.Is(err, stagedomain.ErrStageNotFound) {
		t.Fatalf("expected ErrStageNotFound, got %v", err)
	}
	if _, err := f.svc.AssignStage(ctx, uuid.New(), transport.AssignStageRequest{Stage: "Visa"}); !errors.Is(err, domain.ErrCountryNotFound) {
		t.Fatalf("expected ErrCountryNotFound, got %v", err)
	}
}

func TestReorderScenarios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.country(t, "Docs", "Visa", "Approved")
	resp, err := f.svc.ReorderStage(ctx, id, transport.ReorderStageRequest{Stage: "Docs", Order: intPtr(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(resp); got != "New(1) Visa(2) Approved(3) Docs(4)" {
		t.Fatalf("unexpected sequence %s", got)
	}

	id = f.country(t, "Docs", "Visa", "Approved")
	_, err = f.svc.ReorderStage(ctx, id, transport.ReorderStageRequest{Stage: "New", Order: intPtr(3)})
	if !errors.Is(err, domain.ErrPinnedPosition) {
		t.Fatalf("expected ErrPinnedPosition, got %v", err)
	}
	current, _ := f.svc.GetSequence(ctx, id)
	if got := names(current); got != "New(1) Docs(2) Visa(3) Approved(4)" {
		t.Fatalf("expected unchanged sequence, got %s", got)
	}
}

func TestReorderRejectsInvalidPosition(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs", "Visa")

	_, err := f.svc.ReorderStage(context.Background(), id, transport.ReorderStageRequest{Stage: "Docs", Order: intPtr(9)})
	if !errors.Is(err, domain.ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
	appErr, ok := apperr.As(err)
	if !ok || appErr.Code != domain.CodeInvalidPosition {
		t.Fatalf("expected invalid_position code, got %v", err)
	}
}

func TestReorderNoOpPublishesNothing(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs", "Visa")
	f.bus.Wait()

	var mu sync.Mutex
	reordered := 0
	f.bus.Subscribe(events.StageReordered{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		mu.Lock()
		reordered++
		mu.Unlock()
		return nil
	}))

	ctx := context.Background()
	if _, err := f.svc.ReorderStage(ctx, id, transport.ReorderStageRequest{Stage: "Visa", Order: intPtr(2)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := f.svc.ReorderStage(ctx, id, transport.ReorderStageRequest{Stage: "Visa", Order: intPtr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.bus.Wait()

	if got := names(resp); got != "New(1) Visa(2) Docs(3)" {
		t.Fatalf("unexpected sequence %s", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if reordered != 1 {
		t.Fatalf("expected one reorder event, got %d", reordered)
	}
}

func TestRemoveStageCompacts(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs", "Visa", "Approved")
	ctx := context.Background()

	resp, err := f.svc.RemoveStage(ctx, id, "Visa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(resp); got != "New(1) Docs(2) Approved(3)" {
		t.Fatalf("unexpected sequence %s", got)
	}

	if _, err := f.svc.RemoveStage(ctx, id, "New"); !errors.Is(err, domain.ErrPinnedStage) {
		t.Fatalf("expected ErrPinnedStage, got %v", err)
	}
}

func TestSetNoteOverwrites(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs")
	ctx := context.Background()

	for _, text := range []string{"Awaiting transcript", "Transcript received"} {
		if _, err := f.svc.SetNote(ctx, id, "Docs", transport.SetNoteRequest{Text: text}); err != nil {
			t.Fatalf("set note %q: %v", text, err)
		}
	}

	notes, err := f.svc.GetNotes(ctx, id)
	if err != nil {
		t.Fatalf("get notes: %v", err)
	}
	if notes.Notes["Docs"] != "Transcript received" {
		t.Fatalf("expected latest note, got %q", notes.Notes["Docs"])
	}
	if notes.Notes[stagedomain.PinnedStage] != "" {
		t.Fatalf("expected empty note for pinned stage, got %q", notes.Notes[stagedomain.PinnedStage])
	}
}

func TestSetNoteEnforcesLimit(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs")

	_, err := f.svc.SetNote(context.Background(), id, "Docs", transport.SetNoteRequest{Text: strings.Repeat("x", 21)})
	if !errors.Is(err, domain.ErrNoteTooLong) {
		t.Fatalf("expected ErrNoteTooLong, got %v", err)
	}
}

func TestSetNoteStoresTextAsTyped(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs")
	ctx := context.Background()

	const text = "IELTS <6.5, >6.0"
	resp, err := f.svc.SetNote(ctx, id, "Docs", transport.SetNoteRequest{Text: text})
	if err != nil {
		t.Fatalf("set note: %v", err)
	}
	if resp.Text != text {
		t.Fatalf("expected response text %q, got %q", text, resp.Text)
	}

	notes, err := f.svc.GetNotes(ctx, id)
	if err != nil {
		t.Fatalf("get notes: %v", err)
	}
	if notes.Notes["Docs"] != text {
		t.Fatalf("expected stored note %q, got %q", text, notes.Notes["Docs"])
	}
}

func TestSetNoteCountsMarkupAgainstLimit(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs")

	// 15 characters of text inside 22 stored ones.
	_, err := f.svc.SetNote(context.Background(), id, "Docs", transport.SetNoteRequest{Text: "<i>bring originals</i>"})
	if !errors.Is(err, domain.ErrNoteTooLong) {
		t.Fatalf("expected ErrNoteTooLong, got %v", err)
	}
}

func TestSetStageActiveKeepsOrder(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs", "Visa")

	resp, err := f.svc.SetStageActive(context.Background(), id, "Docs", transport.SetStageActiveRequest{IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(resp); got != "New(1) Docs(2) Visa(3)" {
		t.Fatalf("unexpected sequence %s", got)
	}
	if resp.Stages[1].IsActive {
		t.Fatal("expected Docs inactive")
	}
}

func TestToggleActive(t *testing.T) {
	f := newFixture(t)
	id := f.country(t)
	ctx := context.Background()

	first, err := f.svc.ToggleActive(ctx, id)
	if err != nil || first.IsActive {
		t.Fatalf("expected inactive after first toggle, got %+v err=%v", first, err)
	}
	second, err := f.svc.ToggleActive(ctx, id)
	if err != nil || !second.IsActive {
		t.Fatalf("expected active after second toggle, got %+v err=%v", second, err)
	}
}

func TestConcurrentMutationsKeepInvariants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := f.catalog.Create(ctx, fmt.Sprintf("Step %d", i)); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	id := f.country(t, "Docs", "Visa", "Approved", "Interview")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_, _ = f.svc.AssignStage(ctx, id, transport.AssignStageRequest{Stage: fmt.Sprintf("Step %d", i)})
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = f.svc.ReorderStage(ctx, id, transport.ReorderStageRequest{Stage: "Docs", Order: intPtr(2 + i%4)})
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = f.svc.SetNote(ctx, id, "Visa", transport.SetNoteRequest{Text: fmt.Sprintf("note %d", i)})
		}(i)
	}
	wg.Wait()

	violations, err := f.svc.Verify(ctx)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
	seq, _ := f.svc.GetSequence(ctx, id)
	if len(seq.Stages) != 15 {
		t.Fatalf("expected 15 stages, got %d", len(seq.Stages))
	}
}

func TestVerifyReportsBrokenSequence(t *testing.T) {
	f := newFixture(t)
	id := f.country(t, "Docs")
	ctx := context.Background()

	_, err := f.repo.UpdateSequence(ctx, id, func(s domain.Sequence) (domain.Sequence, error) {
		broken := append(domain.Sequence{}, s...)
		broken[1].Order = 5
		return broken, nil
	})
	if err != nil {
		t.Fatalf("corrupt sequence: %v", err)
	}

	violations, err := f.svc.Verify(ctx)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(violations) != 1 || violations[0].EntityID != id {
		t.Fatalf("expected one violation for %s, got %+v", id, violations)
	}
}
