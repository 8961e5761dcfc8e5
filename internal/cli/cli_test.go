package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	countryservice "agency_portal_backend/internal/countries/service"
)

type stubVerifier struct {
	violations []countryservice.Violation
	err        error
}

func (s stubVerifier) Verify(context.Context) ([]countryservice.Violation, error) {
	return s.violations, s.err
}

type stubSeeder struct{ created int }

func (s stubSeeder) SeedDefaults(context.Context, []string) (int, error) { return s.created, nil }

func TestRunVerifyClean(t *testing.T) {
	var out bytes.Buffer
	if err := runVerify(context.Background(), stubVerifier{}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "all sequences valid") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunVerifyReportsViolations(t *testing.T) {
	var out bytes.Buffer
	id := uuid.New()
	err := runVerify(context.Background(), stubVerifier{violations: []countryservice.Violation{
		{EntityID: id, Name: "Canada", Problems: []string{"position 3 is used more than once"}},
	}}, &out)
	if err == nil {
		t.Fatal("expected error when violations exist")
	}
	if !strings.Contains(out.String(), id.String()) || !strings.Contains(out.String(), "position 3") {
		t.Fatalf("expected violation details, got %q", out.String())
	}
}

func TestRunVerifyPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	if err := runVerify(context.Background(), stubVerifier{err: boom}, &bytes.Buffer{}); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRunSeedReportsCount(t *testing.T) {
	var out bytes.Buffer
	if err := runSeed(context.Background(), stubSeeder{created: 2}, []string{"a", "b", "c"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "2 of 3 stages created" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestCommandsDeclareFlags(t *testing.T) {
	if SeedCatalogCmd().Flags().Lookup("file") == nil {
		t.Fatal("seed-catalog must expose --file")
	}
	if VerifyCmd().Flags().Lookup("quiet") == nil {
		t.Fatal("verify must expose --quiet")
	}
}
