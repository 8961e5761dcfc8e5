package domain

import (
	"errors"
	"strings"
	"testing"

	"agency_portal_backend/platform/apperr"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  Visa Filed ", "Visa Filed", false},
		{"New", "New", false},
		{"new", "new", false},
		{"Entrée", "Entrée", false},
		{"   ", "", true},
		{strings.Repeat("x", MaxNameLength+1), "", true},
		{"Visa/Offer", "", true},
		{`Visa\Offer`, "", true},
		{"Visa\tOffer", "", true},
		{"Offer Letter (CoE)", "Offer Letter (CoE)", false},
	}

	for _, tc := range cases {
		got, err := NormalizeName(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidStageName) {
				t.Errorf("NormalizeName(%q): expected ErrInvalidStageName, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeName(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsPinnedIsCaseSensitive(t *testing.T) {
	if !IsPinned("New") {
		t.Fatal("expected New to be pinned")
	}
	if IsPinned("new") || IsPinned("New ") {
		t.Fatal("pinned check must be exact")
	}
}

func TestDuplicateStageIsConflict(t *testing.T) {
	err := DuplicateStage("Docs")

	if !errors.Is(err, ErrDuplicateStage) {
		t.Fatal("expected ErrDuplicateStage in chain")
	}
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatal("expected conflict kind")
	}
}
