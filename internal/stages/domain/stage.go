// Package domain holds the stage catalog value types.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"agency_portal_backend/platform/apperr"

	"golang.org/x/text/unicode/norm"
)

// PinnedStage is the stage every representing country starts with. It is
// compared by name, never by position.
const PinnedStage = "New"

// MaxNameLength is the longest stage name accepted, in characters.
const MaxNameLength = 100

// Error codes surfaced to API clients.
const (
	CodeDuplicateStage   = "duplicate_stage"
	CodeInvalidStageName = "invalid_stage_name"
	CodeStageNotFound    = "stage_not_found"
)

var (
	// ErrDuplicateStage is matched by errors.Is for catalog name collisions.
	ErrDuplicateStage = errors.New("duplicate stage")
	// ErrInvalidStageName is matched by errors.Is for rejected names.
	ErrInvalidStageName = errors.New("invalid stage name")
	// ErrStageNotFound is matched by errors.Is for unknown names.
	ErrStageNotFound = errors.New("stage not found")
)

// Stage is a reusable pipeline step definition. Name is its identity.
type Stage struct {
	Name      string
	CreatedAt time.Time
}

// NormalizeName trims and NFC-normalises raw so visually equal names share
// one identity. Matching stays case-sensitive.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(norm.NFC.String(raw))
	if name == "" {
		return "", InvalidStageName("stage name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", InvalidStageName(fmt.Sprintf("stage name must be at most %d characters", MaxNameLength))
	}
	// Names travel as a single URL path segment.
	if strings.IndexFunc(name, pathHostile) >= 0 {
		return "", InvalidStageName("stage name must not contain slashes or control characters")
	}
	return name, nil
}

func pathHostile(r rune) bool {
	return r == '/' || r == '\\' || unicode.IsControl(r)
}

// IsPinned reports whether name is the pinned first stage.
func IsPinned(name string) bool {
	return name == PinnedStage
}

// DuplicateStage builds the typed error for an existing catalog name.
func DuplicateStage(name string) error {
	return apperr.Wrap(apperr.KindConflict, fmt.Sprintf("stage %q already exists", name), ErrDuplicateStage).
		WithCode(CodeDuplicateStage)
}

// InvalidStageName builds the typed error for a rejected name.
func InvalidStageName(message string) error {
	return apperr.Wrap(apperr.KindValidation, message, ErrInvalidStageName).
		WithCode(CodeInvalidStageName)
}

// StageNotFound builds the typed error for a name missing from the catalog.
func StageNotFound(name string) error {
	return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("stage %q not found", name), ErrStageNotFound).
		WithCode(CodeStageNotFound)
}
