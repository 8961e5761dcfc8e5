package domain

import (
	"errors"
	"fmt"

	"agency_portal_backend/platform/apperr"
)

// Error codes surfaced to API clients.
const (
	CodeAlreadyAssigned  = "already_assigned"
	CodePinnedStage      = "pinned_stage"
	CodePinnedPosition   = "pinned_position"
	CodeInvalidPosition  = "invalid_position"
	CodeNoteTooLong      = "note_too_long"
	CodeStageNotAssigned = "stage_not_assigned"
	CodeCountryNotFound  = "country_not_found"
	CodeInvalidCountry   = "invalid_country"
)

var (
	ErrAlreadyAssigned  = errors.New("stage already assigned")
	ErrPinnedStage      = errors.New("pinned stage cannot be removed")
	ErrPinnedPosition   = errors.New("pinned position cannot change")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrNoteTooLong      = errors.New("note too long")
	ErrStageNotAssigned = errors.New("stage not assigned")
	ErrCountryNotFound  = errors.New("representing country not found")
	ErrInvalidCountry   = errors.New("invalid representing country")
)

func AlreadyAssigned(stage string) error {
	return apperr.Wrap(apperr.KindConflict, fmt.Sprintf("stage %q is already assigned", stage), ErrAlreadyAssigned).
		WithCode(CodeAlreadyAssigned)
}

func PinnedStageRemoval(stage string) error {
	return apperr.Wrap(apperr.KindValidation, fmt.Sprintf("stage %q is pinned and cannot be removed", stage), ErrPinnedStage).
		WithCode(CodePinnedStage)
}

func PinnedPosition(message string) error {
	return apperr.Wrap(apperr.KindValidation, message, ErrPinnedPosition).
		WithCode(CodePinnedPosition)
}

func InvalidPosition(target, n int) error {
	return apperr.Wrap(apperr.KindValidation, fmt.Sprintf("position %d is outside [2, %d]", target, n), ErrInvalidPosition).
		WithCode(CodeInvalidPosition).
		WithDetails(map[string]int{"min": 2, "max": n, "requested": target})
}

func NoteTooLong(length, max int) error {
	return apperr.Wrap(apperr.KindValidation, fmt.Sprintf("note is %d characters, the limit is %d", length, max), ErrNoteTooLong).
		WithCode(CodeNoteTooLong).
		WithDetails(map[string]int{"length": length, "max": max})
}

func StageNotAssigned(stage string) error {
	return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("stage %q is not assigned", stage), ErrStageNotAssigned).
		WithCode(CodeStageNotAssigned)
}

func CountryNotFound() error {
	return apperr.Wrap(apperr.KindNotFound, "representing country not found", ErrCountryNotFound).
		WithCode(CodeCountryNotFound)
}

func InvalidCountry(message string) error {
	return apperr.Wrap(apperr.KindValidation, message, ErrInvalidCountry).
		WithCode(CodeInvalidCountry)
}
