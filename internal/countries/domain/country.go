// Package domain holds the representing country aggregate: the entity itself
// and its ordered stage sequence.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxCountryNameLength is the longest display name accepted, in characters.
const MaxCountryNameLength = 120

// Country is a representing country owning one stage sequence.
type Country struct {
	ID          uuid.UUID
	Name        string
	CountryCode string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCountry validates the input and returns an active country with a fresh id.
// name is expected to be sanitised already.
func NewCountry(name, countryCode string, now time.Time) (Country, error) {
	if name == "" {
		return Country{}, InvalidCountry("name is required")
	}
	if utf8.RuneCountInString(name) > MaxCountryNameLength {
		return Country{}, InvalidCountry("name is too long")
	}

	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code != "" && len(code) != 2 {
		return Country{}, InvalidCountry("country code must be two letters")
	}

	return Country{
		ID:          uuid.New(),
		Name:        name,
		CountryCode: code,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
