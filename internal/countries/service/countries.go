package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agency_portal_backend/internal/countries/domain"
	"agency_portal_backend/internal/countries/transport"
	"agency_portal_backend/internal/events"
	"agency_portal_backend/platform/metrics"
	"agency_portal_backend/platform/sanitize"
)

// CreateCountry stores a new active country whose sequence holds only the
// pinned stage.
func (s *Service) CreateCountry(ctx context.Context, req transport.CreateCountryRequest) (resp transport.CountryDetailResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation(opCreateCountry, started, err) }(time.Now())

	c, err := domain.NewCountry(sanitize.Text(req.Name), req.CountryCode, time.Now().UTC())
	if err != nil {
		return transport.CountryDetailResponse{}, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return transport.CountryDetailResponse{}, err
	}

	s.log.WithContext(ctx).Info("representing country created", "entityId", created.ID, "name", created.Name)
	s.bus.Publish(ctx, events.RepresentingCountryCreated{
		BaseEvent: events.NewBaseEvent(),
		EntityID:  created.ID,
		Name:      created.Name,
	})

	return transport.CountryDetailResponse{
		CountryResponse: toCountryResponse(created),
		Stages:          toLinkResponses(domain.NewSequence()),
	}, nil
}

// GetCountry returns the country with its current sequence.
func (s *Service) GetCountry(ctx context.Context, id uuid.UUID) (transport.CountryDetailResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CountryDetailResponse{}, err
	}
	seq, err := s.repo.GetSequence(ctx, id)
	if err != nil {
		return transport.CountryDetailResponse{}, err
	}
	return transport.CountryDetailResponse{
		CountryResponse: toCountryResponse(c),
		Stages:          toLinkResponses(seq),
	}, nil
}

// ListCountries returns every country ordered by name.
func (s *Service) ListCountries(ctx context.Context) (transport.CountryListResponse, error) {
	countries, err := s.repo.List(ctx)
	if err != nil {
		return transport.CountryListResponse{}, err
	}

	items := make([]transport.CountryResponse, len(countries))
	for i, c := range countries {
		items[i] = toCountryResponse(c)
	}
	return transport.CountryListResponse{Items: items, Total: len(items)}, nil
}

// ToggleActive flips the entity activation flag. Stage ordering is untouched.
func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID) (resp transport.CountryResponse, err error) {
	defer func(started time.Time) { metrics.ObserveOperation(opToggleActive, started, err) }(time.Now())

	c, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return transport.CountryResponse{}, err
	}

	s.log.WithContext(ctx).Info("representing country active toggled", "entityId", c.ID, "isActive", c.IsActive)
	s.bus.Publish(ctx, events.RepresentingCountryActiveToggled{
		BaseEvent: events.NewBaseEvent(),
		EntityID:  c.ID,
		IsActive:  c.IsActive,
	})
	return toCountryResponse(c), nil
}
