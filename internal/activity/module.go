// Package activity records an audit trail of representing country and stage
// catalog changes from the domain event bus.
package activity

import (
	"context"
	"log/slog"

	"agency_portal_backend/internal/events"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/metrics"
)

// Module subscribes to domain events and writes one activity line per event.
type Module struct {
	log *logger.Logger
}

// New creates the activity module.
func New(log *logger.Logger) *Module {
	return &Module{log: log}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	// Stage catalog events
	bus.Subscribe(events.StageCreated{}.EventName(), m)

	// Representing country events
	bus.Subscribe(events.RepresentingCountryCreated{}.EventName(), m)
	bus.Subscribe(events.RepresentingCountryActiveToggled{}.EventName(), m)
	bus.Subscribe(events.StageAssigned{}.EventName(), m)
	bus.Subscribe(events.StageRemoved{}.EventName(), m)
	bus.Subscribe(events.StageReordered{}.EventName(), m)
	bus.Subscribe(events.StageNoteSaved{}.EventName(), m)
	bus.Subscribe(events.StageActiveChanged{}.EventName(), m)

	m.log.Info("activity module registered event handlers")
}

// Handle routes events to an activity log line and counts them.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	metrics.IncEvent(event.EventName())
	log := m.log.WithContext(ctx)
	record := func(attrs ...any) {
		log.Activity(event.EventName(), append([]any{slog.String("eventId", event.EventID().String())}, attrs...)...)
	}

	switch e := event.(type) {
	case events.StageCreated:
		record(slog.String("stage", e.Name))
	case events.RepresentingCountryCreated:
		record(slog.String("entityId", e.EntityID.String()), slog.String("name", e.Name))
	case events.RepresentingCountryActiveToggled:
		record(slog.String("entityId", e.EntityID.String()), slog.Bool("isActive", e.IsActive))
	case events.StageAssigned:
		record(slog.String("entityId", e.EntityID.String()), slog.String("stage", e.StageName), slog.Int("order", e.Order))
	case events.StageRemoved:
		record(slog.String("entityId", e.EntityID.String()), slog.String("stage", e.StageName), slog.Int("order", e.Order))
	case events.StageReordered:
		record(
			slog.String("entityId", e.EntityID.String()),
			slog.String("stage", e.StageName),
			slog.Int("from", e.FromOrder),
			slog.Int("to", e.ToOrder),
		)
	case events.StageNoteSaved:
		record(slog.String("entityId", e.EntityID.String()), slog.String("stage", e.StageName), slog.Bool("cleared", e.Cleared))
	case events.StageActiveChanged:
		record(slog.String("entityId", e.EntityID.String()), slog.String("stage", e.StageName), slog.Bool("isActive", e.IsActive))
	default:
		log.Debug("unhandled activity event", "event", event.EventName())
	}
	return nil
}
