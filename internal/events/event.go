// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"agency_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Stage Catalog Events
// =============================================================================

// StageCreated is published when a stage is added to the global catalog.
type StageCreated struct {
	BaseEvent
	Name string `json:"name"`
}

func (e StageCreated) EventName() string { return "stages.created" }

// =============================================================================
// Representing Country Events
// =============================================================================

// RepresentingCountryCreated is published after a country and its pinned
// stage are committed.
type RepresentingCountryCreated struct {
	BaseEvent
	EntityID uuid.UUID `json:"entityId"`
	Name     string    `json:"name"`
}

func (e RepresentingCountryCreated) EventName() string { return "countries.created" }

// RepresentingCountryActiveToggled is published when the entity activation flag flips.
type RepresentingCountryActiveToggled struct {
	BaseEvent
	EntityID uuid.UUID `json:"entityId"`
	IsActive bool      `json:"isActive"`
}

func (e RepresentingCountryActiveToggled) EventName() string { return "countries.active_toggled" }

// StageAssigned is published when a stage is appended to a country's sequence.
type StageAssigned struct {
	BaseEvent
	EntityID  uuid.UUID `json:"entityId"`
	StageName string    `json:"stageName"`
	Order     int       `json:"order"`
}

func (e StageAssigned) EventName() string { return "countries.stage.assigned" }

// StageRemoved is published when a stage is removed and the sequence compacted.
type StageRemoved struct {
	BaseEvent
	EntityID  uuid.UUID `json:"entityId"`
	StageName string    `json:"stageName"`
	Order     int       `json:"order"`
}

func (e StageRemoved) EventName() string { return "countries.stage.removed" }

// StageReordered is published when a stage moved. No-op moves are not published.
type StageReordered struct {
	BaseEvent
	EntityID  uuid.UUID `json:"entityId"`
	StageName string    `json:"stageName"`
	FromOrder int       `json:"fromOrder"`
	ToOrder   int       `json:"toOrder"`
}

func (e StageReordered) EventName() string { return "countries.stage.reordered" }

// StageNoteSaved is published when a stage note is set or cleared.
type StageNoteSaved struct {
	BaseEvent
	EntityID  uuid.UUID `json:"entityId"`
	StageName string    `json:"stageName"`
	Cleared   bool      `json:"cleared"`
}

func (e StageNoteSaved) EventName() string { return "countries.stage.note_saved" }

// StageActiveChanged is published when a single link's active flag changes.
type StageActiveChanged struct {
	BaseEvent
	EntityID  uuid.UUID `json:"entityId"`
	StageName string    `json:"stageName"`
	IsActive  bool      `json:"isActive"`
}

func (e StageActiveChanged) EventName() string { return "countries.stage.active_changed" }
