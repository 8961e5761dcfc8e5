// Package stages provides the stage catalog bounded context module.
// The catalog holds every stage name a representing country can use.
package stages

import (
	"context"

	"agency_portal_backend/internal/events"
	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/internal/stages/handler"
	"agency_portal_backend/internal/stages/repository"
	"agency_portal_backend/internal/stages/service"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/validator"
)

// Module is the stage catalog module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the catalog on top of repo.
func NewModule(repo repository.Repository, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "stages"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Seed creates the given stage names if they are missing.
func (m *Module) Seed(ctx context.Context, names []string) (int, error) {
	return m.service.SeedDefaults(ctx, names)
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/stages", m.handler.List)
	ctx.Admin.POST("/stages", m.handler.Create)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
