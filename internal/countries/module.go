// Package countries provides the representing countries bounded context
// module: entities, their ordered stage sequences and stage notes.
package countries

import (
	"agency_portal_backend/internal/countries/handler"
	"agency_portal_backend/internal/countries/ports"
	"agency_portal_backend/internal/countries/repository"
	"agency_portal_backend/internal/countries/service"
	"agency_portal_backend/internal/events"
	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/validator"
)

// Module is the representing countries module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the representing countries module.
func NewModule(repo repository.Repository, catalog ports.StageCatalog, bus events.Bus, cfg config.NotesConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, catalog, bus, cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "countries"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts representing country routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected, ctx.Admin)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
