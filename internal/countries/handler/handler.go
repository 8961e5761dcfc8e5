package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agency_portal_backend/internal/countries/service"
	"agency_portal_backend/internal/countries/transport"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/httpkit"
	"agency_portal_backend/platform/validator"
)

// Handler handles HTTP requests for representing countries and their stages.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid representing country id"

	codeInvalidRequest   = "invalid_request"
	codeValidationFailed = "validation_failed"
	codeInvalidID        = "invalid_id"
)

// New creates a new representing countries handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts read routes on protected and mutations on admin.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	read := protected.Group("/representing-countries")
	read.GET("", h.List)
	read.GET("/:id", h.Get)
	read.GET("/:id/stages", h.GetSequence)
	read.GET("/:id/stages/notes", h.GetNotes)

	write := admin.Group("/representing-countries")
	write.POST("", h.Create)
	write.PATCH("/:id/toggle-active", h.ToggleActive)
	write.POST("/:id/stages", h.AssignStage)
	write.PUT("/:id/stages/reorder", h.ReorderStage)
	write.DELETE("/:id/stages/:stage", h.RemoveStage)
	write.PATCH("/:id/stages/:stage/active", h.SetStageActive)
	write.PUT("/:id/stages/:stage/note", h.SetNote)
}

func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.ListCountries(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetCountry(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCountryRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.CreateCountry(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) ToggleActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.ToggleActive(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) GetSequence(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetSequence(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) AssignStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.AssignStageRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.AssignStage(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) RemoveStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.RemoveStage(c.Request.Context(), id, c.Param("stage"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) SetStageActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.SetStageActiveRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.SetStageActive(c.Request.Context(), id, c.Param("stage"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ReorderStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.ReorderStageRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.ReorderStage(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) GetNotes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.GetNotes(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) SetNote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.SetNoteRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.SetNote(c.Request.Context(), id, c.Param("stage"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest).WithCode(codeInvalidRequest))
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(msgValidationFailed).WithCode(codeValidationFailed).WithDetails(validator.FieldErrors(err)))
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidID).WithCode(codeInvalidID))
		return uuid.UUID{}, false
	}
	return id, true
}
