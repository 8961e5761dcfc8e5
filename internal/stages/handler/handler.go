package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agency_portal_backend/internal/stages/service"
	"agency_portal_backend/internal/stages/transport"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/httpkit"
	"agency_portal_backend/platform/validator"
)

// Handler handles HTTP requests for the stage catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	codeInvalidRequest   = "invalid_request"
	codeValidationFailed = "validation_failed"
)

// New creates a new stage catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves the full catalog.
// GET /api/v1/stages
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.ListStages(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create adds a stage to the catalog.
// POST /api/v1/admin/stages
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest).WithCode(codeInvalidRequest))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(msgValidationFailed).WithCode(codeValidationFailed).WithDetails(validator.FieldErrors(err)))
		return
	}

	result, err := h.svc.CreateStage(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
