package transport

import "time"

// CreateStageRequest contains data for adding a stage to the catalog.
type CreateStageRequest struct {
	Name string `json:"name" validate:"required,notblank,printable,max=100"`
}

// StageResponse represents a catalog stage in API responses.
type StageResponse struct {
	Name      string    `json:"name"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
}

// StageListResponse wraps the catalog.
type StageListResponse struct {
	Items []StageResponse `json:"items"`
	Total int             `json:"total"`
}
