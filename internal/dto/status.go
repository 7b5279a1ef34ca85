package dto

import (
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// CreateStatusRequest defines the data needed to create a pipeline status.
type CreateStatusRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateStatusRequest defines the data allowed for renaming a status.
type UpdateStatusRequest struct {
	Title string `json:"title" binding:"required"`
}

// StatusResponse defines the data returned for a pipeline status.
type StatusResponse struct {
	StatusID string `json:"statusID"`
	Title    string `json:"title"`
}

// ToStatusResponse converts a domain.Status to StatusResponse DTO
func ToStatusResponse(s *domain.Status) StatusResponse {
	return StatusResponse{StatusID: s.StatusID, Title: s.Title}
}

// ToListStatusResponse converts a slice of domain.Status to response DTOs
func ToListStatusResponse(statuses []domain.Status) []StatusResponse {
	res := make([]StatusResponse, len(statuses))
	for i, s := range statuses {
		res[i] = ToStatusResponse(&s)
	}
	return res
}
