package dto

import (
	"time"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	TaxForm  string `json:"taxForm"`
	StatusID string `json:"statusID" binding:"required"`
	Assignee string `json:"assignee"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	TaxForm  *string `json:"taxForm"`
	StatusID *string `json:"statusID"`
	Assignee *string `json:"assignee"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	TaxForm       string    `json:"taxForm"`
	StatusID      string    `json:"statusID"`
	Assignee      string    `json:"assignee"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		TaxForm:       c.TaxForm,
		StatusID:      c.StatusID,
		Assignee:      c.Assignee,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to response DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}
