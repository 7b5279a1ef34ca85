package dto

import (
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// CreateTaxCategoryRequest defines the data needed to create a tax category.
type CreateTaxCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// TaxCategoryResponse defines the data returned for a tax category.
type TaxCategoryResponse struct {
	TaxCategoryID string `json:"taxCategoryID"`
	ClientID      string `json:"clientID"`
	Name          string `json:"name"`
}

// ToTaxCategoryResponse converts a domain.TaxCategory to its response DTO
func ToTaxCategoryResponse(c *domain.TaxCategory) TaxCategoryResponse {
	return TaxCategoryResponse{
		TaxCategoryID: c.TaxCategoryID,
		ClientID:      c.ClientID,
		Name:          c.Name,
	}
}

// ToListTaxCategoryResponse converts a slice of categories to response DTOs
func ToListTaxCategoryResponse(categories []domain.TaxCategory) []TaxCategoryResponse {
	res := make([]TaxCategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToTaxCategoryResponse(&c)
	}
	return res
}
