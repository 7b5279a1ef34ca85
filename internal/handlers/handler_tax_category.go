package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/middleware"
)

// TaxCategoryHandler handles HTTP requests for tax categories.
type TaxCategoryHandler struct {
	categoryService portssvc.TaxCategorySvcFacade
}

// NewTaxCategoryHandler creates a new TaxCategoryHandler.
func NewTaxCategoryHandler(ts portssvc.TaxCategorySvcFacade) *TaxCategoryHandler {
	return &TaxCategoryHandler{categoryService: ts}
}

func (h *TaxCategoryHandler) ListCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	categories, err := h.categoryService.ListCategories(c.Request.Context(), clientID)
	if err != nil {
		logger.Error("Failed to list tax categories", slog.String("error", err.Error()), slog.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax categories"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTaxCategoryResponse(categories))
}

// CreateCategory adds a tax category. Duplicate names are rejected
// case-insensitively.
func (h *TaxCategoryHandler) CreateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	var req dto.CreateTaxCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), clientID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A category with this name already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create tax category", slog.String("error", err.Error()), slog.String("client_id", clientID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax category"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaxCategoryResponse(category))
}

// DeleteCategory removes a tax category. Refused with 409 while accounts
// still reference it.
func (h *TaxCategoryHandler) DeleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	categoryID := c.Param("categoryID")

	err := h.categoryService.DeleteCategory(c.Request.Context(), clientID, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category still has accounts assigned to it"})
		} else {
			logger.Error("Failed to delete tax category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tax category"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
