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

// StatusHandler handles HTTP requests for pipeline statuses.
type StatusHandler struct {
	statusService portssvc.StatusSvcFacade
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(ss portssvc.StatusSvcFacade) *StatusHandler {
	return &StatusHandler{statusService: ss}
}

func (h *StatusHandler) CreateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.statusService.CreateStatus(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create status"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToStatusResponse(status))
}

func (h *StatusHandler) ListStatuses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	statuses, err := h.statusService.ListStatuses(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list statuses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list statuses"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStatusResponse(statuses))
}

func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statusID := c.Param("statusID")

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.statusService.UpdateStatus(c.Request.Context(), statusID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Status not found"})
		} else {
			logger.Error("Failed to update status", slog.String("error", err.Error()), slog.String("status_id", statusID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusResponse(status))
}

// DeleteStatus removes a pipeline column. Refused with 409 while clients
// still sit in it.
func (h *StatusHandler) DeleteStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statusID := c.Param("statusID")

	err := h.statusService.DeleteStatus(c.Request.Context(), statusID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Status not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Status still has clients assigned to it"})
		} else {
			logger.Error("Failed to delete status", slog.String("error", err.Error()), slog.String("status_id", statusID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete status"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
