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

// JournalHandler handles manual journal entries posted from the trial
// balance view.
type JournalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(js portssvc.JournalSvcFacade) *JournalHandler {
	return &JournalHandler{journalService: js}
}

// CreateJournalEntry creates one transaction per line and increments the
// affected accounts' adjusted figures directly.
func (h *JournalHandler) CreateJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "One or more accounts not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		}
		return
	}

	logger.Info("Journal entry created", slog.Int("lines", len(txns)))
	c.JSON(http.StatusCreated, dto.ToListTransactionResponse(txns))
}
