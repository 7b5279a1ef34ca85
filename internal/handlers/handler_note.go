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

// NoteHandler handles HTTP requests for account notes.
type NoteHandler struct {
	noteService portssvc.NoteSvcFacade
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(ns portssvc.NoteSvcFacade) *NoteHandler {
	return &NoteHandler{noteService: ns}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	notes, err := h.noteService.ListNotes(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list notes", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListNoteResponse(notes))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), accountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to create note", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteResponse(note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	noteID := c.Param("noteID")

	if err := h.noteService.DeleteNote(c.Request.Context(), noteID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		} else {
			logger.Error("Failed to delete note", slog.String("error", err.Error()), slog.String("note_id", noteID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
