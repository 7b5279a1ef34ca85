package dto

import (
	"time"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// CreateNoteRequest defines the data needed to create an account note.
type CreateNoteRequest struct {
	Content    string `json:"content" binding:"required"`
	AuthorName string `json:"authorName"`
}

// NoteResponse defines the data returned for an account note.
type NoteResponse struct {
	NoteID     string    `json:"noteID"`
	AccountID  string    `json:"accountID"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorID"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToNoteResponse converts a domain.Note to its response DTO
func ToNoteResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		NoteID:     n.NoteID,
		AccountID:  n.AccountID,
		Content:    n.Content,
		AuthorID:   n.AuthorID,
		AuthorName: n.AuthorName,
		CreatedAt:  n.CreatedAt,
	}
}

// ToListNoteResponse converts a slice of notes to response DTOs
func ToListNoteResponse(notes []domain.Note) []NoteResponse {
	res := make([]NoteResponse, len(notes))
	for i, n := range notes {
		res[i] = ToNoteResponse(&n)
	}
	return res
}
