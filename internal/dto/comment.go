package dto

import (
	"time"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// CreateCommentRequest defines the data needed to create a client comment.
type CreateCommentRequest struct {
	Content    string `json:"content" binding:"required"`
	AuthorName string `json:"authorName"`
}

// CommentResponse defines the data returned for a client comment.
type CommentResponse struct {
	CommentID  string    `json:"commentID"`
	ClientID   string    `json:"clientID"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorID"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCommentResponse converts a domain.Comment to its response DTO
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID:  c.CommentID,
		ClientID:   c.ClientID,
		Content:    c.Content,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCommentResponse converts a slice of comments to response DTOs
func ToListCommentResponse(comments []domain.Comment) []CommentResponse {
	res := make([]CommentResponse, len(comments))
	for i, c := range comments {
		res[i] = ToCommentResponse(&c)
	}
	return res
}
