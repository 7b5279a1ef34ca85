package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	"github.com/taxdesk/taxdesk_app/internal/models"
)

type PgxCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new repository for client comment data.
func NewCommentRepository(pool *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{pool: pool}
}

var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

func toDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:  m.CommentID,
		ClientID:   m.ClientID,
		Content:    m.Content,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const commentColumns = `comment_id, client_id, content, author_id, author_name, created_at, created_by, last_updated_at, last_updated_by`

func scanComment(row pgx.Row) (models.Comment, error) {
	var m models.Comment
	err := row.Scan(
		&m.CommentID,
		&m.ClientID,
		&m.Content,
		&m.AuthorID,
		&m.AuthorName,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1;`

	m, err := scanComment(r.pool.QueryRow(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment %s: %w", commentID, err)
	}

	comment := toDomainComment(m)
	return &comment, nil
}

func (r *PgxCommentRepository) ListCommentsByClient(ctx context.Context, clientID string) ([]domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE client_id = $1 ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for client %s: %w", clientID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Comment, error) {
		return scanComment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan comments: %w", err)
	}

	comments := make([]domain.Comment, len(ms))
	for i, m := range ms {
		comments[i] = toDomainComment(m)
	}
	return comments, nil
}

func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	query := `
		INSERT INTO comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		comment.CommentID,
		comment.ClientID,
		comment.Content,
		comment.AuthorID,
		comment.AuthorName,
		comment.CreatedAt,
		comment.CreatedBy,
		comment.LastUpdatedAt,
		comment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save comment %s: %w", comment.CommentID, err)
	}
	return nil
}

func (r *PgxCommentRepository) DeleteComment(ctx context.Context, commentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1;`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", commentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
