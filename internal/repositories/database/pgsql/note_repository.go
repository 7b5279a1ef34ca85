package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	"github.com/taxdesk/taxdesk_app/internal/models"
)

type PgxNoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new repository for account note data.
func NewNoteRepository(pool *pgxpool.Pool) portsrepo.NoteRepositoryFacade {
	return &PgxNoteRepository{pool: pool}
}

var _ portsrepo.NoteRepositoryFacade = (*PgxNoteRepository)(nil)

func toDomainNote(m models.Note) domain.Note {
	return domain.Note{
		NoteID:     m.NoteID,
		AccountID:  m.AccountID,
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

const noteColumns = `note_id, account_id, content, author_id, author_name, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxNoteRepository) ListNotesByAccount(ctx context.Context, accountID string) ([]domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM account_notes WHERE account_id = $1 ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes for account %s: %w", accountID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Note, error) {
		var m models.Note
		err := row.Scan(
			&m.NoteID,
			&m.AccountID,
			&m.Content,
			&m.AuthorID,
			&m.AuthorName,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan notes: %w", err)
	}

	notes := make([]domain.Note, len(ms))
	for i, m := range ms {
		notes[i] = toDomainNote(m)
	}
	return notes, nil
}

func (r *PgxNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	query := `
		INSERT INTO account_notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		note.NoteID,
		note.AccountID,
		note.Content,
		note.AuthorID,
		note.AuthorName,
		note.CreatedAt,
		note.CreatedBy,
		note.LastUpdatedAt,
		note.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save note %s: %w", note.NoteID, err)
	}
	return nil
}

func (r *PgxNoteRepository) DeleteNote(ctx context.Context, noteID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM account_notes WHERE note_id = $1;`, noteID)
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNoteRepository) DeleteNotesByAccount(ctx context.Context, accountID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM account_notes WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete notes for account %s: %w", accountID, err)
	}
	return nil
}
