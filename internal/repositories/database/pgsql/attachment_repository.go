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

type PgxAttachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository creates a new repository for attachment data.
func NewAttachmentRepository(pool *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{pool: pool}
}

var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

func toDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID: m.AttachmentID,
		AccountID:    m.AccountID,
		FileName:     m.FileName,
		StorageKey:   m.StorageKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const attachmentColumns = `attachment_id, account_id, file_name, storage_key, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxAttachmentRepository) ListAttachmentsByAccount(ctx context.Context, accountID string) ([]domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE account_id = $1 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments for account %s: %w", accountID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Attachment, error) {
		var m models.Attachment
		err := row.Scan(
			&m.AttachmentID,
			&m.AccountID,
			&m.FileName,
			&m.StorageKey,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan attachments: %w", err)
	}

	attachments := make([]domain.Attachment, len(ms))
	for i, m := range ms {
		attachments[i] = toDomainAttachment(m)
	}
	return attachments, nil
}

func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	query := `
		INSERT INTO attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		attachment.AttachmentID,
		attachment.AccountID,
		attachment.FileName,
		attachment.StorageKey,
		attachment.CreatedAt,
		attachment.CreatedBy,
		attachment.LastUpdatedAt,
		attachment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save attachment %s: %w", attachment.AttachmentID, err)
	}
	return nil
}

func (r *PgxAttachmentRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE attachment_id = $1;`, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to delete attachment %s: %w", attachmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAttachmentRepository) DeleteAttachmentsByAccount(ctx context.Context, accountID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete attachments for account %s: %w", accountID, err)
	}
	return nil
}
