package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailydo/internal/common"
	"github.com/dmitrijs2005/dailydo/internal/dbx"
	"github.com/dmitrijs2005/dailydo/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, attachment *models.Attachment) error {

	query :=
		`INSERT INTO attachments (todo_id, user_id, storage_key, file_name, upload_status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (todo_id)
		 DO UPDATE SET storage_key = $3, file_name = $4, upload_status = $5
		 `

	_, err := r.db.ExecContext(ctx, query,
		attachment.TodoID, attachment.UserID, attachment.StorageKey, attachment.FileName, attachment.UploadStatus)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByTodoIDAndOwner(ctx context.Context, todoID string, userID string) (*models.Attachment, error) {
	query :=
		`SELECT todo_id, user_id, storage_key, file_name, upload_status FROM attachments
		 WHERE todo_id = $1 AND user_id = $2
		 `

	a := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, todoID, userID).
		Scan(&a.TodoID, &a.UserID, &a.StorageKey, &a.FileName, &a.UploadStatus)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, todoID string, userID string) error {
	query :=
		`UPDATE attachments
		 SET upload_status = 'completed'
		 WHERE todo_id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, todoID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
