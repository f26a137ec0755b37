package todos

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

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {

	query :=
		`INSERT INTO todos (user_id, content, is_completed)
         VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.UserID, todo.Content, todo.IsCompleted).Scan(&todo.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Todo, error) {
	query :=
		`SELECT id, user_id, content, is_completed FROM todos
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Todo
	for rows.Next() {
		todo := &models.Todo{}
		if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Content, &todo.IsCompleted); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id string, userID string) (*models.Todo, error) {
	query :=
		`SELECT id, user_id, content, is_completed FROM todos
		 WHERE id = $1 AND user_id = $2
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&todo.ID, &todo.UserID, &todo.Content, &todo.IsCompleted)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`UPDATE todos
		 SET content = $1, is_completed = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, todo.Content, todo.IsCompleted, todo.ID, todo.UserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return todo, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
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
