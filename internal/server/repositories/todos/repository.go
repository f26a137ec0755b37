package todos

import (
	"context"

	"github.com/dmitrijs2005/dailydo/internal/server/models"
)

// Repository is the owner-scoped access contract for todos. Every method
// that touches a single row takes the owner's user ID and matches it in the
// same query predicate, so a row owned by another user behaves exactly like
// a row that does not exist.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Todo, error)
	GetByIDAndOwner(ctx context.Context, id string, userID string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Delete(ctx context.Context, id string, userID string) error
}
