package attachments

import (
	"context"

	"github.com/dmitrijs2005/dailydo/internal/server/models"
)

// Repository stores attachment metadata. All lookups are owner-scoped the
// same way todos are; the blob itself lives in object storage.
type Repository interface {
	CreateOrUpdate(ctx context.Context, attachment *models.Attachment) error
	GetByTodoIDAndOwner(ctx context.Context, todoID string, userID string) (*models.Attachment, error)
	MarkUploaded(ctx context.Context, todoID string, userID string) error
}
