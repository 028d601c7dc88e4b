package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the owner-scoped task store. Every lookup takes the owner's
// ID; a task that belongs to someone else is reported as common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, ownerID string, task *models.NewTask) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error)
	UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch *models.TaskPatch, now time.Time) (*models.Task, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error)
}
