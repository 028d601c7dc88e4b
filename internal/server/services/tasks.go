package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// TaskService exposes the task store to handlers. ownerID is always the
// authenticated user; a task owned by anyone else is common.ErrNotFound.
type TaskService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	storageTimeout time.Duration
	now            func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TaskService {
	return &TaskService{
		db:             db,
		repomanager:    m,
		storageTimeout: cfg.StorageTimeout,
		now:            time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, task *models.NewTask) (*models.Task, error) {
	if err := models.ValidateNewTask(task); err != nil {
		return nil, err
	}

	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	t, err := s.repomanager.Tasks(s.db).Create(ctx, ownerID, task)
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return t, nil
}

// List returns the owner's tasks in the order they were created.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	list, err := s.repomanager.Tasks(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return list, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	t, err := s.repomanager.Tasks(s.db).GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return t, nil
}

// Update validates patch and applies it. patch.Completed decides both the
// completed flag and completedAt. A malformed id is common.ErrNotFound
// before the patch is looked at.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch *models.TaskPatch) (*models.Task, error) {
	if !models.IsTaskID(id) {
		return nil, common.ErrNotFound
	}
	if err := models.ValidateTaskPatch(patch); err != nil {
		return nil, err
	}

	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	t, err := s.repomanager.Tasks(s.db).UpdateByIDAndOwner(ctx, id, ownerID, patch, s.now())
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	t, err := s.repomanager.Tasks(s.db).DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return t, nil
}
