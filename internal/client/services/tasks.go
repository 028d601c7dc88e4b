package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/google/uuid"
)

// ErrAmbiguousID is returned when an id prefix matches more than one task.
var ErrAmbiguousID = errors.New("id prefix matches several tasks")

// TaskService wraps the task API for the CLI. Every method taking ref
// accepts a full task id or any unique prefix of one.
type TaskService interface {
	Add(ctx context.Context, t *models.NewTask) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	Get(ctx context.Context, ref string) (*models.Task, error)
	SetCompleted(ctx context.Context, ref string, completed bool) (*models.Task, error)
	Edit(ctx context.Context, ref string, p *models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ref string) (*models.Task, error)
	Resolve(ctx context.Context, ref string) (string, error)
}

type taskService struct {
	client client.Client
}

func NewTaskService(client client.Client) TaskService {
	return &taskService{client: client}
}

func (s *taskService) Add(ctx context.Context, t *models.NewTask) (*models.Task, error) {
	return s.client.CreateTask(ctx, t)
}

func (s *taskService) List(ctx context.Context) ([]*models.Task, error) {
	return s.client.ListTasks(ctx)
}

func (s *taskService) Get(ctx context.Context, ref string) (*models.Task, error) {
	id, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.client.GetTask(ctx, id)
}

func (s *taskService) SetCompleted(ctx context.Context, ref string, completed bool) (*models.Task, error) {
	id, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateTask(ctx, id, &models.TaskPatch{Completed: completed})
}

// Edit applies p keeping the task's completion state. The server treats a
// missing completed flag as false, so the current value is sent along.
func (s *taskService) Edit(ctx context.Context, ref string, p *models.TaskPatch) (*models.Task, error) {
	current, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	patch := *p
	patch.Completed = current.Completed
	return s.client.UpdateTask(ctx, current.ID, &patch)
}

func (s *taskService) Delete(ctx context.Context, ref string) (*models.Task, error) {
	id, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.client.DeleteTask(ctx, id)
}

// Resolve turns ref into a full task id. Full UUIDs are returned as-is;
// anything else is matched as a prefix against the user's tasks.
func (s *taskService) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return "", common.ErrNotFound
	}
	if _, err := uuid.Parse(ref); err == nil {
		return ref, nil
	}

	list, err := s.client.ListTasks(ctx)
	if err != nil {
		return "", err
	}

	var found string
	for _, t := range list {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if found != "" {
			return "", ErrAmbiguousID
		}
		found = t.ID
	}
	if found == "" {
		return "", common.ErrNotFound
	}
	return found, nil
}
