package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaskService(t *testing.T) (*TaskService, *fakeTasksRepo) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	repo := &fakeTasksRepo{}
	return NewTaskService(db, &fakeRepoManager{tasks: repo}, testConfig()), repo
}

const taskID = "0b7f4d2e-4a36-4c4b-9b0a-7f4a0a5e9c11"

func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	s, repo := newTestTaskService(t)
	repo.out = &models.Task{ID: "t1", Title: "buy milk"}

	got, err := s.Create(context.Background(), "owner", &models.NewTask{Title: "  buy milk ", Text: strPtr(" 2l ")})
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, "owner", repo.ownerID)
	assert.Equal(t, "buy milk", repo.newTask.Title)
	assert.Equal(t, "2l", *repo.newTask.Text)
	assert.True(t, repo.hasDL, "store call must run under a deadline")
}

func TestTaskService_CreateRequiresTitle(t *testing.T) {
	s, repo := newTestTaskService(t)

	_, err := s.Create(context.Background(), "owner", &models.NewTask{Title: "   "})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Nil(t, repo.newTask)
}

func TestTaskService_List(t *testing.T) {
	s, repo := newTestTaskService(t)
	repo.list = []*models.Task{{ID: "a"}, {ID: "b"}}

	got, err := s.List(context.Background(), "owner")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "owner", repo.ownerID)
}

func TestTaskService_GetNotFound(t *testing.T) {
	s, repo := newTestTaskService(t)
	repo.err = common.ErrNotFound

	_, err := s.Get(context.Background(), "owner", "id")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "id", repo.id)
}

func TestTaskService_Update(t *testing.T) {
	s, repo := newTestTaskService(t)
	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	repo.out = &models.Task{ID: taskID}

	patch := &models.TaskPatch{Title: strPtr(" renamed "), Completed: true}
	_, err := s.Update(context.Background(), "owner", taskID, patch)
	require.NoError(t, err)
	assert.Equal(t, "renamed", *repo.patch.Title)
	assert.True(t, repo.patch.Completed)
	assert.Equal(t, fixed, repo.now)
}

func TestTaskService_UpdateBlankTitle(t *testing.T) {
	s, repo := newTestTaskService(t)

	_, err := s.Update(context.Background(), "owner", taskID, &models.TaskPatch{Title: strPtr("")})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Nil(t, repo.patch)
}

func TestTaskService_UpdateMalformedIDIsNotFound(t *testing.T) {
	s, repo := newTestTaskService(t)

	for _, id := range []string{"123", "", "not-a-uuid"} {
		_, err := s.Update(context.Background(), "owner", id, &models.TaskPatch{Title: strPtr("  ")})
		assert.ErrorIs(t, err, common.ErrNotFound, id)
		assert.NotErrorIs(t, err, common.ErrValidation, id)
	}
	assert.Nil(t, repo.patch, "store must not be called")
}

func TestTaskService_Delete(t *testing.T) {
	s, repo := newTestTaskService(t)
	repo.out = &models.Task{ID: "id", Title: "x"}

	got, err := s.Delete(context.Background(), "owner", "id")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title)
}

func TestTaskService_StorageErrors(t *testing.T) {
	s, repo := newTestTaskService(t)

	repo.err = context.DeadlineExceeded
	_, err := s.List(context.Background(), "owner")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	repo.err = errors.New("db error: syntax")
	_, err = s.Delete(context.Background(), "owner", "id")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}
