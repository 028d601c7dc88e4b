package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) (string, bool) {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false
	}
	require.NoError(t, err)
	return string(v), true
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	token string

	user     *models.User
	issue    string
	loginErr error
	meErr    error
	outErr   error

	tasks     []*models.Task
	listErr   error
	listCalls int

	lastGetID    string
	lastUpdateID string
	lastPatch    *models.TaskPatch
	lastDeleteID string
	lastNew      *models.NewTask
}

func (f *fakeClient) Token() string         { return f.token }
func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Health(context.Context) error { return nil }

func (f *fakeClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = f.issue
	return f.user, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = f.issue
	return f.user, nil
}

func (f *fakeClient) Logout(context.Context) error {
	if f.outErr != nil {
		return f.outErr
	}
	f.token = ""
	return nil
}

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeClient) CreateTask(ctx context.Context, t *models.NewTask) (*models.Task, error) {
	f.lastNew = t
	return &models.Task{ID: "new-id", Title: t.Title}, nil
}

func (f *fakeClient) ListTasks(context.Context) ([]*models.Task, error) {
	f.listCalls++
	return f.tasks, f.listErr
}

func (f *fakeClient) find(id string) *models.Task {
	for _, t := range f.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (f *fakeClient) GetTask(ctx context.Context, id string) (*models.Task, error) {
	f.lastGetID = id
	if t := f.find(id); t != nil {
		return t, nil
	}
	return &models.Task{ID: id}, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, id string, p *models.TaskPatch) (*models.Task, error) {
	f.lastUpdateID = id
	f.lastPatch = p
	return &models.Task{ID: id, Completed: p.Completed}, nil
}

func (f *fakeClient) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	f.lastDeleteID = id
	return &models.Task{ID: id}, nil
}

var _ client.Client = (*fakeClient)(nil)
