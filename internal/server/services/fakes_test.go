package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	tasksrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	tokensrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tokens"
	usersrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/google/uuid"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:      "k",
		StorageTimeout: time.Second,
		BcryptCost:     4,
		HashWorkers:    2,
	}
}

// fakeStore backs both the users and the tokens fakes so that token
// membership checks see what login and logout wrote.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	tokens map[string][]string

	createUserErr error
	getUserErr    error
	tokenErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*models.User{}, tokens: map[string][]string{}}
}

func (s *fakeStore) tokensOf(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens[userID]...)
}

type fakeUsersRepo struct{ s *fakeStore }

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.createUserErr != nil {
		return nil, f.s.createUserErr
	}
	for _, existing := range f.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.s.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.getUserErr != nil {
		return nil, f.s.getUserErr
	}
	for _, u := range f.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetUserByToken(ctx context.Context, userID, scope, token string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.getUserErr != nil {
		return nil, f.s.getUserErr
	}
	u, ok := f.s.users[userID]
	if !ok || scope != common.AuthScope {
		return nil, common.ErrNotFound
	}
	for _, t := range f.s.tokens[userID] {
		if t == token {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeTokensRepo struct{ s *fakeStore }

func (f *fakeTokensRepo) Create(ctx context.Context, userID, scope, token string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.tokenErr != nil {
		return f.s.tokenErr
	}
	f.s.tokens[userID] = append(f.s.tokens[userID], token)
	return nil
}

func (f *fakeTokensRepo) Delete(ctx context.Context, userID, token string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.tokenErr != nil {
		return f.s.tokenErr
	}
	kept := f.s.tokens[userID][:0]
	for _, t := range f.s.tokens[userID] {
		if t != token {
			kept = append(kept, t)
		}
	}
	f.s.tokens[userID] = kept
	return nil
}

// fakeTasksRepo records the arguments of the last call and returns canned values.
type fakeTasksRepo struct {
	out     *models.Task
	list    []*models.Task
	err     error
	ownerID string
	id      string
	newTask *models.NewTask
	patch   *models.TaskPatch
	now     time.Time
	hasDL   bool
}

func (f *fakeTasksRepo) record(ctx context.Context, id, ownerID string) {
	f.id, f.ownerID = id, ownerID
	_, f.hasDL = ctx.Deadline()
}

func (f *fakeTasksRepo) Create(ctx context.Context, ownerID string, task *models.NewTask) (*models.Task, error) {
	f.record(ctx, "", ownerID)
	f.newTask = task
	return f.out, f.err
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	f.record(ctx, "", ownerID)
	return f.list, f.err
}

func (f *fakeTasksRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error) {
	f.record(ctx, id, ownerID)
	return f.out, f.err
}

func (f *fakeTasksRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch *models.TaskPatch, now time.Time) (*models.Task, error) {
	f.record(ctx, id, ownerID)
	f.patch, f.now = patch, now
	return f.out, f.err
}

func (f *fakeTasksRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error) {
	f.record(ctx, id, ownerID)
	return f.out, f.err
}

type fakeRepoManager struct {
	store *fakeStore
	tasks *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	return &fakeUsersRepo{s: m.store}
}

func (m *fakeRepoManager) Tokens(db dbx.DBTX) tokensrepo.Repository {
	return &fakeTokensRepo{s: m.store}
}

func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository { return m.tasks }
