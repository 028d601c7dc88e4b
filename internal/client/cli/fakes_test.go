package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

type fakeAuth struct {
	loggedIn bool
	user     *models.User

	email    string
	password string
	err      error

	restoreEmail string
	restoreErr   error
	forgotten    int
	loggedOut    bool
}

func (f *fakeAuth) Restore(context.Context) (string, bool, error) {
	if f.restoreErr != nil {
		return "", false, f.restoreErr
	}
	if f.restoreEmail == "" {
		return "", false, nil
	}
	f.loggedIn = true
	return f.restoreEmail, true, nil
}

func (f *fakeAuth) login(email string, password []byte) (*models.User, error) {
	f.email, f.password = email, string(password)
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeAuth) Register(_ context.Context, email string, password []byte) (*models.User, error) {
	return f.login(email, password)
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.User, error) {
	return f.login(email, password)
}

func (f *fakeAuth) Logout(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.loggedOut = true
	f.loggedIn = false
	return nil
}

func (f *fakeAuth) Me(context.Context) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Forget(context.Context) error {
	f.forgotten++
	f.loggedIn = false
	return nil
}

func (f *fakeAuth) LoggedIn() bool { return f.loggedIn }

type fakeTasks struct {
	tasks []*models.Task
	err   error

	added     *models.NewTask
	completed *bool
	ref       string
	patch     *models.TaskPatch
	editedID  string
}

func (f *fakeTasks) first() *models.Task {
	if len(f.tasks) == 0 {
		return &models.Task{ID: "t-1"}
	}
	return f.tasks[0]
}

func (f *fakeTasks) Add(_ context.Context, t *models.NewTask) (*models.Task, error) {
	f.added = t
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: "11111111-aaaa", Title: t.Title}, nil
}

func (f *fakeTasks) List(context.Context) ([]*models.Task, error) {
	return f.tasks, f.err
}

func (f *fakeTasks) Get(_ context.Context, ref string) (*models.Task, error) {
	f.ref = ref
	if f.err != nil {
		return nil, f.err
	}
	return f.first(), nil
}

func (f *fakeTasks) SetCompleted(_ context.Context, ref string, completed bool) (*models.Task, error) {
	f.ref, f.completed = ref, &completed
	if f.err != nil {
		return nil, f.err
	}
	t := *f.first()
	t.Completed = completed
	return &t, nil
}

func (f *fakeTasks) Edit(_ context.Context, ref string, p *models.TaskPatch) (*models.Task, error) {
	f.editedID, f.patch = ref, p
	t := *f.first()
	if p.Title != nil {
		t.Title = *p.Title
	}
	return &t, nil
}

func (f *fakeTasks) Delete(_ context.Context, ref string) (*models.Task, error) {
	f.ref = ref
	if f.err != nil {
		return nil, f.err
	}
	return f.first(), nil
}

func (f *fakeTasks) Resolve(_ context.Context, ref string) (string, error) {
	return ref, f.err
}

var (
	_ services.AuthService = (*fakeAuth)(nil)
	_ services.TaskService = (*fakeTasks)(nil)
)

// newTestApp returns an App reading input from the given text and writing to
// the returned buffer.
func newTestApp(auth *fakeAuth, tasks *fakeTasks, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService: auth,
		taskService: tasks,
		reader:      bufio.NewReader(bytes.NewBufferString(input)),
		out:         &out,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
