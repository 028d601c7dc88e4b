package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Me(ctx context.Context) error       { return f.record("me") }
func (f *fakeExec) List(ctx context.Context) error     { return f.record("list") }

func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) Add(ctx context.Context, title string) error {
	return f.record("add:" + title)
}

func (f *fakeExec) Show(ctx context.Context, ref string) error {
	return f.record("show:" + ref)
}

func (f *fakeExec) Done(ctx context.Context, ref string) error {
	return f.record("done:" + ref)
}

func (f *fakeExec) Undo(ctx context.Context, ref string) error {
	return f.record("undo:" + ref)
}

func (f *fakeExec) Edit(ctx context.Context, ref string) error {
	return f.record("edit:" + ref)
}

func (f *fakeExec) Remove(ctx context.Context, ref string) error {
	return f.record("rm:" + ref)
}

func runLines(exec *fakeExec, input string) string {
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return " (s)" }, rdr(input), &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(exec, "help\nlogin\nhelp\nadd buy  milk\nadd\nl\nlist\nshow 0b7f\ndone 0b7f\nundo 0b7f\nedit 0b7f\nrm 0b7f\nme\nlogout\nexit\nlist\n")

	assert.Equal(t, []string{
		"login", "add:buy milk", "add:", "list", "list",
		"show:0b7f", "done:0b7f", "undo:0b7f", "edit:0b7f", "rm:0b7f",
		"me", "logout",
	}, exec.calls)
	assert.Contains(t, out, helpLoggedOut)
	assert.Contains(t, out, helpLoggedIn)
	assert.Contains(t, out, "tk (s)> ")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_RequiresLogin(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(exec, "list\nshow abc\nadd x\n")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Not logged in")
}

func TestRunREPL_UsageUnknownAndEOF(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	out := runLines(exec, "show\ndone a b\nfoobar\n\n   \nquit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Usage: show <id>")
	assert.Contains(t, out, "Usage: done <id>")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	runLines(exec, "list")

	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	exec := &fakeExec{loggedIn: true, err: common.ErrNotFound}
	out := runLines(exec, "show zzz\n")

	assert.Contains(t, out, "Error: task not found")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&client.ValidationError{Fields: []models.FieldError{{Field: "title", Message: "is required"}}}, "title: is required"},
		{common.ErrAuth, "invalid email or password"},
		{client.ErrUnauthorized, "session expired, please login again"},
		{fmt.Errorf("wrapped: %w", common.ErrNotFound), "task not found"},
		{services.ErrAmbiguousID, "id prefix matches several tasks, type more characters"},
		{errors.Join(client.ErrUnavailable, errors.New("dial")), "server unavailable, try again later"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err))
	}
}
