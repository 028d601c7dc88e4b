package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Add(ctx context.Context, title string) error
	List(ctx context.Context) error
	Show(ctx context.Context, ref string) error
	Done(ctx context.Context, ref string) error
	Undo(ctx context.Context, ref string) error
	Edit(ctx context.Context, ref string) error
	Remove(ctx context.Context, ref string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: add [title], (l)ist, show <id>, done <id>, undo <id>, edit <id>, rm <id>, me, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the taskkeeper CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - add [title]    add a task; without a title, prompt for all fields
//	  - list | l       list tasks
//	  - show <id>      show a single task
//	  - done <id>      mark a task completed
//	  - undo <id>      mark a task not completed
//	  - edit <id>      change title, text, tags or due date
//	  - rm <id>        remove a task
//	  - me             show the current user
//	  - logout         log out
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "tk%s> ", statusFn())

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				fmt.Fprintln(w)
				return
			}
			continue
		}

		cmd, args := parts[0], parts[1:]
		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, w); err != nil {
			fmt.Fprintln(w, "Error:", describe(err))
		}

		if readErr != nil {
			fmt.Fprintln(w)
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, helpLoggedIn)
		} else {
			fmt.Fprintln(w, helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	withRef := map[string]func(context.Context, string) error{
		"show": a.Show,
		"done": a.Done,
		"undo": a.Undo,
		"edit": a.Edit,
		"rm":   a.Remove,
	}
	fn, needsRef := withRef[cmd]

	switch {
	case needsRef, cmd == "add", cmd == "list", cmd == "l", cmd == "me", cmd == "logout":
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
		return nil
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(w, "Not logged in. Use 'login' or 'register' first.")
		return nil
	}

	if needsRef {
		if len(args) != 1 {
			fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
			return nil
		}
		return fn(ctx, args[0])
	}

	switch cmd {
	case "add":
		return a.Add(ctx, strings.Join(args, " "))
	case "me":
		return a.Me(ctx)
	case "logout":
		return a.Logout(ctx)
	default:
		return a.List(ctx)
	}
}

// describe turns a command error into a message for the user.
func describe(err error) string {
	var verr *client.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, common.ErrAuth):
		return "invalid email or password"
	case errors.Is(err, client.ErrUnauthorized):
		return "session expired, please login again"
	case errors.Is(err, common.ErrNotFound):
		return "task not found"
	case errors.Is(err, services.ErrAmbiguousID):
		return "id prefix matches several tasks, type more characters"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}
