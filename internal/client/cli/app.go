package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	taskService services.TaskService
	email       string
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerAddr, c.RequestTimeout)

	return &App{
		config:      c,
		db:          db,
		authService: services.NewAuthService(api, db),
		taskService: services.NewTaskService(api),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores the saved session and serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	if err := a.restoreSession(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not restore session:", err)
	}

	fmt.Fprintln(a.out, "Welcome to taskkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

func (a *App) restoreSession(ctx context.Context) error {
	email, ok, err := a.authService.Restore(ctx)
	if err != nil || !ok {
		return err
	}
	a.email = email
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() || a.email == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.email)
}

// checkSession drops the saved session once the server stops accepting
// its token.
func (a *App) checkSession(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.email = ""
		if ferr := a.authService.Forget(ctx); ferr != nil {
			return errors.Join(err, ferr)
		}
	}
	return err
}
