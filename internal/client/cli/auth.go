package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// Register prompts for an email and password and creates a new account.
// The new session is saved, so the user is logged in right away.
func (a *App) Register(ctx context.Context) error {
	u, err := a.withCredentials(ctx, a.authService.Register)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered as %s\n", u.Email)
	return nil
}

// Login prompts for credentials and opens a new session. A previous session
// of this CLI is replaced but stays valid on the server.
func (a *App) Login(ctx context.Context) error {
	u, err := a.withCredentials(ctx, a.authService.Login)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

func (a *App) withCredentials(ctx context.Context,
	fn func(ctx context.Context, email string, password []byte) (*models.User, error)) (*models.User, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	u, err := fn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.email = u.Email
	return u, nil
}

// Logout revokes the current token and forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Me prints the user the current session belongs to.
func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	a.email = u.Email
	fmt.Fprintf(a.out, "ID:    %s\nEmail: %s\n", u.ID, u.Email)
	return nil
}
