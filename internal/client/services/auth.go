// Package services contains application services for the taskkeeper CLI.
// This file defines the session service: register, login and logout against
// the server, and keeping the session token in the local database so the CLI
// stays logged in across runs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Restore: load a saved session token into the client, if any.
//   - Register / Login: authenticate against the server and save the session.
//   - Logout: revoke the token on the server and drop the saved session.
//   - Me: return the current user; a rejected token drops the saved session.
//   - Forget: drop the saved session without calling the server.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Restore(ctx context.Context) (email string, ok bool, err error)
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Forget(ctx context.Context) error
	LoggedIn() bool
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) LoggedIn() bool {
	return a.client.Token() != ""
}

// Restore puts the saved token, if there is one, back into the client.
func (a *authService) Restore(ctx context.Context) (string, bool, error) {
	repo := a.getMetadataRepo(a.db)

	token, err := repo.Get(ctx, metadata.KeyToken)
	if errors.Is(err, common.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	email, err := repo.Get(ctx, metadata.KeyEmail)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return "", false, err
	}

	a.client.SetToken(token)
	return email, true, nil
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	u, err := a.client.Register(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	if err := a.saveSession(ctx, u.Email); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	u, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	if err := a.saveSession(ctx, u.Email); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

// saveSession stores the client's current token and the user's email in a
// single transaction.
func (a *authService) saveSession(ctx context.Context, email string) error {
	token := a.client.Token()
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, metadata.KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyEmail, email)
	})
}

// Logout revokes the token server-side. A token the server no longer
// accepts is as good as revoked, so the local session is dropped either way.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	return a.Forget(ctx)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	u, err := a.client.Me(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		if derr := a.Forget(ctx); derr != nil {
			return nil, errors.Join(err, derr)
		}
	}
	return u, err
}

func (a *authService) Forget(ctx context.Context) error {
	a.client.SetToken("")
	return a.getMetadataRepo(a.db).Delete(ctx, metadata.KeyToken, metadata.KeyEmail)
}
