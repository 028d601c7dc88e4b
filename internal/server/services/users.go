// Package services contains server-side business logic. UserService handles
// registration, login, logout and resolving a presented token to its user;
// TaskService implements owner-scoped task operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Session is what register and login hand back: the account and the token
// that was just added to its token set.
type Session struct {
	User  *models.User
	Token string
}

type UserService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	hasher         *auth.PasswordHasher
	issuer         *auth.TokenIssuer
	storageTimeout time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:             db,
		repomanager:    m,
		hasher:         hasher,
		issuer:         auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenValidityDuration),
		storageTimeout: cfg.StorageTimeout,
	}
}

// Register creates the account and its first token in one transaction.
// A taken email is reported as a validation error on the email field.
func (s *UserService) Register(ctx context.Context, email, password string) (*Session, error) {
	creds := &models.Credentials{Email: email, Password: password}
	if err := models.ValidateNewUser(creds); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	session := &Session{}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{Email: creds.Email, PasswordHash: hash})
		if err != nil {
			return err
		}
		token, err := s.issuer.Issue(user.ID)
		if err != nil {
			return fmt.Errorf("error issuing token: %w", err)
		}
		if err := s.repomanager.Tokens(tx).Create(ctx, user.ID, common.AuthScope, token); err != nil {
			return err
		}
		session.User, session.Token = user, token
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, models.ValidationErrors{{Field: "email", Message: creds.Email + " is already registered"}}
		}
		return nil, dbx.Classify(err)
	}
	return session, nil
}

// Login verifies the credentials and appends a new token to the user's set;
// tokens held by other devices stay valid. Unknown email and wrong password
// both yield common.ErrAuth; a context that ends while waiting for a hashing
// worker is returned as is.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)

	lookupCtx, cancel := storageContext(ctx, s.storageTimeout)
	user, err := s.repomanager.Users(s.db).GetUserByEmail(lookupCtx, email)
	cancel()
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			if err := s.hasher.Burn(ctx, password); err != nil {
				return nil, fmt.Errorf("error verifying password: %w", err)
			}
			return nil, common.ErrAuth
		}
		return nil, dbx.Classify(err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrAuth
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	ctx, cancel = storageContext(ctx, s.storageTimeout)
	defer cancel()
	if err := s.repomanager.Tokens(s.db).Create(ctx, user.ID, common.AuthScope, token); err != nil {
		return nil, dbx.Classify(err)
	}
	return &Session{User: user, Token: token}, nil
}

// Logout removes exactly the presented token. Repeating it is harmless.
func (s *UserService) Logout(ctx context.Context, userID, token string) error {
	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	if err := s.repomanager.Tokens(s.db).Delete(ctx, userID, token); err != nil {
		return dbx.Classify(err)
	}
	return nil
}

// Authenticate resolves a presented token to its user. The signature must
// verify and the token must still be in the user's token set; anything else
// is common.ErrUnauthenticated.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	userID, err := s.issuer.Validate(token)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrUnauthenticated
	}

	ctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByToken(ctx, userID, common.AuthScope, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, dbx.Classify(err)
	}
	return user, nil
}
