// Package tokens provides a PostgreSQL-backed repository for the session
// tokens held by each user. Membership in this table is what keeps a signed
// token valid: removing the row revokes it.
package tokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

// PostgresRepository stores tokens over dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends token to the user's token set. It is a single INSERT, so
// concurrent logins of the same user all persist.
func (r *PostgresRepository) Create(ctx context.Context, userID, scope, token string) error {
	query := `
		INSERT INTO user_tokens (user_id, scope, token)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, scope, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes exactly the given token of userID. Deleting a token that is
// already gone is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, userID, token string) error {
	query := `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND token = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
