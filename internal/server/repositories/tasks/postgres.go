// Package tasks provides the PostgreSQL-backed task store. All reads and
// writes are filtered by owner in the same statement that touches the row.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

const taskColumns = `id, title, text, tags, completed, due_date, completed_at, owner_id, created_at, updated_at`

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(&t.ID, &t.Title, &t.Text, &t.Tags, &t.Completed,
		&t.DueDate, &t.CompletedAt, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// single runs a query expected to return at most one task row.
func (r *PostgresRepository) single(ctx context.Context, query string, args ...any) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// validID keeps malformed ids away from the database.
func validID(id string) bool {
	return models.IsTaskID(id)
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID string, task *models.NewTask) (*models.Task, error) {
	query := `
		INSERT INTO tasks (owner_id, title, text, tags, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		ownerID, task.Title, task.Text, task.Tags, task.DueDate))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// ListByOwner returns the owner's tasks in insertion order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE owner_id = $1
		ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1 AND owner_id = $2`

	return r.single(ctx, query, id, ownerID)
}

// UpdateByIDAndOwner applies patch in one conditional statement. Nil fields
// keep their stored value unless their Clear flag is set. Completed is
// always written: when it is true completed_at becomes now, otherwise it is
// cleared.
func (r *PostgresRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch *models.TaskPatch, now time.Time) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}

	var completedAt *time.Time
	if patch.Completed {
		completedAt = &now
	}

	query := `
		UPDATE tasks SET
			title = COALESCE($3, title),
			text = CASE WHEN $10 THEN NULL ELSE COALESCE($4, text) END,
			tags = CASE WHEN $11 THEN NULL ELSE COALESCE($5, tags) END,
			due_date = CASE WHEN $12 THEN NULL ELSE COALESCE($6, due_date) END,
			completed = $7,
			completed_at = $8,
			updated_at = $9
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns

	return r.single(ctx, query, id, ownerID,
		patch.Title, patch.Text, patch.Tags, patch.DueDate,
		patch.Completed, completedAt, now,
		patch.ClearText, patch.ClearTags, patch.ClearDueDate)
}

// DeleteByIDAndOwner removes the task and returns it as it was.
func (r *PostgresRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns

	return r.single(ctx, query, id, ownerID)
}
