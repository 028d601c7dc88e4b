package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Text        *string    `json:"text"`
	Tags        *string    `json:"tags"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"`
	OwnerID     string     `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask holds the fields a client may set when creating a task.
type NewTask struct {
	Title   string
	Text    *string
	Tags    *string
	DueDate *time.Time
}

// TaskPatch is the allow-list of fields a client may change. Nil pointers
// leave the stored value untouched unless the matching Clear flag is set,
// in which case the column becomes null. Completed is not optional: the
// store always writes it, and CompletedAt follows it.
type TaskPatch struct {
	Title     *string
	Text      *string
	Tags      *string
	DueDate   *time.Time
	Completed bool

	ClearText    bool
	ClearTags    bool
	ClearDueDate bool
}

// IsTaskID reports whether id is well-formed enough to name a stored task.
func IsTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
