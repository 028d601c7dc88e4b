// Package models holds the client-side view of the taskkeeper API payloads.
package models

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

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

type NewTask struct {
	Title   string     `json:"title"`
	Text    *string    `json:"text,omitempty"`
	Tags    *string    `json:"tags,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// TaskPatch is sent as-is. The server resets completion when Completed is
// false, so callers editing other fields must carry the current value over.
type TaskPatch struct {
	Title     *string    `json:"title,omitempty"`
	Text      *string    `json:"text,omitempty"`
	Tags      *string    `json:"tags,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `json:"completed"`
}

// FieldError is one entry of a 400 validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
