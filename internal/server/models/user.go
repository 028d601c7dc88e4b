// Package models defines server-side data models persisted in the database
// together with the validation applied before any store mutation.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server: it is
// excluded from JSON.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
