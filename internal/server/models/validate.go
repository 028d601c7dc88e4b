package models

import (
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

const (
	// PasswordMinLength is the shortest accepted plaintext password.
	PasswordMinLength = 6
	// PasswordMaxLength is bcrypt's input limit in bytes.
	PasswordMaxLength = 72
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the typed result of a failed validation. It matches
// common.ErrValidation under errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == common.ErrValidation
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Credentials is the register/login input.
type Credentials struct {
	Email    string
	Password string
}

// ValidateNewUser trims the email in place and checks both fields.
func ValidateNewUser(c *Credentials) error {
	var errs ValidationErrors

	c.Email = strings.TrimSpace(c.Email)
	switch {
	case c.Email == "":
		errs = append(errs, FieldError{Field: "email", Message: "is required"})
	case validate.Var(c.Email, "email") != nil:
		errs = append(errs, FieldError{Field: "email", Message: c.Email + " is not a valid email"})
	}

	switch {
	case len(c.Password) < PasswordMinLength:
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 6 characters"})
	case len(c.Password) > PasswordMaxLength:
		errs = append(errs, FieldError{Field: "password", Message: "must be at most 72 bytes"})
	}

	return errs.orNil()
}

// ValidateNewTask trims the text fields in place and requires a title.
func ValidateNewTask(t *NewTask) error {
	var errs ValidationErrors

	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	}
	t.Text = trimPtr(t.Text)
	t.Tags = trimPtr(t.Tags)

	return errs.orNil()
}

// ValidateTaskPatch trims the text fields in place. A title, when present,
// must not be blank.
func ValidateTaskPatch(p *TaskPatch) error {
	var errs ValidationErrors

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			errs = append(errs, FieldError{Field: "title", Message: "must not be empty"})
		}
		p.Title = &title
	}
	p.Text = trimPtr(p.Text)
	p.Tags = trimPtr(p.Tags)

	return errs.orNil()
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
