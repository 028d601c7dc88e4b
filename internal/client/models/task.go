package models

import (
	"fmt"
	"strings"
)

// DateLayout is how due dates are entered and shown in the CLI.
const DateLayout = "2006-01-02"

// Overview renders a single list line: status box, short id and title.
func (t *Task) Overview() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s  %s", mark, ShortID(t.ID), t.Title)
	if t.DueDate != nil {
		line += "  (due " + t.DueDate.Format(DateLayout) + ")"
	}
	return line
}

// Details renders every field of the task, one per line.
func (t *Task) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:        %s\n", t.ID)
	fmt.Fprintf(&b, "Title:     %s\n", t.Title)
	if t.Text != nil && *t.Text != "" {
		fmt.Fprintf(&b, "Text:      %s\n", *t.Text)
	}
	if t.Tags != nil && *t.Tags != "" {
		fmt.Fprintf(&b, "Tags:      %s\n", *t.Tags)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "Due:       %s\n", t.DueDate.Format(DateLayout))
	}
	if t.Completed && t.CompletedAt != nil {
		fmt.Fprintf(&b, "Completed: %s\n", t.CompletedAt.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(&b, "Completed: no\n")
	}
	fmt.Fprintf(&b, "Created:   %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	return b.String()
}

// ShortID is the first block of a UUID, enough to tell a user's tasks apart.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
