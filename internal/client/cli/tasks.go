package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// Add creates a task. With a title on the command line only the title is
// sent; otherwise every field is prompted for.
func (a *App) Add(ctx context.Context, title string) error {
	nt := &models.NewTask{Title: title}

	if title == "" {
		var err error
		if nt.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
			return err
		}
		text, err := getMultiline(a.reader, "Text (optional)", a.out)
		if err != nil {
			return err
		}
		nt.Text = optional(text)

		tags, err := getSimpleText(a.reader, "Tags (optional)", a.out)
		if err != nil {
			return err
		}
		nt.Tags = optional(tags)

		if nt.DueDate, err = a.askDueDate("Due date YYYY-MM-DD (optional)"); err != nil {
			return err
		}
	}

	task, err := a.taskService.Add(ctx, nt)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprintln(a.out, "Added", task.Overview())
	return nil
}

func (a *App) List(ctx context.Context) error {
	list, err := a.taskService.List(ctx)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}
	for _, t := range list {
		fmt.Fprintln(a.out, t.Overview())
	}
	return nil
}

func (a *App) Show(ctx context.Context, ref string) error {
	task, err := a.taskService.Get(ctx, ref)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprint(a.out, task.Details())
	return nil
}

func (a *App) Done(ctx context.Context, ref string) error {
	return a.setCompleted(ctx, ref, true)
}

func (a *App) Undo(ctx context.Context, ref string) error {
	return a.setCompleted(ctx, ref, false)
}

func (a *App) setCompleted(ctx context.Context, ref string, completed bool) error {
	task, err := a.taskService.SetCompleted(ctx, ref, completed)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprintln(a.out, task.Overview())
	return nil
}

// Edit prompts for each editable field showing the current value. An empty
// answer keeps the field as it is.
func (a *App) Edit(ctx context.Context, ref string) error {
	current, err := a.taskService.Get(ctx, ref)
	if err != nil {
		return a.checkSession(ctx, err)
	}

	var p models.TaskPatch

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	p.Title = optional(title)

	text, err := getSimpleText(a.reader, fmt.Sprintf("Text [%s]", deref(current.Text)), a.out)
	if err != nil {
		return err
	}
	p.Text = optional(text)

	tags, err := getSimpleText(a.reader, fmt.Sprintf("Tags [%s]", deref(current.Tags)), a.out)
	if err != nil {
		return err
	}
	p.Tags = optional(tags)

	due := ""
	if current.DueDate != nil {
		due = current.DueDate.Format(models.DateLayout)
	}
	if p.DueDate, err = a.askDueDate(fmt.Sprintf("Due date [%s]", due)); err != nil {
		return err
	}

	task, err := a.taskService.Edit(ctx, current.ID, &p)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprintln(a.out, "Updated", task.Overview())
	return nil
}

func (a *App) Remove(ctx context.Context, ref string) error {
	task, err := a.taskService.Delete(ctx, ref)
	if err != nil {
		return a.checkSession(ctx, err)
	}
	fmt.Fprintln(a.out, "Removed", task.Overview())
	return nil
}

// askDueDate reads an optional date in local time. Empty input gives nil.
func (a *App) askDueDate(prompt string) (*time.Time, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return nil, err
	}
	d, err := time.ParseInLocation(models.DateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q, use YYYY-MM-DD", s)
	}
	return &d, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
