package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/studyplan/internal/models"
)

type SubjectAddCmd struct {
	Name     string `arg:"" help:"Subject name."`
	Priority string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Color    string `short:"c" help:"Hex color for rendering, e.g. #3B82F6." default:"#3B82F6"`
}

func (c *SubjectAddCmd) Run(ctx *Context) error {
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return err
	}

	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return err
	}
	for _, existing := range subjects {
		if existing.Name == c.Name {
			return fmt.Errorf("subject %q already exists (ID: %s)", c.Name, existing.ID)
		}
	}

	now := NowRFC3339()
	subject := models.Subject{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Color:     c.Color,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := subject.Validate(); err != nil {
		return fmt.Errorf("invalid subject: %w", err)
	}

	if err := ctx.Store.AddSubject(subject); err != nil {
		return err
	}

	fmt.Printf("Added subject: %s (ID: %s)\n", subject.Name, subject.ID)
	return nil
}

type SubjectListCmd struct{}

func (c *SubjectListCmd) Run(ctx *Context) error {
	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return err
	}

	if len(subjects) == 0 {
		fmt.Println("No subjects yet. Add one with: studyplan subject add <name>")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %10s  %9s\n", "ID", "NAME", "PRIORITY", "TOTAL MIN", "COMPLETED")
	for _, subject := range subjects {
		fmt.Printf("%-36s  %-20s  %-8s  %10d  %9d\n",
			subject.ID, subject.Name, subject.Priority,
			subject.TotalStudyMinutes, subject.SessionsCompleted)
	}
	return nil
}

type SubjectEditCmd struct {
	Subject  string `arg:"" help:"Subject ID or name."`
	Name     string `help:"New subject name."`
	Priority string `short:"p" help:"New priority (low|medium|high)."`
	Color    string `short:"c" help:"New hex color."`
}

func (c *SubjectEditCmd) Run(ctx *Context) error {
	subject, err := FindSubject(ctx.Store, c.Subject)
	if err != nil {
		return err
	}

	if c.Name != "" {
		subject.Name = c.Name
	}
	if c.Priority != "" {
		priority, err := models.ParsePriority(c.Priority)
		if err != nil {
			return err
		}
		subject.Priority = priority
	}
	if c.Color != "" {
		subject.Color = c.Color
	}
	subject.UpdatedAt = NowRFC3339()

	if err := subject.Validate(); err != nil {
		return fmt.Errorf("invalid subject: %w", err)
	}

	if err := ctx.Store.UpdateSubject(subject); err != nil {
		return err
	}

	fmt.Printf("Updated subject: %s\n", subject.Name)
	return nil
}

type SubjectDeleteCmd struct {
	Subject string `arg:"" help:"Subject ID or name."`
	Yes     bool   `short:"y" help:"Skip confirmation."`
}

func (c *SubjectDeleteCmd) Run(ctx *Context) error {
	subject, err := FindSubject(ctx.Store, c.Subject)
	if err != nil {
		return err
	}

	sessions, err := ctx.Store.GetSessionsForSubject(subject.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete subject %q and its %d sessions? Re-run with --yes to confirm.\n",
			subject.Name, len(sessions))
		return nil
	}

	if err := ctx.Store.DeleteSubject(subject.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted subject %q and %d sessions\n", subject.Name, len(sessions))
	return nil
}
