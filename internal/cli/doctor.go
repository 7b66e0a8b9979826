package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/studyplan/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running health checks...")
	problems := 0

	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("  [FAIL] storage file: %v\n", err)
		problems++
	} else {
		fmt.Printf("  [ OK ] storage file: %s\n", path)
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		fmt.Printf("  [FAIL] preferences: %v\n", err)
		problems++
	} else if result := validation.New().ValidatePreferences(prefs); result.HasConflicts() {
		fmt.Printf("  [FAIL] preferences:\n")
		for _, conflict := range result.Conflicts {
			fmt.Printf("         - %s\n", conflict.Description)
		}
		problems += len(result.Conflicts)
	} else {
		fmt.Println("  [ OK ] preferences")
	}

	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		fmt.Printf("  [FAIL] subjects: %v\n", err)
		problems++
	} else if result := validation.New().ValidateSubjects(subjects); result.HasConflicts() {
		for _, conflict := range result.Conflicts {
			fmt.Printf("  [WARN] subject: %s\n", conflict.Description)
		}
		problems += len(result.Conflicts)
	} else {
		fmt.Printf("  [ OK ] %d subjects\n", len(subjects))
	}

	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		fmt.Printf("  [FAIL] sessions: %v\n", err)
		problems++
	} else if result := validation.New().ValidateSessions(sessions, subjects, time.Now()); result.HasConflicts() {
		for _, conflict := range result.Conflicts {
			fmt.Printf("  [WARN] session: %s\n", conflict.Description)
		}
		problems += len(result.Conflicts)
	} else {
		fmt.Printf("  [ OK ] %d sessions\n", len(sessions))
	}

	history, err := ctx.Store.GetAllProgress()
	if err != nil {
		fmt.Printf("  [FAIL] progress history: %v\n", err)
		problems++
	} else {
		subjectIDs := make(map[string]bool, len(subjects))
		for _, subject := range subjects {
			subjectIDs[subject.ID] = true
		}
		orphans := 0
		for _, entry := range history {
			if !subjectIDs[entry.SubjectID] {
				orphans++
			}
		}
		if orphans > 0 {
			// Orphaned history is expected after a subject delete and stays
			// usable for streak computation, so it's informational only.
			fmt.Printf("  [ OK ] %d progress entries (%d from deleted subjects)\n", len(history), orphans)
		} else {
			fmt.Printf("  [ OK ] %d progress entries\n", len(history))
		}
	}

	if problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", problems)
	}
	fmt.Println("All checks passed.")
	return nil
}
