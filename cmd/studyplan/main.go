package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/errors"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/scheduler"
	"github.com/julianstephens/studyplan/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. Paths ending in .json use the JSON backend, everything else SQLite." type:"string" default:"~/.config/studyplan/studyplan.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    cli.InitCmd   `cmd:"" help:"Initialize studyplan storage."`
	Doctor  cli.DoctorCmd `cmd:"" help:"Run health checks on stored data."`
	Tui     cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Plan    cli.PlanCmd   `cmd:"" help:"Generate a daily study schedule."`
	Week    cli.WeekCmd   `cmd:"" help:"Generate a weekly study schedule."`
	Stats   cli.StatsCmd  `cmd:"" help:"Show study statistics and streaks."`
	Subject struct {
		Add    cli.SubjectAddCmd    `cmd:"" help:"Add a new subject."`
		List   cli.SubjectListCmd   `cmd:"" help:"List all subjects."`
		Edit   cli.SubjectEditCmd   `cmd:"" help:"Edit an existing subject."`
		Delete cli.SubjectDeleteCmd `cmd:"" help:"Delete a subject and its sessions."`
	} `cmd:"" help:"Manage subjects."`
	Session struct {
		Add      cli.SessionAddCmd      `cmd:"" help:"Add a new study session."`
		List     cli.SessionListCmd     `cmd:"" help:"List study sessions."`
		Start    cli.SessionStartCmd    `cmd:"" help:"Mark a session as in progress."`
		Complete cli.SessionCompleteCmd `cmd:"" help:"Complete a session and record progress."`
		Skip     cli.SessionSkipCmd     `cmd:"" help:"Skip a session."`
	} `cmd:"" help:"Manage study sessions."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Prefs struct {
		Show cli.PrefsShowCmd `cmd:"" help:"Show scheduling preferences." default:"1"`
		Set  cli.PrefsSetCmd  `cmd:"" help:"Set a scheduling preference."`
	} `cmd:"" help:"Manage scheduling preferences."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studyplan"),
		kong.Description("Study session planner with priority-based scheduling"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	configPath := expandPath(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if strings.HasSuffix(configPath, ".json") {
		store = storage.NewJSONStore(configPath)
	} else {
		store = storage.NewSQLiteStore(configPath)
	}

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return home + path[1:]
		}
	}
	return path
}
