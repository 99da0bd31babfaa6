package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jask/dualinput/internal/config"
	"github.com/jask/dualinput/internal/database"
	"github.com/jask/dualinput/internal/database/repository"
	"github.com/jask/dualinput/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fatal("config: %v", err)
	}

	logger := newLogger(cfg.Log)

	var journal *repository.JournalRepo
	if cfg.Journal.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
			fatal("mkdir journal dir: %v", err)
		}
		if err := database.RunMigrations(cfg.Journal.Path, "internal/database/migrations"); err != nil {
			fatal("migrate: %v", err)
		}
		db, err := database.Open(cfg.Journal.Path)
		if err != nil {
			fatal("open journal db: %v", err)
		}
		defer db.Close()
		journal = repository.NewJournalRepo(db)
	}

	if len(os.Args) > 1 && os.Args[1] == "journal" {
		dumpJournal(ctx, journal)
		return
	}

	app := tui.New(ctx, cfg, logger, journal)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("run: %v", err)
	}
}

// newLogger writes diagnostics to the configured file so they never bleed
// into the terminal the TUI owns. If the file cannot be opened, logging is
// silently disabled rather than corrupting the screen.
func newLogger(cfg config.LogConfig) *log.Logger {
	var w io.Writer = io.Discard
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w = f
			}
		}
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

func dumpJournal(ctx context.Context, journal *repository.JournalRepo) {
	if journal == nil {
		fatal("journal is disabled; set journal.enabled = true or DUALINPUT_JOURNAL_ENABLED=true")
	}
	entries, err := journal.List(ctx, 50)
	if err != nil {
		fatal("list journal: %v", err)
	}
	for _, e := range entries {
		detail := e.Detail
		if detail != "" {
			detail = " (" + detail + ")"
		}
		fmt.Printf("%s  %-12s %-10s%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Slot, detail)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
