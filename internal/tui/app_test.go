package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/dualinput/internal/config"
	"github.com/jask/dualinput/internal/coord"
	"github.com/jask/dualinput/internal/database"
	"github.com/jask/dualinput/internal/database/repository"
	"github.com/jask/dualinput/internal/widget"
)

func testConfig() config.Config {
	return config.Config{
		Focus: config.FocusConfig{ClearDelayMS: 10},
	}
}

func newTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	return New(context.Background(), cfg, nil, nil)
}

func sendText(a *App, s string) {
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg.Type = tea.KeySpace
		}
		_, _ = a.Update(msg)
	}
}

func TestTypingRoutesToActiveSlot(t *testing.T) {
	a := newTestApp(t, testConfig())
	sendText(a, "hello")
	if got := a.slots[0].active().Value(); got != "hello" {
		t.Fatalf("primary value = %q, want hello", got)
	}
	if got := a.slots[1].active().Value(); got != "" {
		t.Fatalf("secondary captured %q", got)
	}
}

func TestTabSwitchesSlots(t *testing.T) {
	a := newTestApp(t, testConfig())
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.activeIx != 1 {
		t.Fatalf("active slot = %d, want 1", a.activeIx)
	}
	if !a.slots[1].active().IsFocused() {
		t.Fatalf("secondary widget not focused after tab")
	}
	if a.slots[0].active().IsFocused() {
		t.Fatalf("primary widget still focused after tab")
	}
}

func TestAutoAdvanceRefocusesOtherSlot(t *testing.T) {
	a := newTestApp(t, testConfig())
	sendText(a, "hello")
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	sendText(a, "w")
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if a.activeIx != 0 {
		t.Fatalf("active slot = %d, want 0 after auto-advance", a.activeIx)
	}
	if !a.slots[0].active().IsFocused() {
		t.Fatalf("primary widget should hold focus after auto-advance")
	}
}

func TestClearAllClearsAndDefersRefocus(t *testing.T) {
	a := newTestApp(t, testConfig())
	sendText(a, "hello")
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	sendText(a, "world")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if cmd == nil {
		t.Fatalf("clear-all should schedule a tick command")
	}
	for _, sv := range a.slots {
		if got := sv.active().Value(); got != "" {
			t.Fatalf("slot %s value = %q after clear-all, want empty", sv.id, got)
		}
	}
	if a.slots[0].active().IsFocused() {
		t.Fatalf("refocus should be deferred, not synchronous")
	}

	if len(a.sched.fns) != 1 {
		t.Fatalf("pending callbacks = %d, want 1", len(a.sched.fns))
	}
	var token string
	for k := range a.sched.fns {
		token = k
	}
	_, _ = a.Update(deferredMsg{token: token})

	if a.activeIx != 0 || !a.slots[0].active().IsFocused() {
		t.Fatalf("first slot should be focused after the deferred callback")
	}
}

func TestForcedFallbackRendersPlain(t *testing.T) {
	cfg := testConfig()
	cfg.Widget.ForceFallback = []string{"secondary"}
	a := newTestApp(t, cfg)

	if got := a.slots[1].avail; got != coord.Unavailable {
		t.Fatalf("secondary availability = %s, want unavailable", got)
	}
	if _, ok := a.slots[1].active().(*widget.PlainInput); !ok {
		t.Fatalf("secondary should render the fallback widget, got %T", a.slots[1].active())
	}
	if _, ok := a.slots[0].active().(*widget.RichInput); !ok {
		t.Fatalf("primary should render the rich widget, got %T", a.slots[0].active())
	}
}

func TestRemountFlipsImplementation(t *testing.T) {
	a := newTestApp(t, testConfig())
	if a.slots[0].avail != coord.Available {
		t.Fatalf("primary starts %s, want available", a.slots[0].avail)
	}

	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if a.slots[0].avail != coord.Unavailable {
		t.Fatalf("after remount availability = %s, want unavailable", a.slots[0].avail)
	}
	if !a.slots[0].plain.IsFocused() {
		t.Fatalf("fallback widget should be focused after remount")
	}

	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if a.slots[0].avail != coord.Available {
		t.Fatalf("after second remount availability = %s, want available", a.slots[0].avail)
	}
}

func TestEventsReachJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	migrations, err := filepath.Abs("../database/migrations")
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	if err := database.RunMigrations(dbPath, migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewJournalRepo(db)

	ctx := context.Background()
	a := New(ctx, testConfig(), nil, repo)
	sendText(a, "x")
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	entries, err := repo.List(ctx, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("journal is empty after coordinator activity")
	}
	kinds := make(map[string]bool)
	for _, e := range entries {
		kinds[e.Kind] = true
	}
	for _, want := range []string{"registered", "availability", "clear"} {
		if !kinds[want] {
			t.Fatalf("journal missing %q events, got %v", want, kinds)
		}
	}
}
