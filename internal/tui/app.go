package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jask/dualinput/internal/config"
	"github.com/jask/dualinput/internal/coord"
	"github.com/jask/dualinput/internal/database/repository"
	"github.com/jask/dualinput/internal/widget"
)

const appName = "Dualinput"

// Slot ids, in registration order. The first one is where clear-all
// refocuses.
var slotIDs = []string{"primary", "secondary"}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	statusBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	slotBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeSlotStyle  = slotBoxStyle.BorderForeground(lipgloss.Color("205"))
	slotLabelStyle   = lipgloss.NewStyle().Bold(true)
	badgeRichStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badgePlainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badgeRewireStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type keyMap struct {
	Quit     key.Binding
	NextSlot key.Binding
	ClearAll key.Binding
	Remount  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		NextSlot: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch slot")),
		ClearAll: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear all")),
		Remount:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "remount slot, other impl")),
	}
}

// slotView is one mounted input slot: both implementations plus the
// availability the coordinator last reported. Which one renders is decided
// here, never by the widgets themselves.
type slotView struct {
	id     string
	rich   *widget.RichInput
	plain  *widget.PlainInput
	avail  coord.Availability
	forced bool // operator forced the fallback via remount
}

func (s *slotView) active() widget.Input {
	if s.avail == coord.Unavailable {
		return s.plain
	}
	return s.rich
}

// App embeds the coordinator: it mounts widgets, routes keys to the active
// slot, forwards text changes and renders whatever the availability state
// says.
type App struct {
	ctx      context.Context
	cfg      config.Config
	coord    *coord.Coordinator
	sched    *TickScheduler
	probe    *widget.Probe
	slots    []*slotView
	activeIx int
	keys     keyMap
	logger   *log.Logger
	journal  *repository.JournalRepo // nil when journaling is off
	status   string
	width    int
	quitting bool
}

// New wires the app. journal may be nil.
func New(ctx context.Context, cfg config.Config, logger *log.Logger, journal *repository.JournalRepo) *App {
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		sched:   NewTickScheduler(),
		probe:   widget.NewProbe(cfg.Widget.ForceFallback),
		keys:    newKeyMap(),
		logger:  logger,
		journal: journal,
		status:  "Ready",
	}
	a.coord = coord.New(coord.Config{
		ClearFocusDelay: cfg.Focus.ClearDelay(),
		Scheduler:       a.sched,
		Logger:          logger,
		Observer:        a.onAvailability,
		Sink:            a.onEvent,
	})
	for _, id := range slotIDs {
		a.slots = append(a.slots, &slotView{id: id})
		a.mount(len(a.slots)-1, false)
	}
	if len(a.slots) > 0 {
		_ = a.slots[0].active().Focus()
	}
	return a
}

// mount creates fresh widgets for slot i and runs one register/probe/report
// cycle. Re-mounting resets the slot's availability state machine.
func (a *App) mount(i int, forceFallback bool) {
	sv := a.slots[i]
	sv.forced = forceFallback
	sv.rich = widget.NewRichInput("type here", 32)
	sv.plain = widget.NewPlainInput("type here")
	sv.avail = coord.Unknown
	a.coord.RegisterSlot(sv.id, sv.rich, sv.plain)
	a.coord.ReportAvailability(sv.id, !forceFallback && a.probe.RichAvailable(sv.id))
}

func (a *App) onAvailability(slotID string, av coord.Availability) {
	for _, sv := range a.slots {
		if sv.id == slotID {
			sv.avail = av
			return
		}
	}
}

func (a *App) onEvent(e coord.Event) {
	a.status = fmt.Sprintf("%s %s", e.Kind, e.Slot)
	if e.Detail != "" {
		a.status += " (" + e.Detail + ")"
	}
	if a.journal == nil {
		return
	}
	err := a.journal.Append(a.ctx, repository.JournalEntry{
		ID:        e.ID,
		Kind:      string(e.Kind),
		Slot:      e.Slot,
		Detail:    e.Detail,
		CreatedAt: e.At,
	})
	if err != nil && a.logger != nil {
		a.logger.Warn("journal append failed", "err", err)
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deferredMsg:
		a.sched.Fire(msg.token)
		a.syncFocus()
		return a, tea.Batch(a.sched.Drain()...)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			a.coord.Close()
			return a, tea.Quit

		case key.Matches(msg, a.keys.NextSlot):
			a.focusSlot((a.activeIx + 1) % len(a.slots))
			return a, nil

		case key.Matches(msg, a.keys.ClearAll):
			a.coord.ClearAll()
			a.syncFocus()
			return a, tea.Batch(a.sched.Drain()...)

		case key.Matches(msg, a.keys.Remount):
			sv := a.slots[a.activeIx]
			a.mount(a.activeIx, !sv.forced)
			a.focusSlot(a.activeIx)
			return a, nil
		}

		sv := a.slots[a.activeIx]
		cmd := sv.active().Update(msg)
		a.coord.TextChanged(sv.id, sv.active().Value())
		a.syncFocus()
		return a, cmd
	}

	// non-key messages (cursor blink etc) go to the active widget
	if len(a.slots) > 0 {
		cmd := a.slots[a.activeIx].active().Update(msg)
		return a, cmd
	}
	return a, nil
}

// focusSlot moves user focus to slot i: everyone else blurs.
func (a *App) focusSlot(i int) {
	for j, sv := range a.slots {
		if j == i {
			continue
		}
		sv.rich.Blur()
		sv.plain.Blur()
	}
	a.activeIx = i
	if err := a.slots[i].active().Focus(); err != nil && a.logger != nil {
		a.logger.Warn("focus failed", "slot", a.slots[i].id, "err", err)
	}
}

// syncFocus realigns the active index after the coordinator issued focus
// commands of its own (auto-advance, deferred clear-all refocus).
func (a *App) syncFocus() {
	for i, sv := range a.slots {
		if i != a.activeIx && sv.active().IsFocused() {
			a.slots[a.activeIx].active().Blur()
			a.activeIx = i
			return
		}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	var sections []string
	sections = append(sections, titleStyle.Render(appName))

	for i, sv := range a.slots {
		label := slotLabelStyle.Render(sv.id)
		var badge string
		switch sv.avail {
		case coord.Available:
			badge = badgeRichStyle.Render("rich")
		case coord.Unavailable:
			badge = badgePlainStyle.Render("fallback")
		default:
			badge = badgeRewireStyle.Render("probing")
		}
		body := label + " · " + badge + "\n" + sv.active().View()
		style := slotBoxStyle
		if i == a.activeIx {
			style = activeSlotStyle
		}
		sections = append(sections, style.Render(body))
	}

	sections = append(sections, statusBarStyle.Render(a.status))
	sections = append(sections, helpStyle.Render(
		"tab switch · ctrl+l clear all · ctrl+t remount other impl · esc quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
