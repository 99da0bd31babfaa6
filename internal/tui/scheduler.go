package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// deferredMsg delivers a scheduled coordinator callback on the update loop.
type deferredMsg struct {
	token string
}

// TickScheduler adapts coord.Scheduler to bubbletea. After stores the
// callback under a token and queues a tick request; the app drains the
// queue into tea.Tick commands after every coordinator call, and fires the
// stored callback when the tick message comes back. Everything stays on the
// single update goroutine, which is what the coordinator requires.
type TickScheduler struct {
	fns   map[string]func()
	queue []tickRequest
}

type tickRequest struct {
	token string
	d     time.Duration
}

func NewTickScheduler() *TickScheduler {
	return &TickScheduler{fns: make(map[string]func())}
}

func (s *TickScheduler) After(d time.Duration, fn func()) func() {
	token := uuid.NewString()
	s.fns[token] = fn
	s.queue = append(s.queue, tickRequest{token: token, d: d})
	return func() { delete(s.fns, token) }
}

// Drain converts queued requests into tea.Tick commands.
func (s *TickScheduler) Drain() []tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.queue))
	for _, req := range s.queue {
		token := req.token
		cmds = append(cmds, tea.Tick(req.d, func(time.Time) tea.Msg {
			return deferredMsg{token: token}
		}))
	}
	s.queue = nil
	return cmds
}

// Fire runs the callback for token, if it was not cancelled meanwhile.
func (s *TickScheduler) Fire(token string) {
	fn, ok := s.fns[token]
	if !ok {
		return
	}
	delete(s.fns, token)
	fn()
}
