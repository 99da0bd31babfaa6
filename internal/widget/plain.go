package widget

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	plainPromptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	plainPlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	plainCursorStyle      = lipgloss.NewStyle().Reverse(true)
)

// PlainInput is the fallback implementation: append/backspace editing, no
// cursor movement, no blink. It must never depend on the rich path.
type PlainInput struct {
	prompt      string
	placeholder string
	value       []rune
	focused     bool
	maxLen      int
}

func NewPlainInput(placeholder string) *PlainInput {
	return &PlainInput{
		prompt:      "> ",
		placeholder: placeholder,
		maxLen:      256,
	}
}

func (p *PlainInput) Focus() error {
	p.focused = true
	return nil
}

func (p *PlainInput) Blur() { p.focused = false }

func (p *PlainInput) Clear() error {
	p.value = p.value[:0]
	return nil
}

func (p *PlainInput) IsFocused() bool { return p.focused }

func (p *PlainInput) Value() string { return string(p.value) }

func (p *PlainInput) Update(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.Type {
	case tea.KeyBackspace:
		if len(p.value) > 0 {
			p.value = p.value[:len(p.value)-1]
		}
	case tea.KeySpace:
		p.insert(' ')
	case tea.KeyRunes:
		for _, r := range key.Runes {
			p.insert(r)
		}
	}
	return nil
}

func (p *PlainInput) insert(r rune) {
	if len(p.value) >= p.maxLen {
		return
	}
	p.value = append(p.value, r)
}

func (p *PlainInput) View() string {
	var b strings.Builder
	b.WriteString(plainPromptStyle.Render(p.prompt))
	if len(p.value) == 0 && !p.focused {
		b.WriteString(plainPlaceholderStyle.Render(p.placeholder))
		return b.String()
	}
	b.WriteString(string(p.value))
	if p.focused {
		b.WriteString(plainCursorStyle.Render(" "))
	}
	return b.String()
}
