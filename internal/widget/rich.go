package widget

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RichInput wraps bubbles' textinput: placeholder, horizontal scrolling,
// blinking cursor. This is the preferred implementation for every slot.
//
// Cursor blink is driven by the host program scheduling textinput.Blink at
// init, so Focus can stay on the plain Handle signature.
type RichInput struct {
	model textinput.Model
}

func NewRichInput(placeholder string, width int) *RichInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = width
	return &RichInput{model: ti}
}

func (r *RichInput) Focus() error {
	r.model.Focus()
	return nil
}

func (r *RichInput) Blur() {
	r.model.Blur()
}

func (r *RichInput) Clear() error {
	r.model.Reset()
	return nil
}

func (r *RichInput) IsFocused() bool { return r.model.Focused() }

func (r *RichInput) Value() string { return r.model.Value() }

func (r *RichInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.model, cmd = r.model.Update(msg)
	return cmd
}

func (r *RichInput) View() string { return r.model.View() }
