// Package widget provides the two text-input implementations an input slot
// can be backed by: a rich one (the preferred fast path) and a plain one
// (the fallback). Both satisfy coord.Handle, so the coordinator can command
// either without knowing which is mounted.
package widget

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Input is the surface the TUI needs from either implementation. The
// Focus/Clear/IsFocused subset is exactly coord.Handle.
type Input interface {
	Focus() error
	Blur()
	Clear() error
	IsFocused() bool
	Value() string
	Update(msg tea.Msg) tea.Cmd
	View() string
}
