package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevQuestion key.Binding
	NextQuestion key.Binding
	NextGuide    key.Binding
	PrevGuide    key.Binding
	Select       key.Binding
	Submit       key.Binding
	Retake       key.Binding
	Back         key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	Quit         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevQuestion: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev question")),
		NextQuestion: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next question")),
		NextGuide:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next guide")),
		PrevGuide:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev guide")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Submit:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
		Retake:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retake")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine joins the short help of the given bindings.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
