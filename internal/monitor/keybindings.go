package monitor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/uf46yr/htop/internal/render"
)

// keyMap holds the bindings the monitor reacts to.
type keyMap struct {
	ToggleDetail key.Binding
	CycleSort    key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	ToggleDetail: key.NewBinding(
		key.WithKeys("d", "D"),
		key.WithHelp("d", "details"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("s", "S"),
		key.WithHelp("s", "sort"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleDetail, k.CycleSort, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// plainKeyMap is what works in plain output: no key is read, but Ctrl+C
// still interrupts the process.
type plainKeyMap struct {
	Interrupt key.Binding
}

var plainKeys = plainKeyMap{
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k plainKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Interrupt}
}

// FullHelp implements help.KeyMap.
func (k plainKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// matches reports whether a key read from a sink triggers b.
func matches(k render.Key, b key.Binding) bool {
	return key.Matches(k, b)
}

// footerHints renders the short help as unstyled text; the footer cells
// carry their own style.
func footerHints(k help.KeyMap) string {
	h := help.New()
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		Ellipsis:       plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
	h.ShortSeparator = "  "
	return h.ShortHelpView(k.ShortHelp())
}
