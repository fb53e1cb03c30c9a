package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the views react to. The main view keeps a text
// input focused, so its commands use ctrl chords instead of bare letters.
// Tab completes on the main view and moves focus on the settings page.
type keyMap struct {
	Quit       key.Binding
	Convert    key.Binding
	Retry      key.Binding
	Complete   key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	OpenDir    key.Binding
	Settings   key.Binding
	About      key.Binding
	Notes      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Accept     key.Binding
	Cancel     key.Binding
	Save       key.Binding
	Back       key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "Quit")),
	Convert:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Convert")),
	Retry:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "Convert")),
	Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Complete")),
	NextField:  key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "Next field")),
	PrevField:  key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "Prev field")),
	OpenDir:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "Open output dir")),
	Settings:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "Settings")),
	About:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "About")),
	Notes:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "Notes")),
	ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "Scroll log")),
	ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "Scroll log")),
	Accept:     key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter", "Ok")),
	Cancel:     key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "Cancel")),
	Save:       key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "Save")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Back")),
}

// mainHelp lists the bindings shown in the main view footer.
func (k keyMap) mainHelp() []key.Binding {
	return []key.Binding{k.Convert, k.Complete, k.PrevField, k.OpenDir, k.Settings, k.Notes, k.About, k.Quit}
}

// settingsHelp lists the bindings shown in the settings footer.
func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.Save, k.PrevField, k.NextField, k.Back}
}
