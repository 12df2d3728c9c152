package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Clear  key.Binding
	Save   key.Binding
	Edit   key.Binding
	New    key.Binding
	Quit   key.Binding
	Force  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "predict")),
		Clear:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear form")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save HTML report")),
		Edit:   key.NewBinding(key.WithKeys("e", "esc"), key.WithHelp("e", "edit profile")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new profile")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:  key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) formBindings() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Clear, k.Force}
}

func (k keyMap) resultBindings() []key.Binding {
	return []key.Binding{k.Save, k.Edit, k.New, k.Quit}
}
