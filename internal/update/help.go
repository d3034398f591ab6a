package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/zentask/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeForm:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next / previous field"},
			{Key: "ctrl+p", Action: "cycle priority"},
			{Key: "ctrl+t", Action: "cycle status"},
			{Key: "ctrl+s", Action: "save task"},
			{Key: "esc", Action: "cancel"},
		}
	case ModeSearch:
		return []KeyBinding{
			{Key: "type", Action: "filter by title or description"},
			{Key: "enter/esc", Action: "back to the list"},
		}
	case ModeConfirmDelete, ModeConfirmImport:
		return []KeyBinding{
			{Key: "y", Action: "confirm"},
			{Key: "n/esc", Action: "cancel"},
		}
	case ModeImportPath:
		return []KeyBinding{
			{Key: "enter", Action: "read file"},
			{Key: "esc", Action: "cancel"},
		}
	default:
		return []KeyBinding{
			{Key: m.Keys.Down + "/" + m.Keys.Up, Action: "move cursor"},
			{Key: m.Keys.Add, Action: "add task"},
			{Key: m.Keys.Edit + "/enter", Action: "edit task"},
			{Key: m.Keys.Delete, Action: "delete task"},
			{Key: m.Keys.CycleStatus, Action: "cycle status"},
			{Key: m.Keys.Search, Action: "search"},
			{Key: m.Keys.StatusFilter, Action: "cycle status filter"},
			{Key: m.Keys.PriorityFilter, Action: "cycle priority filter"},
			{Key: m.Keys.Sort, Action: "toggle sort"},
			{Key: m.Keys.Theme, Action: "toggle theme"},
			{Key: m.Keys.Export, Action: "export tasks.json"},
			{Key: m.Keys.Import, Action: "import from file"},
			{Key: m.Keys.Palette, Action: "command palette"},
			{Key: m.Keys.Help, Action: "toggle help"},
			{Key: m.Keys.Quit, Action: "quit"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	bindings := m.modeBindings()
	out := make([]key.Binding, 0, len(bindings))
	for _, kb := range bindings {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
