package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zentask/internal/commands"
	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/view"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setError(err)
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.session.Open(nil)
			m.session.SetTitle(a.Title)
			saved, err := m.session.Submit(m.ctx, m.tasks)
			if err != nil {
				return commands.Result{}, err
			}
			m.selectTask(saved.ID)
			return commands.Result{Message: fmt.Sprintf("added task: %s", saved.Title)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Criteria.Search = s.Text
			m.searchInput.SetValue(s.Text)
			m.clampCursor()
			if s.Text == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("searching for %q", s.Text)}, nil
		},
		Status: func(s commands.StatusArgs) (commands.Result, error) {
			m.Criteria.Status = s.Filter
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("status filter: %s", s.Filter)}, nil
		},
		Priority: func(p commands.PriorityArgs) (commands.Result, error) {
			m.Criteria.Priority = p.Filter
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("priority filter: %s", p.Filter)}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			m.Criteria.Sort = s.Key
			return commands.Result{Message: fmt.Sprintf("sorted by %s", s.Key)}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			location, err := m.exportTasks(e.Dir)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "exported tasks to " + location}, nil
		},
		Import: func(i commands.ImportArgs) (commands.Result, error) {
			m, follow = m.startImport(i.Path)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			theme := t.Theme
			if theme == "" {
				theme = m.Theme.Toggle()
			}
			m.Theme = theme
			if err := m.persistTheme(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s theme", theme)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.Criteria = view.DefaultCriteria()
			m.searchInput.SetValue("")
			m.clampCursor()
			return commands.Result{Message: "filters cleared"}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setStatus(res.Message, false)
	return m, follow
}

func (m Model) applyTheme(theme model.Theme) Model {
	m.Theme = theme
	if err := m.persistTheme(); err != nil {
		m.setError(err)
		return m
	}
	m.setStatus(fmt.Sprintf("%s theme", theme), false)
	return m
}

// persistTheme stores the current theme. The in-memory theme is kept even
// when the write fails.
func (m Model) persistTheme() error {
	if m.services == nil {
		return nil
	}
	return m.services.SetTheme(m.ctx, m.Theme)
}
