package update

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zentask/internal/view"
	"github.com/sandeepkv93/zentask/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch m.Mode {
		case ModeForm:
			return m.handleFormKey(typed)
		case ModeSearch:
			return m.handleSearchKey(typed), nil
		case ModeConfirmDelete:
			return m.handleConfirmDeleteKey(typed), nil
		case ModeImportPath:
			return m.handleImportPathKey(typed)
		case ModeConfirmImport:
			return m.handleConfirmImportKey(typed), nil
		default:
			return m.handleListKey(typed)
		}
	case tea.WindowSizeMsg:
		width := typed.Width/2 - 16
		if width > 20 {
			m.progressBar.Width = width
		}
		return m, nil
	case ImportFileReadMsg:
		return m.onImportFileRead(typed), nil
	case SetStatusMsg:
		m.setStatus(typed.Text, typed.IsError)
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case m.Keys.Down, "down":
		if m.Cursor < len(m.visibleTasks())-1 {
			m.Cursor++
		}
	case m.Keys.Up, "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case m.Keys.Add:
		m = m.openForm(nil)
	case m.Keys.Edit, "enter":
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m, nil
		}
		m = m.openForm(&task)
	case m.Keys.Delete:
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m, nil
		}
		m.pendingDeleteID = task.ID
		m.Mode = ModeConfirmDelete
	case m.Keys.CycleStatus:
		m = m.cycleSelectedStatus()
	case m.Keys.Search:
		m.Mode = ModeSearch
		m.searchInput.Focus()
	case m.Keys.StatusFilter:
		m.Criteria.Status = view.NextStatusFilter(m.Criteria.Status)
		m.clampCursor()
	case m.Keys.PriorityFilter:
		m.Criteria.Priority = view.NextPriorityFilter(m.Criteria.Priority)
		m.clampCursor()
	case m.Keys.Sort:
		m.Criteria.Sort = view.ToggleSort(m.Criteria.Sort)
	case m.Keys.Theme:
		m = m.applyTheme(m.Theme.Toggle())
	case m.Keys.Export:
		location, err := m.exportTasks("")
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("exported tasks to "+location, false)
	case m.Keys.Import:
		m.Mode = ModeImportPath
		m.importInput.SetValue("")
		m.importInput.Focus()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc", "enter":
		m.Mode = ModeList
		m.searchInput.Blur()
		return m
	}
	m.searchInput, _ = m.searchInput.Update(msg)
	m.Criteria.Search = m.searchInput.Value()
	m.clampCursor()
	return m
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) Model {
	switch strings.ToLower(msg.String()) {
	case "y":
		id := m.pendingDeleteID
		m.pendingDeleteID = ""
		m.Mode = ModeList
		if err := m.tasks.Delete(m.ctx, id); err != nil {
			m.setError(err)
			return m
		}
		m.clampCursor()
		m.setStatus("task deleted", false)
	case "n", "esc":
		m.pendingDeleteID = ""
		m.Mode = ModeList
		m.Status = StatusBar{Text: "delete cancelled"}
	}
	return m
}

func (m Model) cycleSelectedStatus() Model {
	task, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	next := task.Status.Next()
	if err := m.tasks.SetStatus(m.ctx, task.ID, next); err != nil {
		m.setError(err)
		return m
	}
	m.selectTask(task.ID)
	m.setStatus(fmt.Sprintf("%s -> %s", task.Title, next), false)
	return m
}

func (m Model) exportTasks(dir string) (string, error) {
	if m.services == nil {
		return "", errors.New("export is not available")
	}
	if dir == "" {
		return m.services.Export(m.ctx)
	}
	return m.services.ExportTo(m.ctx, dir)
}

func readImportFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return ImportFileReadMsg{Path: path, Data: data, Err: err}
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	dark := m.Theme.IsDark()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := strings.Join([]string{
		m.renderDashboard(),
		m.renderFilterBar(),
		m.renderTaskList(),
	}, "\n\n")

	rightPane := ""
	if m.Mode == ModeForm {
		rightPane = m.renderTaskForm()
	} else {
		rightPane = m.renderTaskDetail()
	}
	if palette := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()); palette != "" {
		rightPane += "\n\n" + palette
	}
	if m.HelpVisible {
		rightPane += "\n\n" + m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Dark:         dark,
		Header:       fmt.Sprintf("ZenTask | theme: %s | mode: %s", m.Theme, m.Mode),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: m.renderPrompt(),
		Footer: fmt.Sprintf("keys: %s add | %s edit | %s delete | %s status | %s search | %s/%s filters | %s sort | %s theme | %s export | %s import | %s cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Edit, m.Keys.Delete, m.Keys.CycleStatus, m.Keys.Search,
			m.Keys.StatusFilter, m.Keys.PriorityFilter, m.Keys.Sort, m.Keys.Theme,
			m.Keys.Export, m.Keys.Import, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
