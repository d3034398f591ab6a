package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zentask/internal/persistence"
)

func (m Model) handleImportPathKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.importInput.Blur()
		m.Status = StatusBar{Text: "import cancelled"}
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.importInput.Value())
		if path == "" {
			m.Status = StatusBar{Text: "enter a file path to import", IsError: true}
			return m, nil
		}
		return m.startImport(path)
	}
	var cmd tea.Cmd
	m.importInput, cmd = m.importInput.Update(msg)
	return m, cmd
}

func (m Model) startImport(path string) (Model, tea.Cmd) {
	m.Mode = ModeList
	m.importInput.Blur()
	m.Status = StatusBar{Text: "reading " + path}
	return m, readImportFileCmd(path)
}

// onImportFileRead validates the file and asks before replacing anything.
func (m Model) onImportFileRead(msg ImportFileReadMsg) Model {
	if msg.Err != nil {
		m.setError(fmt.Errorf("read import file: %w", msg.Err))
		return m
	}
	tasks, err := persistence.ImportTasks(msg.Data)
	if err != nil {
		m.setError(err)
		return m
	}
	m.pendingImport = tasks
	m.Mode = ModeConfirmImport
	m.Status = StatusBar{Text: fmt.Sprintf("%d task(s) ready to import from %s", len(tasks), msg.Path)}
	return m
}

func (m Model) handleConfirmImportKey(msg tea.KeyMsg) Model {
	switch strings.ToLower(msg.String()) {
	case "y":
		tasks := m.pendingImport
		m.pendingImport = nil
		m.Mode = ModeList
		m.tasks.ReplaceAll(m.ctx, tasks)
		m.Cursor = 0
		m.setStatus(fmt.Sprintf("imported %d task(s)", len(tasks)), false)
	case "n", "esc":
		m.pendingImport = nil
		m.Mode = ModeList
		m.Status = StatusBar{Text: "import cancelled"}
	}
	return m
}
