package update

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zentask/internal/editing"
	"github.com/sandeepkv93/zentask/internal/model"
)

// openForm seeds the editing session and mirrors its draft into the inputs.
func (m Model) openForm(target *model.Task) Model {
	m.session.Open(target)
	draft := m.session.Draft()
	m.titleInput.SetValue(draft.Title)
	m.descriptionArea.SetValue(draft.Description)
	m.dueInput.SetValue(draft.DueDate)
	m.titleInput.CursorEnd()
	m.dueInput.CursorEnd()
	m.FormError = ""
	m.Mode = ModeForm
	m = m.focusField(fieldTitle)
	return m
}

func (m Model) closeForm() Model {
	m.session.Close()
	m.titleInput.Blur()
	m.descriptionArea.Blur()
	m.dueInput.Blur()
	m.FormError = ""
	m.Mode = ModeList
	return m
}

func (m Model) focusField(field formField) Model {
	m.formFocus = field
	m.titleInput.Blur()
	m.descriptionArea.Blur()
	m.dueInput.Blur()
	switch field {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldDescription:
		m.descriptionArea.Focus()
	case fieldDueDate:
		m.dueInput.Focus()
	}
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeForm()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "tab":
		return m.focusField((m.formFocus + 1) % formField(len(formFieldNames))), nil
	case "shift+tab":
		return m.focusField((m.formFocus + formField(len(formFieldNames)) - 1) % formField(len(formFieldNames))), nil
	case "ctrl+p":
		m.session.CyclePriority()
		return m, nil
	case "ctrl+t":
		m.session.CycleStatus()
		return m, nil
	case "ctrl+s":
		return m.submitForm(), nil
	case "enter":
		if m.formFocus != fieldDescription {
			return m.submitForm(), nil
		}
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.session.SetTitle(m.titleInput.Value())
	case fieldDescription:
		m.descriptionArea, cmd = m.descriptionArea.Update(msg)
		m.session.SetDescription(m.descriptionArea.Value())
	case fieldDueDate:
		m.dueInput, cmd = m.dueInput.Update(msg)
		m.session.SetDueDate(m.dueInput.Value())
	}
	return m, cmd
}

func (m Model) submitForm() Model {
	m.session.SetTitle(m.titleInput.Value())
	m.session.SetDescription(m.descriptionArea.Value())
	m.session.SetDueDate(m.dueInput.Value())

	saved, err := m.session.Submit(m.ctx, m.tasks)
	var verr *editing.ValidationError
	switch {
	case errors.As(err, &verr):
		m.FormError = verr.Message
		if verr.Field == "dueDate" {
			m = m.focusField(fieldDueDate)
		} else {
			m = m.focusField(fieldTitle)
		}
		return m
	case err != nil:
		m = m.closeForm()
		m.setError(err)
		return m
	}

	m = m.closeForm()
	m.selectTask(saved.ID)
	m.setStatus("task saved: "+saved.Title, false)
	return m
}
