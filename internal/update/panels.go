package update

import (
	"time"

	"github.com/sandeepkv93/zentask/internal/editing"
	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/view"
	"github.com/sandeepkv93/zentask/internal/views"
)

func (m Model) renderDashboard() string {
	var all []model.Task
	if m.tasks != nil {
		all = m.tasks.Tasks()
	}
	summary := view.Summarize(all)
	return views.RenderDashboard(views.DashboardData{
		Completed:    summary.Completed,
		Total:        summary.Total,
		Percent:      summary.ProgressPercentage,
		ProgressView: m.progressBar.ViewAs(summary.ProgressPercentage / 100),
		Dark:         m.Theme.IsDark(),
	})
}

func (m Model) renderFilterBar() string {
	sort := "due date"
	if m.Criteria.Sort == view.SortByPriority {
		sort = "priority"
	}
	return views.RenderFilterBar(views.FilterBarData{
		SearchView: m.searchInput.View(),
		Status:     string(m.Criteria.Status),
		Priority:   string(m.Criteria.Priority),
		Sort:       sort,
		Dark:       m.Theme.IsDark(),
	})
}

func (m Model) renderTaskList() string {
	now := time.Now()
	visible := m.visibleTasks()
	rows := make([]views.TaskRowData, 0, len(visible))
	for _, task := range visible {
		rows = append(rows, views.TaskRowData{
			ID:       task.ID,
			Title:    task.Title,
			DueDate:  task.DueDate,
			Priority: string(task.Priority),
			Status:   string(task.Status),
			Overdue:  task.IsOverdue(now),
		})
	}
	return views.RenderTaskList(views.TaskListData{Rows: rows, Cursor: m.Cursor, Dark: m.Theme.IsDark()})
}

func (m Model) renderTaskDetail() string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Overdue:     task.IsOverdue(time.Now()),
		Dark:        m.Theme.IsDark(),
	})
}

func (m Model) renderTaskForm() string {
	draft := m.session.Draft()
	heading := "Add New Task"
	if m.session.Mode() == editing.ModeEdit {
		heading = "Edit Task"
	}
	return views.RenderTaskForm(views.TaskFormData{
		Heading:         heading,
		TitleView:       m.titleInput.View(),
		DescriptionView: m.descriptionArea.View(),
		DueDateView:     m.dueInput.View(),
		Priority:        string(draft.Priority),
		Status:          string(draft.Status),
		FocusedField:    formFieldNames[m.formFocus],
		ErrorText:       m.FormError,
		Dark:            m.Theme.IsDark(),
	})
}

// renderPrompt shows confirmations and the import path input below the panes.
func (m Model) renderPrompt() string {
	switch m.Mode {
	case ModeConfirmDelete:
		return views.RenderConfirm(deletePrompt)
	case ModeConfirmImport:
		return views.RenderConfirm(overwritePrompt)
	case ModeImportPath:
		return m.importInput.View()
	}
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}
