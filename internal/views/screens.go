package views

import (
	"fmt"
	"strings"
)

const EmptyListMessage = "No tasks found. Try adjusting your filters or adding a new task!"

type DashboardData struct {
	Completed    int
	Total        int
	Percent      float64
	ProgressView string
	Dark         bool
}

type FilterBarData struct {
	SearchView string
	Status     string
	Priority   string
	Sort       string
	Dark       bool
}

type TaskRowData struct {
	ID       string
	Title    string
	DueDate  string
	Priority string
	Status   string
	Overdue  bool
}

type TaskListData struct {
	Rows   []TaskRowData
	Cursor int
	Dark   bool
}

type TaskDetailData struct {
	ID          string
	Title       string
	Description string
	DueDate     string
	Priority    string
	Status      string
	Overdue     bool
	Dark        bool
}

type TaskFormData struct {
	Heading         string
	TitleView       string
	DescriptionView string
	DueDateView     string
	Priority        string
	Status          string
	FocusedField    string
	ErrorText       string
	Dark            bool
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderDashboard(data DashboardData) string {
	st := stylesFor(data.Dark)
	var b strings.Builder
	b.WriteString(st.header.Render("Dashboard") + "\n")
	b.WriteString(fmt.Sprintf("%d of %d tasks completed.\n", data.Completed, data.Total))
	b.WriteString(fmt.Sprintf("%s %.0f%%", data.ProgressView, data.Percent))
	return b.String()
}

func RenderFilterBar(data FilterBarData) string {
	st := stylesFor(data.Dark)
	return fmt.Sprintf("%s\n%s",
		data.SearchView,
		st.muted.Render(fmt.Sprintf("status: %s | priority: %s | sort: %s", data.Status, data.Priority, data.Sort)),
	)
}

func RenderTaskList(data TaskListData) string {
	st := stylesFor(data.Dark)
	if len(data.Rows) == 0 {
		return st.muted.Render(EmptyListMessage)
	}
	var b strings.Builder
	for i, row := range data.Rows {
		cursor := " "
		title := row.Title
		if i == data.Cursor {
			cursor = ">"
			title = st.cursor.Render(title)
		}
		due := row.DueDate
		if row.Overdue {
			due = st.err.Render(due + " overdue")
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s  %s\n",
			cursor,
			priorityBadge(st, row.Priority),
			statusBadge(st, row.Status),
			title,
			st.muted.Render("due "+due),
		))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTaskDetail(data TaskDetailData) string {
	st := stylesFor(data.Dark)
	if data.ID == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString(st.header.Render(data.Title) + "\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.ID))
	due := data.DueDate
	if data.Overdue {
		due = st.err.Render(due + " (overdue)")
	}
	b.WriteString(fmt.Sprintf("due date: %s\n", due))
	b.WriteString(fmt.Sprintf("priority: %s\n", priorityBadge(st, data.Priority)))
	b.WriteString(fmt.Sprintf("status: %s\n", statusBadge(st, data.Status)))
	if desc := RenderMarkdown(data.Description, data.Dark); desc != "" {
		b.WriteString("\n" + desc)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTaskForm(data TaskFormData) string {
	st := stylesFor(data.Dark)
	field := func(name, label, body string) string {
		marker := " "
		if data.FocusedField == name {
			marker = ">"
			label = st.cursor.Render(label)
		}
		return fmt.Sprintf("%s %s\n%s\n", marker, label, body)
	}

	var b strings.Builder
	b.WriteString(st.header.Render(data.Heading) + "\n")
	b.WriteString(field("title", "Title", data.TitleView))
	b.WriteString(field("description", "Description", data.DescriptionView))
	b.WriteString(field("dueDate", "Due Date", data.DueDateView))
	b.WriteString(fmt.Sprintf("  Priority: %s  [ctrl+p]\n", priorityBadge(st, data.Priority)))
	b.WriteString(fmt.Sprintf("  Status: %s  [ctrl+t]\n", statusBadge(st, data.Status)))
	if data.ErrorText != "" {
		b.WriteString(st.err.Render("error: "+data.ErrorText) + "\n")
	}
	b.WriteString(st.muted.Render("[tab] next field  [ctrl+s] save task  [esc] cancel"))
	return b.String()
}

func RenderConfirm(prompt string) string {
	return fmt.Sprintf("%s [y/n]", prompt)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s keys:\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func priorityBadge(st styleSet, priority string) string {
	switch priority {
	case "High":
		return st.high.Render("[High]")
	case "Medium":
		return st.medium.Render("[Medium]")
	case "Low":
		return st.low.Render("[Low]")
	default:
		return st.muted.Render("[" + priority + "]")
	}
}

func statusBadge(st styleSet, status string) string {
	switch status {
	case "Completed":
		return st.done.Render("(Completed)")
	case "In Progress":
		return st.doing.Render("(In Progress)")
	default:
		return st.todo.Render("(" + status + ")")
	}
}
