package views

import (
	"strings"
	"testing"
)

func TestRenderDashboard(t *testing.T) {
	out := RenderDashboard(DashboardData{Completed: 1, Total: 4, Percent: 25, ProgressView: "[##--]"})
	if !strings.Contains(out, "1 of 4 tasks completed.") {
		t.Fatalf("missing summary line: %q", out)
	}
	if !strings.Contains(out, "25%") {
		t.Fatalf("missing percentage: %q", out)
	}
}

func TestRenderTaskListEmptyAndCursor(t *testing.T) {
	if out := RenderTaskList(TaskListData{}); !strings.Contains(out, EmptyListMessage) {
		t.Fatalf("expected empty message, got %q", out)
	}

	out := RenderTaskList(TaskListData{
		Rows: []TaskRowData{
			{ID: "1", Title: "First", DueDate: "2024-08-15", Priority: "High", Status: "To Do", Overdue: true},
			{ID: "2", Title: "Second", DueDate: "2024-08-18", Priority: "Low", Status: "Completed"},
		},
		Cursor: 1,
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], ">") || strings.HasPrefix(lines[0], ">") {
		t.Fatalf("cursor not on second row: %q", out)
	}
	if !strings.Contains(lines[0], "overdue") {
		t.Fatalf("expected overdue marker on first row: %q", lines[0])
	}
}

func TestRenderTaskFormShowsError(t *testing.T) {
	out := RenderTaskForm(TaskFormData{Heading: "Add New Task", Priority: "Medium", Status: "To Do", FocusedField: "title", ErrorText: "title is required"})
	for _, want := range []string{"Add New Task", "Title", "[Medium]", "(To Do)", "error: title is required"} {
		if !strings.Contains(out, want) {
			t.Fatalf("form missing %q: %q", want, out)
		}
	}
}

func TestRenderTaskDetailWithoutSelection(t *testing.T) {
	if out := RenderTaskDetail(TaskDetailData{}); !strings.Contains(out, "(no selection)") {
		t.Fatalf("unexpected detail: %q", out)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if RenderMarkdown("   ", true) != "" {
		t.Fatal("blank markdown should render empty")
	}
	if out := RenderMarkdown("**bold** notes", false); !strings.Contains(out, "bold") {
		t.Fatalf("expected rendered text, got %q", out)
	}
}
