package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zentask/internal/collection"
	"github.com/sandeepkv93/zentask/internal/editing"
	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/view"
)

type fakeServices struct {
	theme     model.Theme
	themeErr  error
	exports   []string
	exportErr error
}

func (f *fakeServices) Theme(context.Context) model.Theme { return f.theme }

func (f *fakeServices) SetTheme(_ context.Context, theme model.Theme) error {
	if f.themeErr != nil {
		return f.themeErr
	}
	f.theme = theme
	return nil
}

func (f *fakeServices) Export(ctx context.Context) (string, error) {
	return f.ExportTo(ctx, "default")
}

func (f *fakeServices) ExportTo(_ context.Context, dir string) (string, error) {
	if f.exportErr != nil {
		return "", f.exportErr
	}
	f.exports = append(f.exports, dir)
	return filepath.Join(dir, "tasks.json"), nil
}

func seedTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Setup Project", DueDate: "2024-08-15", Priority: model.PriorityHigh, Status: model.StatusCompleted},
		{ID: "2", Title: "Create Components", DueDate: "2024-08-18", Priority: model.PriorityHigh, Status: model.StatusInProgress},
		{ID: "3", Title: "State Management", DueDate: "2024-08-20", Priority: model.PriorityMedium, Status: model.StatusToDo},
		{ID: "4", Title: "Dark Mode", DueDate: "2024-08-22", Priority: model.PriorityLow, Status: model.StatusToDo},
	}
}

func newTestModel(t *testing.T) (Model, *collection.Store, *fakeServices) {
	t.Helper()
	store := collection.NewStore(seedTasks(), nil, nil)
	services := &fakeServices{theme: model.ThemeLight}
	session := editing.NewSession(
		editing.WithIDGenerator(func() string { return "new" }),
		editing.WithClock(func() time.Time { return time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC) }),
	)
	m := NewModel(context.Background(), Deps{Tasks: store, Services: services, Session: session})
	return m, store, services
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.Mode != ModeList {
		t.Fatalf("expected list mode, got %q", m.Mode)
	}
	if m.Criteria != view.DefaultCriteria() {
		t.Fatalf("unexpected default criteria: %+v", m.Criteria)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Theme != model.ThemeLight {
		t.Fatalf("expected light theme, got %q", m.Theme)
	}
}

func TestViewShowsDashboard(t *testing.T) {
	m, _, _ := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "1 of 4 tasks completed.") {
		t.Fatalf("dashboard missing from view:\n%s", out)
	}
	if !strings.Contains(out, "Setup Project") {
		t.Fatalf("task list missing from view:\n%s", out)
	}
}

func TestCursorMovesWithinBounds(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, runes("k"))
	if m.Cursor != 0 {
		t.Fatalf("cursor should stay at 0, got %d", m.Cursor)
	}
	m = press(t, m, runes("j"), runes("j"), runes("j"), runes("j"), runes("j"))
	if m.Cursor != 3 {
		t.Fatalf("cursor should stop at last row, got %d", m.Cursor)
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = press(t, m, runes("a"))
	if m.Mode != ModeForm {
		t.Fatalf("expected form mode, got %q", m.Mode)
	}

	m = press(t, m, runes("Write docs"), tea.KeyMsg{Type: tea.KeyCtrlP}, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Mode != ModeList {
		t.Fatalf("expected list mode after save, got %q (error %q)", m.Mode, m.FormError)
	}
	got, ok := store.Get("new")
	if !ok {
		t.Fatal("expected new task in store")
	}
	if got.Title != "Write docs" || got.Priority != model.PriorityHigh || got.DueDate != "2024-08-14" || got.Status != model.StatusToDo {
		t.Fatalf("unexpected task: %+v", got)
	}
	if selected, _ := m.selectedTask(); selected.ID != "new" {
		t.Fatalf("cursor should follow the new task, got %+v", selected)
	}
}

func TestBlankTitleKeepsFormOpen(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = press(t, m, runes("a"), runes("   "), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Mode != ModeForm {
		t.Fatalf("form should stay open, got %q", m.Mode)
	}
	if m.FormError == "" {
		t.Fatal("expected inline validation error")
	}
	if store.Len() != 4 {
		t.Fatalf("store should be unchanged, got %d tasks", store.Len())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Mode != ModeList || m.session.IsOpen() {
		t.Fatalf("esc should close the form, mode=%q open=%v", m.Mode, m.session.IsOpen())
	}
}

func TestEditSelectedTask(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = press(t, m, runes("j"), runes("e"))
	if m.Mode != ModeForm || m.titleInput.Value() != "Create Components" {
		t.Fatalf("expected edit form for task 2, mode=%q title=%q", m.Mode, m.titleInput.Value())
	}
	m = press(t, m, runes("!"), tea.KeyMsg{Type: tea.KeyCtrlT}, tea.KeyMsg{Type: tea.KeyEnter})
	got, _ := store.Get("2")
	if got.Title != "Create Components!" || got.Status != model.StatusCompleted {
		t.Fatalf("unexpected edited task: %+v", got)
	}
	if store.Len() != 4 {
		t.Fatalf("edit must not add tasks, got %d", store.Len())
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = press(t, m, runes("d"))
	if m.Mode != ModeConfirmDelete {
		t.Fatalf("expected confirmation, got %q", m.Mode)
	}
	if !strings.Contains(m.View(), deletePrompt) {
		t.Fatal("confirmation prompt not rendered")
	}
	m = press(t, m, runes("n"))
	if store.Len() != 4 {
		t.Fatalf("cancel must keep the task, got %d", store.Len())
	}

	m = press(t, m, runes("d"), runes("y"))
	if _, ok := store.Get("1"); ok {
		t.Fatal("expected task 1 deleted")
	}
	if m.Mode != ModeList || m.Status.Text != "task deleted" {
		t.Fatalf("unexpected state after delete: %q %+v", m.Mode, m.Status)
	}
}

func TestCycleStatusOfSelectedTask(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = press(t, m, runes("j"), runes("j"), runes("s"))
	got, _ := store.Get("3")
	if got.Status != model.StatusInProgress {
		t.Fatalf("expected task 3 in progress, got %+v", got)
	}
}

func TestSearchFiltersLive(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, runes("f"), runes("dark"))
	if m.Criteria.Search != "dark" {
		t.Fatalf("expected search criteria, got %q", m.Criteria.Search)
	}
	visible := m.visibleTasks()
	if len(visible) != 1 || visible[0].ID != "4" {
		t.Fatalf("unexpected search result: %+v", visible)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("q"))
	if !m.Quitting {
		t.Fatal("q should quit once search mode is left")
	}
}

func TestFilterAndSortKeys(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, runes("1"))
	if m.Criteria.Status != view.StatusFilter(model.StatusToDo) {
		t.Fatalf("unexpected status filter: %q", m.Criteria.Status)
	}
	if len(m.visibleTasks()) != 2 {
		t.Fatalf("expected 2 to-do tasks, got %d", len(m.visibleTasks()))
	}
	m = press(t, m, runes("2"), runes("2"))
	if m.Criteria.Priority != view.PriorityFilter(model.PriorityMedium) {
		t.Fatalf("unexpected priority filter: %q", m.Criteria.Priority)
	}
	m = press(t, m, runes("o"))
	if m.Criteria.Sort != view.SortByPriority {
		t.Fatalf("expected priority sort, got %q", m.Criteria.Sort)
	}
}

func TestToggleThemePersists(t *testing.T) {
	m, _, services := newTestModel(t)
	m = press(t, m, runes("t"))
	if m.Theme != model.ThemeDark || services.theme != model.ThemeDark {
		t.Fatalf("expected dark theme, model=%q stored=%q", m.Theme, services.theme)
	}

	services.themeErr = errors.New("quota exceeded")
	m = press(t, m, runes("t"))
	if m.Theme != model.ThemeLight {
		t.Fatalf("theme should switch in memory even when saving fails, got %q", m.Theme)
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestExportKey(t *testing.T) {
	m, _, services := newTestModel(t)
	m = press(t, m, runes("x"))
	if len(services.exports) != 1 || m.Status.IsError {
		t.Fatalf("expected one export, got %v status %+v", services.exports, m.Status)
	}

	services.exportErr = errors.New("disk full")
	m = press(t, m, runes("x"))
	if !m.Status.IsError || m.LastError == nil {
		t.Fatalf("expected export error status, got %+v", m.Status)
	}
}

func TestImportFlowAsksBeforeOverwriting(t *testing.T) {
	m, store, _ := newTestModel(t)
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(`[{"id":"x","title":"Imported"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	m = press(t, m, runes("i"), runes(path))
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a file read command")
	}
	m = press(t, m, cmd())
	if m.Mode != ModeConfirmImport {
		t.Fatalf("expected overwrite confirmation, got %q (%+v)", m.Mode, m.Status)
	}
	if store.Len() != 4 {
		t.Fatal("collection must not change before confirmation")
	}

	m = press(t, m, runes("y"))
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "x" {
		t.Fatalf("unexpected tasks after import: %+v", tasks)
	}
}

func TestImportRejectsObject(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = press(t, m, ImportFileReadMsg{Path: "obj.json", Data: []byte(`{"id":"1","title":"x"}`)})
	if m.Mode != ModeList || !m.Status.IsError {
		t.Fatalf("expected error status, got mode=%q status=%+v", m.Mode, m.Status)
	}
	if store.Len() != 4 {
		t.Fatalf("collection must be unchanged, got %d", store.Len())
	}

	m = press(t, m, ImportFileReadMsg{Path: "missing.json", Err: os.ErrNotExist})
	if !errors.Is(m.LastError, os.ErrNotExist) {
		t.Fatalf("expected read error, got %v", m.LastError)
	}
}

func TestPaletteCommands(t *testing.T) {
	m, store, services := newTestModel(t)
	run := func(m Model, line string) Model {
		m = press(t, m, runes("/"), runes(line))
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return updated.(Model)
	}

	m = run(m, "add Quick task")
	if _, ok := store.Get("new"); !ok || m.Status.IsError {
		t.Fatalf("palette add failed: %+v", m.Status)
	}

	m = run(m, "status completed")
	if m.Criteria.Status != view.StatusFilter(model.StatusCompleted) {
		t.Fatalf("unexpected status filter: %q", m.Criteria.Status)
	}

	m = run(m, "theme dark")
	if m.Theme != model.ThemeDark || services.theme != model.ThemeDark {
		t.Fatalf("palette theme failed: %q", m.Theme)
	}

	m = run(m, "export out")
	if len(services.exports) != 1 || services.exports[0] != "out" {
		t.Fatalf("palette export failed: %v", services.exports)
	}

	m = run(m, "clear")
	if m.Criteria != view.DefaultCriteria() {
		t.Fatalf("clear should reset criteria, got %+v", m.Criteria)
	}

	m = run(m, "bogus")
	if !m.Status.IsError || m.Palette.Active {
		t.Fatalf("unknown command should close palette with error, got %+v", m.Status)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || m.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", m.LastError)
	}
	if !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}

	m = press(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", m.Status)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "toggle theme") {
		t.Fatal("expected help panel")
	}
}
