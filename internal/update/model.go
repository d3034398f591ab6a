package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/zentask/internal/collection"
	"github.com/sandeepkv93/zentask/internal/editing"
	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/view"
)

type Mode string

const (
	ModeList          Mode = "list"
	ModeSearch        Mode = "search"
	ModeForm          Mode = "form"
	ModeConfirmDelete Mode = "confirm-delete"
	ModeImportPath    Mode = "import-path"
	ModeConfirmImport Mode = "confirm-import"
)

const (
	deletePrompt    = "Are you sure you want to delete this task?"
	overwritePrompt = "This will overwrite your current tasks. Are you sure?"
)

// Services is the slice of the application container the TUI needs besides
// the task store.
type Services interface {
	Theme(ctx context.Context) model.Theme
	SetTheme(ctx context.Context, theme model.Theme) error
	Export(ctx context.Context) (string, error)
	ExportTo(ctx context.Context, dir string) (string, error)
}

type Deps struct {
	Tasks     *collection.Store
	Projector *view.Projector
	Services  Services
	Session   *editing.Session
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Up             string
	Down           string
	Add            string
	Edit           string
	Delete         string
	CycleStatus    string
	Search         string
	StatusFilter   string
	PriorityFilter string
	Sort           string
	Theme          string
	Export         string
	Import         string
	Palette        string
	Help           string
	Quit           string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Body  string
	Level string
	At    time.Time
}

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldDueDate
)

var formFieldNames = []string{"title", "description", "dueDate"}

type Model struct {
	Mode          Mode
	Criteria      view.Criteria
	Cursor        int
	Theme         model.Theme
	Palette       CommandPaletteState
	HelpVisible   bool
	Status        StatusBar
	Notifications []Notification
	Keys          GlobalKeyMap
	FormError     string
	Quitting      bool
	LastError     error

	pendingDeleteID string
	pendingImport   []model.Task

	ctx       context.Context
	tasks     *collection.Store
	projector *view.Projector
	services  Services
	session   *editing.Session
	formFocus formField

	searchInput     textinput.Model
	commandInput    textinput.Model
	importInput     textinput.Model
	titleInput      textinput.Model
	descriptionArea textarea.Model
	dueInput        textinput.Model
	progressBar     progress.Model
	helpModel       help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ImportFileReadMsg carries the content of an import file read off the
// update loop.
type ImportFileReadMsg struct {
	Path string
	Data []byte
	Err  error
}

func NewModel(ctx context.Context, deps Deps) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	session := deps.Session
	if session == nil {
		session = editing.NewSession()
	}
	projector := deps.Projector
	if projector == nil {
		projector = view.NewProjector()
	}
	m := Model{
		Mode:      ModeList,
		Criteria:  view.DefaultCriteria(),
		Theme:     model.ThemeLight,
		ctx:       ctx,
		tasks:     deps.Tasks,
		projector: projector,
		services:  deps.Services,
		session:   session,
		Keys: GlobalKeyMap{
			Up:             "k",
			Down:           "j",
			Add:            "a",
			Edit:           "e",
			Delete:         "d",
			CycleStatus:    "s",
			Search:         "f",
			StatusFilter:   "1",
			PriorityFilter: "2",
			Sort:           "o",
			Theme:          "t",
			Export:         "x",
			Import:         "i",
			Palette:        "/",
			Help:           "?",
			Quit:           "q",
		},
	}
	if m.services != nil {
		m.Theme = m.services.Theme(ctx)
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.Placeholder = "Search tasks..."
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 44

	m.importInput = textinput.New()
	m.importInput.Prompt = "import file> "
	m.importInput.Placeholder = "path/to/tasks.json"
	m.importInput.CharLimit = 1024
	m.importInput.Width = 44

	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 44

	m.descriptionArea = textarea.New()
	m.descriptionArea.SetWidth(46)
	m.descriptionArea.SetHeight(5)
	m.descriptionArea.ShowLineNumbers = false
	m.descriptionArea.Placeholder = "Description (markdown)"

	m.dueInput = textinput.New()
	m.dueInput.Prompt = ""
	m.dueInput.Placeholder = model.DueDateLayout
	m.dueInput.CharLimit = 10
	m.dueInput.Width = 12

	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage())
	m.helpModel = help.New()
}

// visibleTasks is the memoized projection of the collection under the
// current criteria.
func (m Model) visibleTasks() []model.Task {
	if m.tasks == nil {
		return nil
	}
	snapshot, version := m.tasks.Snapshot()
	return m.projector.Project(snapshot, version, m.Criteria)
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) selectTask(id string) {
	for i, task := range m.visibleTasks() {
		if task.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) notify(body, level string) {
	if body == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{Body: body, Level: level, At: time.Now().UTC()})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.Status = StatusBar{Text: text, IsError: isErr}
	m.notify(text, levelFromError(isErr))
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.setStatus(err.Error(), true)
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
