package editing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/zentask/internal/model"
)

// ValidationError rejects a submit; the session stays open for correction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("editing: %s: %s", e.Field, e.Message)
}

// Target receives a finished task.
type Target interface {
	Add(ctx context.Context, task model.Task)
	Update(ctx context.Context, task model.Task) error
}

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type Session struct {
	open  bool
	mode  Mode
	draft model.Task

	newID func() string
	now   func() time.Time
}

type Option func(*Session)

func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(s *Session) { s.now = fn }
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open seeds the draft from target, or from defaults when target is nil.
// Any unsaved draft is discarded.
func (s *Session) Open(target *model.Task) {
	s.open = true
	if target != nil {
		s.mode = ModeEdit
		s.draft = *target
		return
	}
	s.mode = ModeCreate
	s.draft = model.Task{
		ID:       s.newID(),
		DueDate:  model.FormatDueDate(s.now()),
		Priority: model.PriorityMedium,
		Status:   model.StatusToDo,
	}
}

func (s *Session) Close() {
	s.open = false
	s.draft = model.Task{}
}

func (s *Session) IsOpen() bool { return s.open }

func (s *Session) Mode() Mode { return s.mode }

// Draft returns a copy of the in-progress task.
func (s *Session) Draft() model.Task { return s.draft }

func (s *Session) SetTitle(v string)            { s.draft.Title = v }
func (s *Session) SetDescription(v string)      { s.draft.Description = v }
func (s *Session) SetDueDate(v string)          { s.draft.DueDate = v }
func (s *Session) SetPriority(p model.Priority) { s.draft.Priority = p }
func (s *Session) SetStatus(st model.Status)    { s.draft.Status = st }
func (s *Session) CyclePriority() model.Priority {
	s.draft.Priority = s.draft.Priority.Next()
	return s.draft.Priority
}
func (s *Session) CycleStatus() model.Status {
	s.draft.Status = s.draft.Status.Next()
	return s.draft.Status
}

// Submit validates the draft and hands it to target. On success the session
// closes and the saved task is returned.
func (s *Session) Submit(ctx context.Context, target Target) (model.Task, error) {
	if !s.open {
		return model.Task{}, &ValidationError{Field: "session", Message: "no task is being edited"}
	}
	task := s.draft
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return model.Task{}, &ValidationError{Field: "title", Message: "title is required"}
	}
	due, err := model.ParseDueDate(task.DueDate)
	if err != nil {
		return model.Task{}, &ValidationError{Field: "dueDate", Message: "use YYYY-MM-DD"}
	}
	task.DueDate = model.FormatDueDate(due)

	if s.mode == ModeEdit {
		if err := target.Update(ctx, task); err != nil {
			return model.Task{}, err
		}
	} else {
		target.Add(ctx, task)
	}
	s.Close()
	return task, nil
}
