package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DueDateLayout = "2006-01-02"

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDueDate  = errors.New("model: invalid task due date")
)

type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusCompleted}

func (s Status) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Next returns the status that follows s in display order, wrapping around.
func (s Status) Next() Status {
	for i, candidate := range Statuses {
		if candidate == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusToDo
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) Next() Priority {
	for i, candidate := range Priorities {
		if candidate == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// PriorityRank orders priorities High, Medium, Low. Unknown values rank last.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if _, err := ParseDueDate(t.DueDate); err != nil {
		return err
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}

// DueTime parses the due date. ok is false when the stored value is not a
// calendar date.
func (t Task) DueTime() (time.Time, bool) {
	due, err := ParseDueDate(t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// IsOverdue reports whether an open task's due date has passed at now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	due, ok := t.DueTime()
	return ok && due.Before(now)
}

func ParseDueDate(raw string) (time.Time, error) {
	due, err := time.Parse(DueDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, raw)
	}
	return due, nil
}

func FormatDueDate(t time.Time) string {
	return t.Format(DueDateLayout)
}

// ParseStatus accepts the display label in any case plus a few short aliases.
func ParseStatus(raw string) (Status, error) {
	switch normalizeLabel(raw) {
	case "todo", "to-do":
		return StatusToDo, nil
	case "inprogress", "in-progress", "doing", "wip":
		return StatusInProgress, nil
	case "completed", "done":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

func ParsePriority(raw string) (Priority, error) {
	switch normalizeLabel(raw) {
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

func normalizeLabel(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "-")
	if strings.Contains(s, " ") {
		s = strings.Join(strings.Fields(s), "")
	}
	return s
}
