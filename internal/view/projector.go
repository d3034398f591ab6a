package view

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sandeepkv93/zentask/internal/model"
)

// All is the filter sentinel that matches every status or priority.
const All = "All"

var ErrInvalidCriteria = errors.New("view: invalid criteria")

type SortKey string

const (
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
)

// StatusFilter is All or a model.Status label.
type StatusFilter string

// PriorityFilter is All or a model.Priority label.
type PriorityFilter string

type Criteria struct {
	Search   string
	Status   StatusFilter
	Priority PriorityFilter
	Sort     SortKey
}

func DefaultCriteria() Criteria {
	return Criteria{Status: All, Priority: All, Sort: SortByDueDate}
}

// Project filters and stably sorts tasks without touching the input slice.
func Project(tasks []model.Task, c Criteria) []model.Task {
	needle := strings.ToLower(c.Search)
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if matches(task, needle, c) {
			out = append(out, task)
		}
	}

	switch c.Sort {
	case SortByPriority:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return model.PriorityRank(a.Priority) - model.PriorityRank(b.Priority)
		})
	default:
		slices.SortStableFunc(out, compareDueDate)
	}
	return out
}

func matches(task model.Task, needle string, c Criteria) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(task.Title), needle) &&
		!strings.Contains(strings.ToLower(task.Description), needle) {
		return false
	}
	if c.Status != "" && c.Status != All && string(c.Status) != string(task.Status) {
		return false
	}
	if c.Priority != "" && c.Priority != All && string(c.Priority) != string(task.Priority) {
		return false
	}
	return true
}

// compareDueDate orders parseable dates chronologically; unparsable ones go
// last.
func compareDueDate(a, b model.Task) int {
	at, aok := a.DueTime()
	bt, bok := b.DueTime()
	switch {
	case aok && bok:
		return at.Compare(bt)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}

// Projector caches the last projection keyed by collection version and
// criteria.
type Projector struct {
	mu       sync.Mutex
	valid    bool
	version  uint64
	criteria Criteria
	result   []model.Task
	computed int
}

func NewProjector() *Projector {
	return &Projector{}
}

// Project returns the cached slice while version and criteria are unchanged.
// Callers must treat the result as read-only.
func (p *Projector) Project(tasks []model.Task, version uint64, c Criteria) []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.valid && p.version == version && p.criteria == c {
		return p.result
	}
	p.result = Project(tasks, c)
	p.version = version
	p.criteria = c
	p.valid = true
	p.computed++
	return p.result
}

// Computations reports how many times the projection was recomputed.
func (p *Projector) Computations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.computed
}

func ParseSortKey(raw string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "duedate", "due", "date", "due-date", "due_date":
		return SortByDueDate, nil
	case "priority", "prio":
		return SortByPriority, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidCriteria, raw)
	}
}

func ParseStatusFilter(raw string) (StatusFilter, error) {
	if isAll(raw) {
		return All, nil
	}
	status, err := model.ParseStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return StatusFilter(status), nil
}

func ParsePriorityFilter(raw string) (PriorityFilter, error) {
	if isAll(raw) {
		return All, nil
	}
	priority, err := model.ParsePriority(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return PriorityFilter(priority), nil
}

// NextStatusFilter cycles All -> each status -> All.
func NextStatusFilter(f StatusFilter) StatusFilter {
	options := []StatusFilter{All}
	for _, s := range model.Statuses {
		options = append(options, StatusFilter(s))
	}
	return cycle(options, f)
}

func NextPriorityFilter(f PriorityFilter) PriorityFilter {
	options := []PriorityFilter{All}
	for _, p := range model.Priorities {
		options = append(options, PriorityFilter(p))
	}
	return cycle(options, f)
}

func ToggleSort(k SortKey) SortKey {
	if k == SortByPriority {
		return SortByDueDate
	}
	return SortByPriority
}

func cycle[T comparable](options []T, current T) T {
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func isAll(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || strings.EqualFold(trimmed, All)
}
