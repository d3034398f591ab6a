// Package collection owns the authoritative task list. It is the only writer;
// every mutation is followed by an explicit durability write.
package collection

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sandeepkv93/zentask/internal/model"
)

var ErrNotFound = errors.New("collection: task not found")

// Persister receives the full collection after every mutation.
type Persister interface {
	SaveTasks(ctx context.Context, tasks []model.Task) error
}

type Store struct {
	mu        sync.RWMutex
	tasks     []model.Task
	version   uint64
	persister Persister
	logger    *slog.Logger
}

func NewStore(initial []model.Task, persister Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tasks := make([]model.Task, len(initial))
	copy(tasks, initial)
	return &Store{tasks: tasks, persister: persister, logger: logger}
}

// Tasks returns a snapshot in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Snapshot returns the tasks together with the version they belong to.
func (s *Store) Snapshot() ([]model.Task, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, s.version
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Version increases on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Add appends task. Callers supply a fresh id; duplicates are not checked.
func (s *Store) Add(ctx context.Context, task model.Task) {
	s.mutate(ctx, "add", func() bool {
		s.tasks = append(s.tasks, task)
		return true
	})
}

// Update replaces every task with the same id.
func (s *Store) Update(ctx context.Context, task model.Task) error {
	return s.mutateMatching(ctx, "update", task.ID, func(model.Task) (model.Task, bool) {
		return task, true
	})
}

// Delete removes every task with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.mutateMatching(ctx, "delete", id, func(model.Task) (model.Task, bool) {
		return model.Task{}, false
	})
}

func (s *Store) SetStatus(ctx context.Context, id string, status model.Status) error {
	return s.mutateMatching(ctx, "set_status", id, func(current model.Task) (model.Task, bool) {
		current.Status = status
		return current, true
	})
}

// ReplaceAll discards the collection in favour of tasks.
func (s *Store) ReplaceAll(ctx context.Context, tasks []model.Task) {
	next := make([]model.Task, len(tasks))
	copy(next, tasks)
	s.mutate(ctx, "replace_all", func() bool {
		s.tasks = next
		return true
	})
}

// mutateMatching rewrites the tasks whose id matches; apply returns the
// replacement and whether to keep it. No match leaves everything untouched.
func (s *Store) mutateMatching(ctx context.Context, op, id string, apply func(model.Task) (model.Task, bool)) error {
	found := false
	s.mutate(ctx, op, func() bool {
		next := make([]model.Task, 0, len(s.tasks))
		for _, task := range s.tasks {
			if task.ID != id {
				next = append(next, task)
				continue
			}
			found = true
			if replaced, keep := apply(task); keep {
				next = append(next, replaced)
			}
		}
		if found {
			s.tasks = next
		}
		return found
	})
	if !found {
		s.logger.Debug("task not found", "op", op, "id", id)
		return ErrNotFound
	}
	return nil
}

// mutate applies change under the write lock and, when it reports a change,
// persists the resulting collection. Persist failures are logged by the
// persister and otherwise ignored: memory stays authoritative.
func (s *Store) mutate(ctx context.Context, op string, change func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !change() {
		return
	}
	s.version++
	s.logger.Debug("collection changed", "op", op, "count", len(s.tasks), "version", s.version)
	if s.persister == nil {
		return
	}
	snapshot := make([]model.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	if err := s.persister.SaveTasks(ctx, snapshot); err != nil {
		s.logger.Warn("durability write failed, keeping in-memory state", "op", op, "error", err)
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
