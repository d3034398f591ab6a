package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/storage"
)

const (
	TasksKey = "tasks"
	ThemeKey = "theme"
)

// Gateway maps the task collection and the theme flag onto a key-value store.
type Gateway struct {
	store    storage.KeyValueStore
	logger   *slog.Logger
	defaults []model.Task
}

func NewGateway(store storage.KeyValueStore, logger *slog.Logger, defaults []model.Task) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{
		store:    store,
		logger:   logger,
		defaults: cloneTasks(defaults),
	}
}

// LoadTasks never fails: a missing or unreadable value yields the default set.
func (g *Gateway) LoadTasks(ctx context.Context) []model.Task {
	raw, err := g.store.Get(ctx, TasksKey)
	if errors.Is(err, storage.ErrNotFound) {
		g.logger.Info("no stored tasks, seeding defaults", "count", len(g.defaults))
		return cloneTasks(g.defaults)
	}
	if err != nil {
		g.logReadError(&PersistenceReadError{Key: TasksKey, Err: err})
		return cloneTasks(g.defaults)
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		g.logReadError(&PersistenceReadError{Key: TasksKey, Err: err})
		return cloneTasks(g.defaults)
	}
	if tasks == nil {
		g.logReadError(&PersistenceReadError{Key: TasksKey, Err: errors.New("stored value is null")})
		return cloneTasks(g.defaults)
	}
	g.logger.Debug("tasks loaded", "count", len(tasks))
	return tasks
}

// SaveTasks writes the whole collection. The returned error is a
// *PersistenceWriteError and has already been logged.
func (g *Gateway) SaveTasks(ctx context.Context, tasks []model.Task) error {
	payload, err := encodeTasks(tasks, "")
	if err == nil {
		err = g.store.Set(ctx, TasksKey, string(payload))
	}
	if err != nil {
		writeErr := &PersistenceWriteError{Key: TasksKey, Err: err}
		g.logger.Error("failed to save tasks", "error", writeErr, "count", len(tasks))
		return writeErr
	}
	return nil
}

func (g *Gateway) LoadTheme(ctx context.Context) model.Theme {
	raw, err := g.store.Get(ctx, ThemeKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			g.logReadError(&PersistenceReadError{Key: ThemeKey, Err: err})
		}
		return model.ThemeLight
	}
	return model.ParseTheme(raw)
}

func (g *Gateway) SaveTheme(ctx context.Context, theme model.Theme) error {
	if err := g.store.Set(ctx, ThemeKey, string(model.ParseTheme(string(theme)))); err != nil {
		writeErr := &PersistenceWriteError{Key: ThemeKey, Err: err}
		g.logger.Error("failed to save theme", "error", writeErr)
		return writeErr
	}
	return nil
}

func (g *Gateway) logReadError(err *PersistenceReadError) {
	g.logger.Warn("failed to load stored value, using defaults", "key", err.Key, "error", err.Err)
}

func encodeTasks(tasks []model.Task, indent string) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	copy(out, in)
	return out
}
