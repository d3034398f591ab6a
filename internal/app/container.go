package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/zentask/internal/collection"
	"github.com/sandeepkv93/zentask/internal/config"
	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/persistence"
	"github.com/sandeepkv93/zentask/internal/storage"
	"github.com/sandeepkv93/zentask/internal/view"
)

// Container owns everything one zentask process needs.
type Container struct {
	Config    config.Config
	Logger    *slog.Logger
	KV        storage.KeyValueStore
	Gateway   *persistence.Gateway
	Tasks     *collection.Store
	Projector *view.Projector
	Offerer   persistence.Offerer

	logFile io.Closer
}

// New builds the container and loads the stored collection. Log output goes
// to cfg.LogFile when set, otherwise to logOut.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*Container, error) {
	logger, logFile, err := NewLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	kv, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}

	var defaults []model.Task
	if cfg.SeedDefaults {
		defaults = persistence.DefaultTasks()
	}
	gateway := persistence.NewGateway(kv, logger, defaults)
	tasks := collection.NewStore(gateway.LoadTasks(ctx), gateway, logger)

	logger.Info("container ready", "backend", cfg.Backend, "tasks", tasks.Len())
	return &Container{
		Config:    cfg,
		Logger:    logger,
		KV:        kv,
		Gateway:   gateway,
		Tasks:     tasks,
		Projector: view.NewProjector(),
		Offerer:   persistence.DirOfferer{Dir: cfg.ExportDir},
		logFile:   logFile,
	}, nil
}

func NewLogger(cfg config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	out := fallback
	var closer io.Closer
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = io.Discard
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer, nil
}

// Theme reads the stored theme preference.
func (c *Container) Theme(ctx context.Context) model.Theme {
	return c.Gateway.LoadTheme(ctx)
}

func (c *Container) SetTheme(ctx context.Context, theme model.Theme) error {
	return c.Gateway.SaveTheme(ctx, theme)
}

// Export writes the whole collection, ignoring any active filter.
func (c *Container) Export(ctx context.Context) (string, error) {
	return c.Gateway.Export(ctx, c.Offerer, c.Tasks.Tasks())
}

// ExportTo writes the collection into dir instead of the configured export dir.
func (c *Container) ExportTo(ctx context.Context, dir string) (string, error) {
	return c.Gateway.Export(ctx, persistence.DirOfferer{Dir: dir}, c.Tasks.Tasks())
}

// Import replaces the collection with the decoded content of raw. The
// collection is untouched when raw is malformed.
func (c *Container) Import(ctx context.Context, raw []byte) (int, error) {
	tasks, err := persistence.ImportTasks(raw)
	if err != nil {
		c.Logger.Warn("import rejected", "error", err)
		return 0, err
	}
	c.Tasks.ReplaceAll(ctx, tasks)
	c.Logger.Info("tasks imported", "count", len(tasks))
	return len(tasks), nil
}

func (c *Container) Close() error {
	var errs []error
	if c.KV != nil {
		if err := c.KV.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log file: %w", err))
		}
	}
	return errors.Join(errs...)
}
