package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/zentask/internal/app"
	"github.com/sandeepkv93/zentask/internal/config"
	"github.com/sandeepkv93/zentask/internal/update"
)

// Options configures a root command. Zero values fall back to the process
// streams and the interactive program.
type Options struct {
	ConfigPath string
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	// RunTUI replaces the bubbletea program started by the bare command.
	RunTUI func(ctx context.Context, c *app.Container) error
}

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

// env is shared by every subcommand of one root command.
type env struct {
	opts      *Options
	container *app.Container
	info      commandContext
	command   string
}

// NewRootCommand builds the zentask command tree.
func NewRootCommand(opts *Options) *cobra.Command {
	cmd, _ := newRoot(opts)
	return cmd
}

func newRoot(opts *Options) (*cobra.Command, *env) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.RunTUI == nil {
		opts.RunTUI = runProgram
	}
	e := &env{opts: opts}

	cmd := &cobra.Command{
		Use:   "zentask",
		Short: "ZenTask - a calm terminal task tracker",
		Long: `ZenTask keeps a single list of tasks with a title, markdown description,
due date, priority and status.

Run without arguments to open the interactive board, or use the
subcommands below for scripting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.RunTUI(cmd.Context(), e.container)
		},
	}
	cmd.SetIn(opts.In)
	cmd.SetOut(opts.Out)
	cmd.SetErr(opts.Err)
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "config file path (default ./"+config.DefaultFileName+")")

	cmd.AddCommand(
		newListCommand(e),
		newAddCommand(e),
		newEditCommand(e),
		newStatusCommand(e),
		newDeleteCommand(e),
		newExportCommand(e),
		newImportCommand(e),
		newThemeCommand(e),
		newStatsCommand(e),
	)
	return cmd, e
}

// Execute runs the command tree and releases the container even when a
// command fails before its post-run hook.
func Execute(ctx context.Context, args []string, opts *Options) error {
	root, e := newRoot(opts)
	root.SetArgs(args)
	runErr := root.ExecuteContext(ctx)
	return errors.Join(runErr, e.close())
}

func (e *env) open(cmd *cobra.Command) error {
	if e.container != nil {
		return nil
	}
	cfg, err := config.Load(e.opts.ConfigPath)
	if err != nil {
		return err
	}

	logOut := e.opts.Err
	if cmd == cmd.Root() {
		// The interactive board owns the terminal.
		logOut = io.Discard
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	container, err := app.New(ctx, cfg, logOut)
	if err != nil {
		return err
	}
	e.container = container
	e.command = cmd.CommandPath()
	e.info = commandContext{correlationID: uuid.New(), startedAt: time.Now()}
	container.Logger.Info("command start",
		"command", e.command,
		"correlation_id", e.info.correlationID.String(),
		"backend", cfg.Backend,
	)
	return nil
}

func (e *env) close() error {
	if e.container == nil {
		return nil
	}
	e.container.Logger.Info("command end",
		"command", e.command,
		"correlation_id", e.info.correlationID.String(),
		"duration_ms", time.Since(e.info.startedAt).Milliseconds(),
	)
	err := e.container.Close()
	e.container = nil
	return err
}

func runProgram(ctx context.Context, c *app.Container) error {
	model := update.NewModel(ctx, update.Deps{
		Tasks:     c.Tasks,
		Projector: c.Projector,
		Services:  c,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
