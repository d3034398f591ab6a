package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/zentask/internal/collection"
	"github.com/sandeepkv93/zentask/internal/editing"
	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/persistence"
	"github.com/sandeepkv93/zentask/internal/view"
)

func newListCommand(e *env) *cobra.Command {
	var (
		search   string
		status   string
		priority string
		sortBy   string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks with optional filtering and sorting.

Examples:
  zentask list --status todo
  zentask list --priority high --sort priority
  zentask list --search docs --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := view.DefaultCriteria()
			criteria.Search = search
			var err error
			if criteria.Status, err = view.ParseStatusFilter(status); err != nil {
				return err
			}
			if criteria.Priority, err = view.ParsePriorityFilter(priority); err != nil {
				return err
			}
			if criteria.Sort, err = view.ParseSortKey(sortBy); err != nil {
				return err
			}

			snapshot, version := e.container.Tasks.Snapshot()
			tasks := e.container.Projector.Project(snapshot, version, criteria)
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := persistence.ExportTasks(tasks)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			printTasks(out, tasks, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match title or description (case-insensitive)")
	cmd.Flags().StringVar(&status, "status", view.All, "filter by status (todo, in-progress, completed)")
	cmd.Flags().StringVarP(&priority, "priority", "p", view.All, "filter by priority (low, medium, high)")
	cmd.Flags().StringVar(&sortBy, "sort", string(view.SortByDueDate), "sort by dueDate or priority")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tasks as a JSON array")
	return cmd
}

type taskFlags struct {
	title       string
	description string
	due         string
	priority    string
	status      string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "markdown description")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "priority (low, medium, high)")
	cmd.Flags().StringVar(&f.status, "status", "", "status (todo, in-progress, completed)")
}

// apply copies the flags the user actually set into the session draft.
func (f *taskFlags) apply(cmd *cobra.Command, session *editing.Session) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		session.SetTitle(f.title)
	}
	if flags.Changed("description") {
		session.SetDescription(f.description)
	}
	if flags.Changed("due") {
		session.SetDueDate(f.due)
	}
	if flags.Changed("priority") {
		priority, err := model.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		session.SetPriority(priority)
	}
	if flags.Changed("status") {
		status, err := model.ParseStatus(f.status)
		if err != nil {
			return err
		}
		session.SetStatus(status)
	}
	return nil
}

func newAddCommand(e *env) *cobra.Command {
	flags := &taskFlags{}
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Long: `Add a task. Due date defaults to today, priority to Medium and
status to To Do.

Examples:
  zentask add "Write release notes"
  zentask add --title "Ship v1" --due 2024-09-01 --priority high`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := editing.NewSession()
			session.Open(nil)
			if len(args) == 1 {
				session.SetTitle(args[0])
			}
			if err := flags.apply(cmd, session); err != nil {
				return err
			}
			task, err := session.Submit(cmd.Context(), e.container.Tasks)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s\n", task.ID, task.Title)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCommand(e *env) *cobra.Command {
	flags := &taskFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit a task. Only the flags given are changed.

Example:
  zentask edit 3 --status done --priority low`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := lookup(e, args[0])
			if err != nil {
				return err
			}
			session := editing.NewSession()
			session.Open(&task)
			if err := flags.apply(cmd, session); err != nil {
				return err
			}
			saved, err := session.Submit(cmd.Context(), e.container.Tasks)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s  %s\n", saved.ID, saved.Title)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newStatusCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := e.container.Tasks.SetStatus(cmd.Context(), args[0], status); err != nil {
				return fmt.Errorf("task %q: %w", args[0], err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], status)
			return err
		},
	}
}

func newDeleteCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.container.Tasks.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("task %q: %w", args[0], err)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}

func lookup(e *env, id string) (model.Task, error) {
	task, ok := e.container.Tasks.Get(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task %q: %w", id, collection.ErrNotFound)
	}
	return task, nil
}

func printTasks(w io.Writer, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	fmt.Fprintf(w, "Tasks (%d):\n", len(tasks))
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, t := range tasks {
		marker := ""
		if t.IsOverdue(now) {
			marker = " [OVERDUE]"
		}
		fmt.Fprintf(w, "%s %-10s %-6s %s%s  (%s)\n", statusIcon(t.Status), t.DueDate, t.Priority, t.Title, marker, t.ID)
	}
}

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}
