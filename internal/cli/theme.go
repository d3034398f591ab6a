package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/zentask/internal/model"
	"github.com/sandeepkv93/zentask/internal/view"
)

func newThemeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the stored theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			current := e.container.Theme(ctx)
			if len(args) == 0 {
				_, err := fmt.Fprintf(out, "Theme: %s\n", current)
				return err
			}

			var next model.Theme
			switch strings.ToLower(strings.TrimSpace(args[0])) {
			case "toggle":
				next = current.Toggle()
			case string(model.ThemeDark):
				next = model.ThemeDark
			case string(model.ThemeLight):
				next = model.ThemeLight
			default:
				return fmt.Errorf("unknown theme %q: use dark, light or toggle", args[0])
			}
			if err := e.container.SetTheme(ctx, next); err != nil {
				return err
			}
			_, err := fmt.Fprintf(out, "Theme: %s\n", next)
			return err
		},
	}
}

func newStatsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := e.container.Tasks.Tasks()
			summary := view.Summarize(tasks)
			counts := view.CountByStatus(tasks)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d of %d tasks completed. (%.0f%%)\n", summary.Completed, summary.Total, summary.ProgressPercentage)
			for _, status := range model.Statuses {
				fmt.Fprintf(out, "  %-12s %d\n", status, counts[status])
			}
			return nil
		},
	}
}
