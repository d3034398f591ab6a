package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/zentask/internal/persistence"
)

const overwritePrompt = "This will overwrite your current tasks. Are you sure?"

func newExportCommand(e *env) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task to tasks.json",
		Long: `Write the whole collection, ignoring filters, to tasks.json in the
configured export directory or the directory given with --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				location string
				err      error
			)
			if outDir != "" {
				location, err = e.container.ExportTo(cmd.Context(), outDir)
			} else {
				location, err = e.container.Export(cmd.Context())
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", e.container.Tasks.Len(), location)
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write tasks.json into")
	return cmd
}

func newImportCommand(e *env) *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every task with the content of a JSON file",
		Long: `Replace the whole collection with the tasks in a JSON array file.
Each element needs an id and a title. The file is checked before anything
is replaced, and you are asked to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			tasks, err := persistence.ImportTasks(raw)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !assumeYes {
				ok, err := confirm(cmd, fmt.Sprintf("%s (%d task(s) in %s)", overwritePrompt, len(tasks), args[0]))
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(out, "Import cancelled.")
					return err
				}
			}
			n, err := e.container.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Imported %d task(s)\n", n)
			return err
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "replace without asking")
	return cmd
}

func confirm(cmd *cobra.Command, question string) (bool, error) {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
