package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/comfortmap/internal/app"
	"go.trai.ch/comfortmap/internal/core/domain"
)

// addBindingFlags registers the flags shared by render and exec.
func addBindingFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("set", "s", nil, "Bind an input value as name=value (repeatable)")
	cmd.Flags().StringP("workdir", "C", "", "Working directory of the command (defaults to the current directory)")
}

func bindingFlags(cmd *cobra.Command) (domain.Bindings, string, error) {
	pairs, _ := cmd.Flags().GetStringArray("set")
	workDir, _ := cmd.Flags().GetString("workdir")

	values, err := domain.ParseBindings(pairs)
	if err != nil {
		return nil, "", err
	}
	return values, workDir, nil
}

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <task>",
		Short: "Print the command line a task would run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, workDir, err := bindingFlags(cmd)
			if err != nil {
				return err
			}

			inv, err := c.app.Render(cmd.Context(), args[0], values, app.RenderOptions{WorkDir: workDir})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), inv.Line())
			return nil
		},
	}
	addBindingFlags(cmd)
	return cmd
}

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <task>",
		Short: "Stage inputs, run a task and record its outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, workDir, err := bindingFlags(cmd)
			if err != nil {
				return err
			}

			outputMode, _ := cmd.Flags().GetString("output-mode")

			result, err := c.app.Exec(cmd.Context(), args[0], values, app.ExecOptions{WorkDir: workDir, OutputMode: outputMode})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.ReceiptPath)
			return nil
		},
	}
	addBindingFlags(cmd)
	addOutputModeFlag(cmd)
	return cmd
}
