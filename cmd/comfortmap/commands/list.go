package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available tasks",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			descriptors := c.app.List()

			width := 0
			for _, d := range descriptors {
				width = max(width, len(d.Name))
			}

			out := cmd.OutOrStdout()
			for _, d := range descriptors {
				_, _ = fmt.Fprintf(out, "%-*s  %s\n", width, d.Name, d.Summary)
			}
		},
	}
}
