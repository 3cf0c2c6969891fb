package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <task>",
		Short: "Show the inputs, command and outputs of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			d, err := c.app.Describe(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(d); err != nil {
					return zerr.Wrap(err, "failed to encode descriptor")
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(d); err != nil {
					return zerr.Wrap(err, "failed to encode descriptor")
				}
				return nil
			default:
				return zerr.With(zerr.New("unsupported format, expected yaml or json"), "format", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	return cmd
}
