package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/comfortmap/internal/adapters/detector"
	"go.trai.ch/comfortmap/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [jobs...]",
		Short: "Run jobs from comfortmap.yaml",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			jobs, _ := cmd.Flags().GetInt("jobs")
			watch, _ := cmd.Flags().GetBool("watch")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			out := cmd.OutOrStdout()
			opts := app.RunOptions{Jobs: jobs, OutputMode: outputMode}

			if watch {
				return c.app.WatchJobs(cmd.Context(), args, opts, func(results []app.JobResult) {
					printResults(out, results)
				})
			}

			results, err := c.app.RunJobs(cmd.Context(), args, opts)
			printResults(out, results)
			return err
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Number of jobs to run at once (defaults to the number of CPUs)")
	cmd.Flags().BoolP("watch", "w", false, "Re-run jobs whenever their input files change")
	addOutputModeFlag(cmd)
	return cmd
}

func addOutputModeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output-mode", "o", detector.ModeAuto.String(), "Output mode: auto, tui, or linear")
}

// printResults prints one "job<TAB>receipt path" line per successful job.
func printResults(out io.Writer, results []app.JobResult) {
	for _, r := range results {
		_, _ = fmt.Fprintf(out, "%s\t%s\n", r.Job, r.ReceiptPath)
	}
}
