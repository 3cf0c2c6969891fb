// Package commands implements the CLI commands for comfortmap.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/comfortmap/internal/adapters/detector"
	"go.trai.ch/comfortmap/internal/app"
	"go.trai.ch/comfortmap/internal/build"
	"go.trai.ch/comfortmap/internal/core/domain"
)

// CLI represents the command line interface for comfortmap.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	SetLogFormat(flag string) (detector.LogFormat, error)
	List() []*domain.Descriptor
	Describe(name string) (*domain.Descriptor, error)
	Render(ctx context.Context, name string, values domain.Bindings, opts app.RenderOptions) (*domain.Invocation, error)
	Exec(ctx context.Context, name string, values domain.Bindings, opts app.ExecOptions) (*app.Result, error)
	RunJobs(ctx context.Context, jobNames []string, opts app.RunOptions) ([]app.JobResult, error)
	WatchJobs(ctx context.Context, jobNames []string, opts app.RunOptions, report func([]app.JobResult)) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "comfortmap",
		Short:         "Run ladybug-comfort thermal mapping tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("log-format", detector.FormatAuto.String(), "Log format: auto, pretty, or json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("log-format")
		_, err := a.SetLogFormat(format)
		return err
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newDescribeCmd())
	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
