// Package commands implements the CLI commands for the tsmeta build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tsmeta/internal/app"
	"go.trai.ch/tsmeta/internal/build"
)

// CLI represents the command line interface for tsmeta.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configFile string
	verbose    bool
	json       bool
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(verbose, json bool)
	Build(ctx context.Context, req app.Request) error
	Watch(ctx context.Context, req app.Request) error
	Check(ctx context.Context, req app.Request, opts app.CheckOptions) error
	Transform(ctx context.Context, req app.Request, file string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tsmeta",
		Short:         "Emit TypeScript decorator metadata for the files that need it",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.configFile, "config", "c", "", "Settings file (default: tsmeta.yaml if present)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Log per-file decisions and compiler diagnostics")
	pf.BoolVar(&c.json, "json", false, "Log as JSON")

	// -v belongs to --verbose, so --version is long-only.
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		c.app.ConfigureLogging(c.verbose, c.json)
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newTransformCmd())
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
