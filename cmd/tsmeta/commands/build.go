package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entry...]",
		Short: "Build entry points with esbuild, emitting decorator metadata where needed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), c.request(cmd, args, pipelineFlags, buildFlags))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [entry...]",
		Short: "Build entry points and rebuild on change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), c.request(cmd, args, pipelineFlags, buildFlags))
		},
	}
	addBuildFlags(cmd)
	return cmd
}
