package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform <file>",
		Short: "Print a file as rewritten by the pipeline, or nothing when it is skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Transform(cmd.Context(), c.request(cmd, nil, pipelineFlags), args[0])
		},
	}
	addPipelineFlags(cmd)
	return cmd
}
