package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// printCommand creates the print command, which shows the normalized tree in
// the terminal.
func (c *CLI) printCommand() *cobra.Command {
	var backlogPath string

	cmd := &cobra.Command{
		Use:   "print <input.json>",
		Short: "Print the roadmap tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(cmd.Context(), args[0], backlogPath, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&backlogPath, "backlog", "", "backlog configuration file (.toml, .yaml, .json)")
	return cmd
}

func (c *CLI) runPrint(ctx context.Context, input, backlogPath string, w io.Writer) error {
	res, in, err := c.runPipeline(ctx, input, backlogPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, renderTree(res.Normalized, in.Items()))
	fmt.Fprintln(w)
	printStats(w, res.Stats)
	return nil
}
