package cli

import (
	"context"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/epicroadmap/pkg/io"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output string // output file path, stdout when empty
}

// buildCommand creates the build command, which indexes the input links into
// the raw tree without applying the backlog hierarchy.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <input.json>",
		Short: "Index work item links into the raw tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) runBuild(ctx context.Context, input string, opts buildOpts, stdout, status io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := pkgio.ImportInput(input)
	if err != nil {
		return err
	}

	raw, stats := c.newRunner().Build(ctx, in.Links, in.Scope())
	prog.done("Built raw tree with " + humanize.Comma(int64(stats.RawNodes)) + " work items")

	if opts.output == "" || opts.output == "-" {
		return pkgio.WriteTree(raw, stdout)
	}
	if err := pkgio.ExportTree(raw, opts.output); err != nil {
		return err
	}
	printSuccess(status, "Raw tree written")
	printFile(status, opts.output, fileSize(opts.output))
	return nil
}
