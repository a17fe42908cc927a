package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/epicroadmap/pkg/io"
	"github.com/matzehuels/epicroadmap/pkg/roadmap"
)

// normalizeOpts holds the command-line flags for the normalize command.
type normalizeOpts struct {
	backlog  string   // backlog configuration file, overrides the input's backlog
	output   string   // output file path or base path for several formats
	formats  []string // output formats: json, dot, svg, png
	validate bool     // check the structural invariants of the result
	showRoot bool     // draw the virtual root in diagrams
	detailed bool     // include work item states in diagrams
}

// normalizeCommand creates the normalize command, which runs the full
// pipeline and exports the normalized tree.
func (c *CLI) normalizeCommand() *cobra.Command {
	var formatsStr string
	var opts normalizeOpts

	cmd := &cobra.Command{
		Use:   "normalize <input.json>",
		Short: "Build the roadmap tree along the backlog hierarchy",
		Long: `Build the raw tree from the input links, then rewrite it so that every work
item hangs below the nearest ancestor of a higher backlog level. Work items
whose type has no backlog level are dropped together with their subtrees.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runNormalize(cmd.Context(), args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.backlog, "backlog", "", "backlog configuration file (.toml, .yaml, .json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "check the normalized tree for cycles and inconsistent parents")
	cmd.Flags().BoolVar(&opts.showRoot, "show-root", false, "draw the virtual root in diagrams")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include work item states in diagrams")

	return cmd
}

func (c *CLI) runNormalize(ctx context.Context, input string, opts normalizeOpts, stdout, status io.Writer) error {
	res, in, err := c.runPipeline(ctx, input, opts.backlog)
	if err != nil {
		return err
	}

	if opts.validate {
		if err := res.Normalized.Validate(); err != nil {
			return fmt.Errorf("normalized tree is invalid: %w", err)
		}
		loggerFromContext(ctx).Debug("normalized tree passed validation")
	}

	if res.Stats.NormalizedNodes == 0 {
		printWarning(status, "No work item is ranked by the backlog configuration; the tree is empty")
	}

	ro := renderOpts{
		items:    in.Items(),
		showRoot: opts.showRoot,
		detailed: opts.detailed,
		progress: terminal(status),
	}
	return writeOutputs(ctx, res.Normalized, input, opts.output, opts.formats, ro, stdout, status)
}

// runPipeline imports the input, resolves the backlog configuration, and
// runs the pipeline.
func (c *CLI) runPipeline(ctx context.Context, input, backlogPath string) (*roadmap.Result, roadmap.Input, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := pkgio.ImportInput(input)
	if err != nil {
		return nil, in, err
	}
	cfg, err := c.loadBacklog(backlogPath)
	if err != nil {
		return nil, in, err
	}
	if cfg != nil {
		in.Backlog = cfg
	}

	res, err := c.newRunner().Run(ctx, in)
	if err != nil {
		return nil, in, err
	}
	prog.done(fmt.Sprintf("Normalized %s work items from %s links",
		humanize.Comma(int64(res.Stats.NormalizedNodes)), humanize.Comma(int64(res.Stats.LinkCount))))
	return res, in, nil
}
