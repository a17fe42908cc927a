package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/epicroadmap/pkg/errors"
	pkgio "github.com/matzehuels/epicroadmap/pkg/io"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// checkCommand creates the check command, which validates a tree file
// written by build or normalize.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <tree.json>",
		Short: "Check an exported tree for cycles and inconsistent parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func runCheck(ctx context.Context, path string, w io.Writer) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	t, err := pkgio.ReadTree(f)
	if err != nil {
		return err
	}
	if t.IsEmpty() {
		printWarning(w, "%s holds an empty tree", path)
		return nil
	}
	if err := t.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	loggerFromContext(ctx).Debug("tree passed validation", "path", path)

	printSuccess(w, "%s is a valid tree", path)
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf("%s work items · %s edges · depth %d",
		humanize.Comma(int64(t.Len())), humanize.Comma(int64(t.EdgeCount())), maxDepth(t))))
	return nil
}

// maxDepth returns the deepest parent chain below Root, counting the top
// level as depth 1.
func maxDepth(t *tree.Tree) int {
	depth := 0
	for _, id := range t.Nodes() {
		depth = max(depth, t.Depth(id))
	}
	return depth
}
