package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/epicroadmap/pkg/backlog"
)

// ranksCommand creates the ranks command, which shows how a backlog
// configuration ranks work item types.
func (c *CLI) ranksCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ranks [backlog-file]",
		Short: "Show the rank of each work item type",
		Long: `Show the backlog levels of a configuration file, or of the configured
backlog.file, or of the stock Agile process when neither is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := c.loadBacklog(path)
			if err != nil {
				return err
			}
			if cfg == nil {
				cfg = backlog.Default()
			}
			return runRanks(cfg, asJSON, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the rank map as JSON")
	return cmd
}

func runRanks(cfg *backlog.Configuration, asJSON bool, w io.Writer) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg.RankMap())
	}
	fmt.Fprintln(w, renderRanks(cfg))
	return nil
}

// sortedLevels returns the levels of cfg ordered by rank, then name.
func sortedLevels(cfg *backlog.Configuration) []backlog.Level {
	levels := slices.Clone(cfg.Levels())
	slices.SortStableFunc(levels, func(a, b backlog.Level) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), cmp.Compare(a.Name, b.Name))
	})
	return levels
}
