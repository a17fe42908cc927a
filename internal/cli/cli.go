// Package cli implements the epicroadmap command-line interface.
//
// This package provides commands that turn work-item links exported from a
// work tracker into a roadmap tree that follows the team's backlog
// hierarchy, and a server command exposing the same pipeline over HTTP.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - build: index links into the raw tree
//   - normalize: rewrite the tree along the backlog hierarchy and export it
//   - print: show the normalized tree in the terminal
//   - ranks: show the rank of each work item type in a backlog configuration
//   - serve: run the HTTP API
//
// # Configuration
//
// Settings come from .epicroadmap.toml (or --config), EPICROADMAP_*
// environment variables, and defaults; see the internal/config package.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to the command implementations.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/epicroadmap/internal/config"
	"github.com/matzehuels/epicroadmap/pkg/backlog"
	"github.com/matzehuels/epicroadmap/pkg/buildinfo"
	"github.com/matzehuels/epicroadmap/pkg/roadmap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), cfg: config.Default()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "epicroadmap",
		Short: "epicroadmap builds roadmap trees from work item links",
		Long: `epicroadmap turns parent/child links between work items into a roadmap tree
that follows the team's backlog hierarchy: epics above features above stories.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default .epicroadmap.toml in . or $HOME)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.printCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.ranksCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies its log level unless --verbose is
// set, and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.verbose {
		c.SetLogLevel(LogDebug)
	} else if lvl, err := cfg.Log.ParseLevel(); err == nil {
		c.SetLogLevel(lvl)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner & Backlog
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *roadmap.Runner {
	return roadmap.NewRunner(c.Logger)
}

// loadBacklog resolves the backlog configuration: an explicit path wins,
// then backlog.file from the config. It returns nil when neither is set so
// that a backlog embedded in the input, or the default, applies.
func (c *CLI) loadBacklog(path string) (*backlog.Configuration, error) {
	if path == "" && c.cfg != nil {
		path = c.cfg.Backlog.File
	}
	if path == "" {
		return nil, nil
	}
	c.Logger.Debug("loading backlog configuration", "path", path)
	return backlog.Load(path)
}
