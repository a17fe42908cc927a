package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/epicroadmap/internal/metrics"
	"github.com/matzehuels/epicroadmap/internal/server"
	"github.com/matzehuels/epicroadmap/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API until the
// process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, backlogPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roadmap pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadBacklog(backlogPath)
			if err != nil {
				return err
			}

			m := metrics.New()
			observability.SetPipelineHooks(m.Pipeline())
			observability.SetHTTPHooks(m.HTTP())
			defer observability.Reset()

			srvCfg := c.cfg.Server
			if addr != "" {
				srvCfg.Addr = addr
			}
			srv := server.New(server.Options{
				Config:  srvCfg,
				Logger:  loggerFromContext(cmd.Context()),
				Backlog: cfg,
				Metrics: m.Handler(),
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr from config, :8080)")
	cmd.Flags().StringVar(&backlogPath, "backlog", "", "default backlog configuration file for requests without one")
	return cmd
}
