package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg     server.Config
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart API over HTTP",
		Long: `Serve the render, scale and sankey level operations over HTTP.

Routes:
  POST /v1/render?format=svg|json|png|pdf   chart JSON or TOML body
  POST /v1/scale                            {"min", "max", "ticks", "begin_at_zero", "log"}
  POST /v1/sankey/levels                    chart with links
  GET  /healthz

The server shares the cache selected with --cache, with keys prefixed by
"server:" so they never collide with CLI renders.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config, noCache bool) error {
	if cfg.Timeout < time.Second {
		return fmt.Errorf("timeout %s is below 1s", cfg.Timeout)
	}
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, "server:"), c.Logger)
	defer runner.Close()

	printInfo("Listening on %s", StyleValue.Render(cfg.Addr))
	return server.New(runner, cfg, c.Logger).ListenAndServe(ctx)
}
