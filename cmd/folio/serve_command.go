package main

import (
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/serve"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addrFlag string
	var metricsFlag bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site with live reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if addr := strings.TrimSpace(addrFlag); addr != "" {
				cfg.Serve.Addr = addr
			}
			if metricsFlag {
				cfg.Serve.Metrics = true
			}

			ws, err := ctx.openWorkspace(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.Close()
			site, err := ws.site()
			if err != nil {
				return err
			}

			var metrics *serve.Metrics
			if cfg.Serve.Metrics {
				metrics = serve.NewMetrics()
			}
			srv := serve.New(serve.Options{
				Config:   cfg,
				Site:     site,
				Theme:    ws.theme,
				WatchDir: cfg.Build.ContentDir,
				Metrics:  metrics,
				Logger:   ws.log,
			})
			return srv.ListenAndServe(cmd.Context(), cfg.Serve.Addr)
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides serve.addr)")
	cmd.Flags().BoolVar(&metricsFlag, "metrics", false, "Expose Prometheus metrics on /metrics")
	return cmd
}
