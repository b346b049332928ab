package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/build"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the public directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if out := strings.TrimSpace(outFlag); out != "" {
				cfg.Build.PublicDir = out
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

			start := time.Now()
			b := &build.Builder{Cfg: cfg, Site: site, Theme: ws.theme, Logger: ws.log}
			res, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Built %d pages into %s (%d posts, %d series, %d tags) in %s\n",
				res.Pages, cfg.Build.PublicDir, res.Posts, res.Series, res.Tags,
				time.Since(start).Round(time.Millisecond),
			)
			if n := len(res.Warnings); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d content warning(s):\n", n)
				for _, w := range res.Warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", w.Path, w.Msg)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output directory (overrides build.public_dir)")
	return cmd
}
