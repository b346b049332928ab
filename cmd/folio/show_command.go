package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"folio/internal/domain/content"
	"folio/internal/render"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Compile one post and print its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ws, err := ctx.openWorkspace(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.Close()

			slug := args[0]
			doc, err := ws.loader.LoadDocument(cmd.Context(), content.CollectionBlog, slug)
			if err != nil {
				return err
			}
			posts, _, err := ws.loader.LoadAll(cmd.Context(), content.CollectionBlog)
			if err != nil {
				return err
			}

			var nav *render.SeriesNav
			if ref := doc.FrontMatter.SeriesSlug(); ref != "" {
				nav = render.NewSeriesNav(ws.resolver.Context(posts, ref, slug))
			}
			printDocument(cmd.OutOrStdout(), doc, nav, render.EditURL(cfg.Site, doc.FrontMatter.FileName))
			return nil
		},
	}
}

func printDocument(w io.Writer, doc content.Document, nav *render.SeriesNav, editURL string) {
	fm := doc.FrontMatter
	line := func(k, v string) {
		if v != "" {
			fmt.Fprintf(w, "%-13s %s\n", k+":", v)
		}
	}
	line("Title", fm.Title)
	line("Slug", fm.Slug)
	line("File", fm.FileName)
	if fm.HasDate() {
		line("Date", fm.Date.Format("2006-01-02")+" ("+humanize.Time(fm.Date)+")")
	}
	if !fm.Lastmod.IsZero() {
		line("Last updated", fm.Lastmod.Format("2006-01-02"))
	}
	if fm.Draft {
		line("Draft", "yes")
	}
	line("Tags", strings.Join(fm.Tags, ", "))
	line("Reading", fmt.Sprintf("%d min (%s words)", fm.ReadingTime.RoundedMinutes(), humanize.Comma(int64(fm.ReadingTime.Words))))
	switch {
	case nav != nil:
		line("Series", fmt.Sprintf("%s, part %d of %d", nav.Title, nav.Position, nav.Total))
	case fm.SeriesSlug() != "":
		line("Series", fm.SeriesSlug()+" (not resolved)")
	}
	line("Edit", editURL)
	line("HTML", humanize.Bytes(uint64(len(doc.HTML))))
	if len(doc.TOC) > 0 {
		fmt.Fprintln(w, "Contents:")
		for _, h := range doc.TOC {
			fmt.Fprintf(w, "%s- %s\n", strings.Repeat("  ", max(h.Level-1, 0)), h.Text)
		}
	}
}
