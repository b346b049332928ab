package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"folio/internal/domain/content"
	"folio/internal/series"
)

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "series [slug]",
		Short: "List series, or the ordered parts of one series",
		Args:  cobra.MaximumNArgs(1),
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

			posts, _, err := ws.loader.LoadAll(cmd.Context(), content.CollectionBlog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				s, ok := ws.resolver.Find(posts, args[0])
				if !ok {
					return fmt.Errorf("series %q has no posts", args[0])
				}
				fmt.Fprintf(out, "%s (%s)\n", s.Title, s.Slug)
				fmt.Fprintln(out, seriesPartsTable(s))
				return nil
			}
			fmt.Fprintln(out, seriesTable(ws.resolver, posts))
			return nil
		},
	}
}

// seriesTable lists resolved series first, then catalog entries without
// posts.
func seriesTable(r *series.Resolver, posts []content.Post) string {
	collected := r.Collect(posts)
	seen := make(map[string]bool, len(collected))
	rows := make([][]string, 0, len(collected))
	for _, s := range collected {
		_, inCatalog := r.Catalog().Lookup(s.Slug)
		seen[s.Slug] = true
		rows = append(rows, []string{s.Slug, s.Title, strconv.Itoa(len(s.Posts)), yesNo(inCatalog)})
	}
	for _, def := range r.List() {
		if seen[def.Slug] {
			continue
		}
		rows = append(rows, []string{def.Slug, def.Title, "0", yesNo(true)})
	}
	return renderTable(
		[]string{"Slug", "Title", "Posts", "Catalog"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func seriesPartsTable(s series.WithPosts) string {
	rows := make([][]string, 0, len(s.Posts))
	for i, p := range s.Posts {
		rows = append(rows, []string{series.PartLabel(p, i), p.Title, formatDate(p), p.Slug})
	}
	return renderTable(
		[]string{"Part", "Title", "Date", "Slug"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
