package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"folio/internal/domain/content"
)

func newPostsCommand(ctx *commandContext) *cobra.Command {
	var tagFlag string

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List published posts, newest first",
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

			posts, warns, err := ws.loader.LoadAll(cmd.Context(), content.CollectionBlog)
			if err != nil {
				return err
			}
			if key := content.TagKey(tagFlag); key != "" {
				posts = filterByTag(posts, key)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, postsTable(posts))
			fmt.Fprintf(out, "%s post(s)", humanize.Comma(int64(len(posts))))
			if len(warns) > 0 {
				fmt.Fprintf(out, ", %d skipped", len(warns))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&tagFlag, "tag", "", "Only list posts carrying this tag")
	return cmd
}

func filterByTag(posts []content.Post, key string) []content.Post {
	var out []content.Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if content.TagKey(t) == key {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func postsTable(posts []content.Post) string {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			formatDate(p),
			p.Title,
			p.Slug,
			p.SeriesSlug(),
			strings.Join(p.Tags, ", "),
		})
	}
	return renderTable(
		[]string{"Date", "Title", "Slug", "Series", "Tags"},
		rows,
		nil,
	)
}

func formatDate(p content.Post) string {
	if !p.HasDate() {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", p.Date.Format("2006-01-02"), humanize.Time(p.Date))
}
