package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"folio/internal/domain/content"
	"folio/internal/index"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "index [slug]",
		Short: "Refresh the content cache and print what it holds",
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

			if _, _, err := ws.loader.LoadAll(cmd.Context(), content.CollectionBlog); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				p, err := ws.store.Get(content.CollectionBlog, args[0])
				if errors.Is(err, index.ErrNotFound) {
					return fmt.Errorf("post %q is not in the index", args[0])
				}
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fp, err := ws.store.Fingerprint(content.CollectionBlog)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Index:      %s\n", cfg.Build.IndexPath)
			fmt.Fprintf(out, "Documents:  %d\n", fp.Documents)
			fmt.Fprintf(out, "Content:    %s\n", shortHash(fp.ContentHash))

			sums, err := ws.store.SeriesSummaries(content.CollectionBlog)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(sums))
			for _, s := range sums {
				rows = append(rows, []string{s.Slug, strconv.Itoa(s.Count)})
			}
			fmt.Fprintln(out, renderTable([]string{"Series", "Posts"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16]
	}
	return h
}
