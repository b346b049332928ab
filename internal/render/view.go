package render

import (
	"fmt"
	"folio/internal/catalog"
	"folio/internal/domain/config"
	"folio/internal/domain/content"
	"folio/internal/domain/site"
	"folio/internal/series"
	"html/template"
	"strings"
	"time"
)

type HomePage struct {
	Site      config.SiteConfig
	Posts     []content.Post
	Series    []SeriesCard
	Generated time.Time
	PageTitle string
}

// SeriesPart is one row of a series listing.
type SeriesPart struct {
	Label   string
	Post    content.Post
	URL     string
	Current bool
}

// SeriesNav is the "part N of M" box on a post page.
type SeriesNav struct {
	Slug     string
	Title    string
	Summary  string
	URL      string
	Position int
	Total    int
	Prev     *SeriesPart
	Next     *SeriesPart
	Parts    []SeriesPart
}

type PostPage struct {
	Site      config.SiteConfig
	Meta      content.FrontMatter
	HTML      template.HTML
	TOC       []content.Heading
	Series    *SeriesNav
	Newer     *content.Post
	Older     *content.Post
	EditURL   string
	IsDraft   bool
	PageTitle string
}

type SeriesCard struct {
	catalog.Definition
	URL        string
	CountLabel string
	Parts      []SeriesPart
}

type SeriesIndexPage struct {
	Site      config.SiteConfig
	Series    []SeriesCard
	PageTitle string
}

type SeriesPage struct {
	Site        config.SiteConfig
	Series      SeriesCard
	Description string
	CTA         *catalog.CTA
	PageTitle   string
}

type ListPage struct {
	Site      config.SiteConfig
	Title     string
	Tag       string
	Posts     []content.Post
	Generated time.Time
	PageTitle string
}

type AboutPage struct {
	Site      config.SiteConfig
	Author    content.Author
	HTML      template.HTML
	PageTitle string
}

type NotFoundPage struct {
	Site      config.SiteConfig
	Path      string
	PageTitle string
}

func parts(posts []content.Post, current string) []SeriesPart {
	out := make([]SeriesPart, len(posts))
	for i, p := range posts {
		out[i] = SeriesPart{
			Label:   series.PartLabel(p, i),
			Post:    p,
			URL:     site.PostURL(p.Slug),
			Current: current != "" && p.Slug == current,
		}
	}
	return out
}

// NewSeriesNav returns nil unless the post was found in its series.
func NewSeriesNav(ctx *series.Context) *SeriesNav {
	if !ctx.Found() {
		return nil
	}
	cur, _ := ctx.Current()
	all := parts(ctx.Posts, cur.Slug)
	nav := &SeriesNav{
		Slug:     ctx.Meta.Slug,
		Title:    ctx.Meta.Title,
		Summary:  ctx.Meta.Summary,
		URL:      site.SeriesURL(ctx.Meta.Slug),
		Position: ctx.Position(),
		Total:    ctx.Total(),
		Parts:    all,
	}
	if _, ok := ctx.Prev(); ok {
		nav.Prev = &all[ctx.CurrentIndex-1]
	}
	if _, ok := ctx.Next(); ok {
		nav.Next = &all[ctx.CurrentIndex+1]
	}
	return nav
}

func CountLabel(n int) string {
	if n == 1 {
		return "1 Post"
	}
	return fmt.Sprintf("%d Posts", n)
}

func NewSeriesCard(s series.WithPosts) SeriesCard {
	return SeriesCard{
		Definition: s.Definition,
		URL:        site.SeriesURL(s.Slug),
		CountLabel: CountLabel(len(s.Posts)),
		Parts:      parts(s.Posts, ""),
	}
}

func NewSeriesCards(all []series.WithPosts) []SeriesCard {
	out := make([]SeriesCard, 0, len(all))
	for _, s := range all {
		out = append(out, NewSeriesCard(s))
	}
	return out
}

func NewSeriesPage(cfg config.SiteConfig, s series.WithPosts) SeriesPage {
	card := NewSeriesCard(s)
	desc := firstNonEmpty(s.Summary, s.Description)
	if desc == "" {
		desc = fmt.Sprintf("A curated collection of %d posts from %s.", len(s.Posts), cfg.Author)
	}
	page := SeriesPage{
		Site:        cfg,
		Series:      card,
		Description: desc,
		PageTitle:   s.Title,
	}
	if s.CTA.Usable() {
		cta := *s.CTA
		page.CTA = &cta
	}
	return page
}

// EditURL links a post to its source file in the site repository.
func EditURL(cfg config.SiteConfig, fileName string) string {
	repo := strings.TrimRight(strings.TrimSpace(cfg.RepoURL), "/")
	if repo == "" || fileName == "" {
		return ""
	}
	return repo + "/blob/main/data/blog/" + fileName
}

// Neighbours returns the newer and older posts around slug in a date
// descending listing.
func Neighbours(posts []content.Post, slug string) (newer, older *content.Post) {
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if i > 0 {
			newer = &posts[i-1]
		}
		if i+1 < len(posts) {
			older = &posts[i+1]
		}
		return newer, older
	}
	return nil, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
