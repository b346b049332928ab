package render

import (
	"context"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"folio/internal/catalog"
	"folio/internal/domain/config"
	"folio/internal/domain/content"
	"folio/internal/series"
)

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	theme, err := LoadTheme(t.TempDir(), "default")
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	r, err := NewTemplateRenderer(theme)
	if err != nil {
		t.Fatalf("NewTemplateRenderer: %v", err)
	}
	return r
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}

func TestThemeOverrideRequiresAllTemplates(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "mine", "templates")
	if err := os.MkdirAll(tpl, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tpl, "home.tmpl"), []byte("home"), 0o644); err != nil {
		t.Fatal(err)
	}
	theme, err := LoadTheme(dir, "mine")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTemplateRenderer(theme); err == nil || !strings.Contains(err.Error(), "post.tmpl") {
		t.Fatalf("err = %v, want missing post.tmpl", err)
	}
}

func TestRenderPostWithSeries(t *testing.T) {
	r := newTestRenderer(t)
	posts := []content.Post{
		seriesPost("one", "Part One", nil),
		seriesPost("two", "Part Two", nil),
		seriesPost("three", "Part Three", nil),
	}
	nav := NewSeriesNav(&series.Context{
		Meta:         catalog.Definition{Slug: "remote", Title: "Remote Work"},
		Posts:        posts,
		CurrentIndex: 1,
	})
	fm := content.FrontMatter{
		Post:        posts[1],
		ReadingTime: content.ReadingTime{Text: "3 min read"},
	}
	fm.Tags = []string{"Go Lang"}

	out, err := r.RenderPost(context.Background(), PostPage{
		Site:      config.SiteConfig{Title: "Blog"},
		Meta:      fm,
		HTML:      template.HTML("<p>hello</p>"),
		Series:    nav,
		EditURL:   "https://example.com/edit",
		PageTitle: fm.Title,
	})
	if err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	html := string(out)
	requireContains(t, html, "<title>Part Two | Blog</title>")
	requireContains(t, html, "part 2 of 3")
	requireContains(t, html, "Previous: Part One")
	requireContains(t, html, "Next: Part Three")
	requireContains(t, html, "3 min read")
	requireContains(t, html, `href="/tags/go-lang/"`)
	requireContains(t, html, "<p>hello</p>")
	requireContains(t, html, "https://example.com/edit")
}

func TestRenderPostWithoutSeries(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderPost(context.Background(), PostPage{
		Meta: content.FrontMatter{Post: content.Post{Title: "Solo", Slug: "solo"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "series-nav") {
		t.Error("series widget rendered for a post without series")
	}
}

func TestRenderSeriesCTA(t *testing.T) {
	r := newTestRenderer(t)
	s := series.WithPosts{
		Definition: catalog.Definition{
			Slug:  "remote",
			Title: "Remote",
			CTA:   &catalog.CTA{Label: "Join the list", Href: "/newsletter"},
		},
		Posts: []content.Post{seriesPost("one", "Part One", order(2))},
	}
	out, err := r.RenderSeries(context.Background(), NewSeriesPage(config.SiteConfig{Author: "Sam"}, s))
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	requireContains(t, html, "1 Post")
	requireContains(t, html, "Part 2")
	requireContains(t, html, `href="/newsletter"`)
	requireContains(t, html, "Join the list")
}

func TestRenderHomeAndNotFound(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderHome(context.Background(), HomePage{
		Site:      config.SiteConfig{Title: "Blog"},
		Posts:     []content.Post{{Title: "Hello", Slug: "hello", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}},
		Generated: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	requireContains(t, string(out), `href="/blog/hello/"`)
	requireContains(t, string(out), "May 1, 2024")

	out, err = r.RenderNotFound(context.Background(), NotFoundPage{Path: "/nope"})
	if err != nil {
		t.Fatal(err)
	}
	requireContains(t, string(out), "/nope")
}
