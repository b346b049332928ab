package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"folio/internal/catalog"
	"folio/internal/domain/config"
	"folio/internal/domain/content"
	domainerr "folio/internal/domain/errors"
	"folio/internal/domain/site"
	"folio/internal/ingest"
	"folio/internal/render"
	"folio/internal/series"
)

func writeDoc(t *testing.T, root, rel, data string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestSite(t *testing.T) (*Site, string) {
	t.Helper()
	root := t.TempDir()
	writeDoc(t, root, "blog/intro.md", "---\ntitle: Intro\ndate: 2024-01-01\ntags: [Remote Work]\nseries:\n  slug: remote\n  order: 1\n---\n# Hello\n")
	writeDoc(t, root, "blog/followup.mdx", "---\ntitle: Follow Up\ndate: 2024-02-01\ntags: [remote work, Go]\nseries:\n  slug: remote\n  order: 2\n---\nmore\n")
	writeDoc(t, root, "blog/solo.md", "---\ntitle: Solo\ndate: 2024-03-01\n---\nalone\n")
	writeDoc(t, root, "blog/secret.md", "---\ntitle: Secret\ndraft: true\n---\nshh\n")

	theme, err := render.LoadTheme(t.TempDir(), "default")
	if err != nil {
		t.Fatal(err)
	}
	tpl, err := render.NewTemplateRenderer(theme)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Site.Author = "Sam"
	cfg.Site.RepoURL = "https://github.com/someone/site"
	cfg.Build.ContentDir = root
	cfg.Build.Now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewSite(SiteOptions{
		Config:   cfg,
		Source:   ingest.NewLoader(ingest.Options{Root: root, Logger: log}),
		Resolver: series.NewResolver(catalog.New(catalog.Definition{Slug: "remote", Title: "Remote Work"})),
		Renderer: tpl,
		Logger:   log,
	})
	return s, root
}

func TestGroupTags(t *testing.T) {
	posts := []content.Post{
		{Slug: "a", Tags: []string{"Go", "go", "Remote Work"}},
		{Slug: "b", Tags: []string{"remote  work", " "}},
	}
	groups := GroupTags(posts)
	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Key != "go" || len(groups[0].Posts) != 1 {
		t.Errorf("go group = %+v", groups[0])
	}
	if groups[1].Key != "remote-work" || groups[1].Name != "Remote Work" || len(groups[1].Posts) != 2 {
		t.Errorf("remote group = %+v", groups[1])
	}
}

func TestRouteBuilderOutPaths(t *testing.T) {
	snap := &Snapshot{
		Posts:  []content.Post{{Slug: "nested/post"}},
		Series: []series.WithPosts{{Definition: catalog.Definition{Slug: "remote"}}},
		Tags:   []TagGroup{{Key: "go"}},
	}
	var rb RouteBuilder
	got := map[string]site.RouteKind{}
	for _, r := range rb.Build(snap) {
		got[r.OutPath] = r.Kind
	}
	want := map[string]site.RouteKind{
		"index.html":                  site.RouteIndex,
		"series/index.html":           site.RouteSeriesIndex,
		"about/index.html":            site.RouteAbout,
		"404.html":                    site.RouteNotFound,
		"posts.json":                  site.RoutePostsJSON,
		"blog/nested/post/index.html": site.RoutePost,
		"series/remote/index.html":    site.RouteSeries,
		"tags/go/index.html":          site.RouteTag,
	}
	if len(got) != len(want) {
		t.Fatalf("routes = %v", got)
	}
	for out, kind := range want {
		if got[out] != kind {
			t.Errorf("%s: kind %q, want %q", out, got[out], kind)
		}
	}
}

func TestSnapshotAndLookup(t *testing.T) {
	s, _ := newTestSite(t)
	snap, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Posts) != 3 {
		t.Fatalf("posts = %d", len(snap.Posts))
	}
	if len(snap.Series) != 1 || snap.Series[0].Title != "Remote Work" || len(snap.Series[0].Posts) != 2 {
		t.Fatalf("series = %+v", snap.Series)
	}
	if r, ok := snap.Lookup("/blog/intro/"); !ok || r.Kind != site.RoutePost || r.Slug != "intro" {
		t.Errorf("lookup post = %+v %v", r, ok)
	}
	if r, ok := snap.Lookup("/tags/remote-work/"); !ok || r.Key != "remote-work" {
		t.Errorf("lookup tag = %+v %v", r, ok)
	}
	if _, ok := snap.Lookup("/blog/secret/"); ok {
		t.Error("draft post was planned")
	}
	if _, ok := snap.Lookup("/404.html"); ok {
		t.Error("404 page is addressable")
	}
}

func TestRenderPostPage(t *testing.T) {
	s, _ := newTestSite(t)
	ctx := context.Background()
	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Render(ctx, snap, site.Route{Kind: site.RoutePost, Slug: "followup"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		"part 2 of 2",
		"Previous: Intro",
		"/blob/main/data/blog/followup.mdx",
		`href="/blog/solo/"`,
		`href="/blog/intro/"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestRenderMissingPages(t *testing.T) {
	s, _ := newTestSite(t)
	ctx := context.Background()
	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []site.Route{
		{Kind: site.RoutePost, Slug: "nope"},
		{Kind: site.RouteTag, Key: "nope"},
		{Kind: site.RouteSeries, Slug: "nope"},
	} {
		if _, err := s.Render(ctx, snap, r); !errors.Is(err, domainerr.ErrNotFound) {
			t.Errorf("%s: err = %v, want not found", r, err)
		}
	}
}

func TestRenderAboutFallsBackToSiteAuthor(t *testing.T) {
	s, root := newTestSite(t)
	ctx := context.Background()
	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Render(ctx, snap, site.Route{Kind: site.RouteAbout})
	if err != nil {
		t.Fatalf("about: %v", err)
	}
	if !strings.Contains(string(out), "<h1>Sam</h1>") {
		t.Errorf("about page without fallback author:\n%s", out)
	}

	writeDoc(t, root, "authors/default.md", "---\nname: Sam Doe\noccupation: Writer\n---\nHi there\n")
	out, err = s.Render(ctx, snap, site.Route{Kind: site.RouteAbout})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<h1>Sam Doe</h1>", "Writer", "Hi there"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("about page missing %q", want)
		}
	}
}

func TestPostsJSONHasExplicitNulls(t *testing.T) {
	s, _ := newTestSite(t)
	ctx := context.Background()
	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Render(ctx, snap, site.Route{Kind: site.RoutePostsJSON})
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("records = %d", len(decoded))
	}
	solo := decoded[0]
	if solo["slug"] != "solo" {
		t.Fatalf("first record = %v", solo)
	}
	for _, key := range []string{"summary", "cover", "series"} {
		v, ok := solo[key]
		if !ok || v != nil {
			t.Errorf("%s = %v (present %v), want explicit null", key, v, ok)
		}
	}

	empty, err := PostsJSON(nil)
	if err != nil || strings.TrimSpace(string(empty)) != "[]" {
		t.Errorf("PostsJSON(nil) = %s, %v", empty, err)
	}
}
