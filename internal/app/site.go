package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"folio/internal/domain/build"
	"folio/internal/domain/config"
	"folio/internal/domain/content"
	domainerr "folio/internal/domain/errors"
	"folio/internal/domain/site"
	"folio/internal/render"
	"folio/internal/series"
)

// Source is what page assembly needs from the content loader. Both
// *ingest.Loader and *ingest.CachedLoader satisfy it.
type Source interface {
	LoadAll(ctx context.Context, kind content.Collection) ([]content.Post, []build.Warning, error)
	LoadDocument(ctx context.Context, kind content.Collection, slug string) (content.Document, error)
	LoadAuthor(ctx context.Context, slug string) (content.AuthorDocument, error)
}

// Snapshot is one consistent view of the blog collection.
type Snapshot struct {
	Posts    []content.Post
	Series   []series.WithPosts
	Tags     []TagGroup
	Warnings []build.Warning
	Routes   []site.Route
	Taken    time.Time
}

// Lookup finds the planned route serving urlPath.
func (s *Snapshot) Lookup(urlPath string) (site.Route, bool) {
	for _, r := range s.Routes {
		if r.Kind == site.RouteNotFound {
			continue
		}
		if r.URL() == urlPath {
			return r, true
		}
	}
	return site.Route{}, false
}

type SiteOptions struct {
	Config   config.Config
	Source   Source
	Resolver *series.Resolver
	Renderer render.Renderer
	Logger   *slog.Logger
}

// Site turns loader output into rendered pages.
type Site struct {
	cfg      config.Config
	src      Source
	resolver *series.Resolver
	tpl      render.Renderer
	routes   RouteBuilder
	log      *slog.Logger
}

func NewSite(opt SiteOptions) *Site {
	if opt.Resolver == nil {
		opt.Resolver = series.NewResolver(nil)
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Site{
		cfg:      opt.Config,
		src:      opt.Source,
		resolver: opt.Resolver,
		tpl:      opt.Renderer,
		log:      opt.Logger,
	}
}

func (s *Site) Config() config.Config {
	return s.cfg
}

func (s *Site) Resolver() *series.Resolver {
	return s.resolver
}

func (s *Site) Snapshot(ctx context.Context) (*Snapshot, error) {
	posts, warns, err := s.src.LoadAll(ctx, content.CollectionBlog)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	snap := &Snapshot{
		Posts:    posts,
		Series:   s.resolver.Collect(posts),
		Tags:     GroupTags(posts),
		Warnings: warns,
		Taken:    s.now(),
	}
	snap.Routes = s.routes.Build(snap)
	return snap, nil
}

func (s *Site) now() time.Time {
	if !s.cfg.Build.Now.IsZero() {
		return s.cfg.Build.Now
	}
	return time.Now()
}

// Render produces the bytes of one planned route.
func (s *Site) Render(ctx context.Context, snap *Snapshot, r site.Route) ([]byte, error) {
	switch r.Kind {
	case site.RouteIndex:
		return s.renderHome(ctx, snap)
	case site.RoutePost:
		return s.renderPost(ctx, snap, r.Slug)
	case site.RouteTag:
		return s.renderTag(ctx, snap, r.Key)
	case site.RouteSeriesIndex:
		return s.tpl.RenderSeriesIndex(ctx, render.SeriesIndexPage{
			Site:      s.cfg.Site,
			Series:    render.NewSeriesCards(snap.Series),
			PageTitle: "Series",
		})
	case site.RouteSeries:
		return s.renderSeries(ctx, snap, r.Slug)
	case site.RouteAbout:
		return s.renderAbout(ctx)
	case site.RouteNotFound:
		return s.RenderNotFound(ctx, "")
	case site.RoutePostsJSON:
		return PostsJSON(snap.Posts)
	}
	return nil, fmt.Errorf("unknown route kind %q", r.Kind)
}

func (s *Site) RenderNotFound(ctx context.Context, urlPath string) ([]byte, error) {
	return s.tpl.RenderNotFound(ctx, render.NotFoundPage{
		Site:      s.cfg.Site,
		Path:      urlPath,
		PageTitle: "Page Not Found",
	})
}

func (s *Site) renderHome(ctx context.Context, snap *Snapshot) ([]byte, error) {
	posts := snap.Posts
	if n := s.cfg.Site.PostsPerPage; n > 0 && len(posts) > n {
		posts = posts[:n]
	}
	return s.tpl.RenderHome(ctx, render.HomePage{
		Site:      s.cfg.Site,
		Posts:     posts,
		Series:    render.NewSeriesCards(snap.Series),
		Generated: snap.Taken,
		PageTitle: "",
	})
}

func (s *Site) renderPost(ctx context.Context, snap *Snapshot, slug string) ([]byte, error) {
	doc, err := s.src.LoadDocument(ctx, content.CollectionBlog, slug)
	if err != nil {
		return nil, err
	}
	fm := doc.FrontMatter
	page := render.PostPage{
		Site:      s.cfg.Site,
		Meta:      fm,
		HTML:      template.HTML(doc.HTML),
		TOC:       doc.TOC,
		EditURL:   render.EditURL(s.cfg.Site, fm.FileName),
		IsDraft:   fm.Draft,
		PageTitle: fm.Title,
	}
	if ref := fm.SeriesSlug(); ref != "" {
		page.Series = render.NewSeriesNav(s.resolver.Context(snap.Posts, ref, slug))
	}
	page.Newer, page.Older = render.Neighbours(snap.Posts, slug)
	return s.tpl.RenderPost(ctx, page)
}

func (s *Site) renderTag(ctx context.Context, snap *Snapshot, key string) ([]byte, error) {
	for _, g := range snap.Tags {
		if g.Key != key {
			continue
		}
		return s.tpl.RenderList(ctx, render.ListPage{
			Site:      s.cfg.Site,
			Title:     "Tag: " + g.Name,
			Tag:       g.Name,
			Posts:     g.Posts,
			Generated: snap.Taken,
			PageTitle: g.Name,
		})
	}
	return nil, &domainerr.NotFoundError{Collection: "tags", Slug: key}
}

func (s *Site) renderSeries(ctx context.Context, snap *Snapshot, slug string) ([]byte, error) {
	for _, sp := range snap.Series {
		if sp.Slug == slug {
			return s.tpl.RenderSeries(ctx, render.NewSeriesPage(s.cfg.Site, sp))
		}
	}
	return nil, &domainerr.NotFoundError{Collection: "series", Slug: slug}
}

// renderAbout falls back to the configured author name when the authors
// collection has no document for the default author.
func (s *Site) renderAbout(ctx context.Context) ([]byte, error) {
	page := render.AboutPage{
		Site:      s.cfg.Site,
		Author:    content.Author{Name: s.cfg.Site.Author},
		PageTitle: "About",
	}
	doc, err := s.src.LoadAuthor(ctx, s.cfg.Site.DefaultAuthor)
	switch {
	case err == nil:
		page.Author = doc.Author
		page.HTML = template.HTML(doc.HTML)
		if doc.Author.Name != "" {
			page.PageTitle = "About - " + doc.Author.Name
		}
	case errors.Is(err, domainerr.ErrNotFound):
		s.log.Debug("no author document", "slug", s.cfg.Site.DefaultAuthor)
	default:
		return nil, fmt.Errorf("load author: %w", err)
	}
	return s.tpl.RenderAbout(ctx, page)
}

// PostsJSON encodes the listing the way the loader returns it, with explicit
// nulls for absent optional fields.
func PostsJSON(posts []content.Post) ([]byte, error) {
	if posts == nil {
		posts = []content.Post{}
	}
	return json.MarshalIndent(posts, "", "  ")
}
