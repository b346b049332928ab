package app

import (
	"folio/internal/domain/content"
	"folio/internal/domain/site"
	"folio/internal/series"
	"path"
	"sort"
	"strings"
)

// TagGroup collects the posts sharing one tag key. Name is the spelling of
// the first post that used it.
type TagGroup struct {
	Key   string
	Name  string
	Posts []content.Post
}

// GroupTags groups posts by TagKey, keeping each group in the order posts
// were given. Groups are sorted by key.
func GroupTags(posts []content.Post) []TagGroup {
	byKey := make(map[string]*TagGroup)
	var keys []string
	for _, p := range posts {
		seen := make(map[string]bool, len(p.Tags))
		for _, t := range p.Tags {
			key := content.TagKey(t)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			g, ok := byKey[key]
			if !ok {
				g = &TagGroup{Key: key, Name: strings.TrimSpace(t)}
				byKey[key] = g
				keys = append(keys, key)
			}
			g.Posts = append(g.Posts, p)
		}
	}
	sort.Strings(keys)
	out := make([]TagGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

type RouteBuilder struct{}

func (rb *RouteBuilder) BuildPageRoutes() []site.Route {
	return []site.Route{
		{Kind: site.RouteIndex, OutPath: "index.html"},
		{Kind: site.RouteSeriesIndex, OutPath: path.Join("series", "index.html")},
		{Kind: site.RouteAbout, OutPath: path.Join("about", "index.html")},
		{Kind: site.RouteNotFound, OutPath: "404.html"},
		{Kind: site.RoutePostsJSON, OutPath: "posts.json"},
	}
}

func (rb *RouteBuilder) BuildPostRoutes(posts []content.Post) []site.Route {
	routes := make([]site.Route, 0, len(posts))
	for _, p := range posts {
		routes = append(routes, site.Route{
			Kind:    site.RoutePost,
			Slug:    p.Slug,
			OutPath: path.Join("blog", p.Slug, "index.html"),
		})
	}
	return routes
}

func (rb *RouteBuilder) BuildSeriesRoutes(all []series.WithPosts) []site.Route {
	routes := make([]site.Route, 0, len(all))
	for _, s := range all {
		routes = append(routes, site.Route{
			Kind:    site.RouteSeries,
			Slug:    s.Slug,
			OutPath: path.Join("series", s.Slug, "index.html"),
		})
	}
	return routes
}

func (rb *RouteBuilder) BuildTagRoutes(tags []TagGroup) []site.Route {
	routes := make([]site.Route, 0, len(tags))
	for _, g := range tags {
		routes = append(routes, site.Route{
			Kind:    site.RouteTag,
			Key:     g.Key,
			OutPath: path.Join("tags", g.Key, "index.html"),
		})
	}
	return routes
}

// Build plans every output of a snapshot. Fixed pages come first.
func (rb *RouteBuilder) Build(snap *Snapshot) []site.Route {
	var routes []site.Route
	routes = append(routes, rb.BuildPageRoutes()...)
	routes = append(routes, rb.BuildPostRoutes(snap.Posts)...)
	routes = append(routes, rb.BuildSeriesRoutes(snap.Series)...)
	routes = append(routes, rb.BuildTagRoutes(snap.Tags)...)
	return routes
}
