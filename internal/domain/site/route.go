package site

import (
	"fmt"
	"path"
	"strings"
)

type RouteKind string

const (
	RouteIndex       RouteKind = "index"
	RoutePost        RouteKind = "post"
	RouteTag         RouteKind = "tag"
	RouteSeriesIndex RouteKind = "series-index"
	RouteSeries      RouteKind = "series"
	RouteAbout       RouteKind = "about"
	RouteNotFound    RouteKind = "404"
	RoutePostsJSON   RouteKind = "posts-json"
)

type Route struct {
	Kind    RouteKind
	Slug    string
	Key     string
	Page    int
	OutPath string
}

// URL is the public path the route is served under.
func (r Route) URL() string {
	switch r.Kind {
	case RouteIndex:
		return "/"
	case RoutePost:
		return PostURL(r.Slug)
	case RouteTag:
		return TagURL(r.Key)
	case RouteSeriesIndex:
		return "/series/"
	case RouteSeries:
		return SeriesURL(r.Slug)
	case RouteAbout:
		return "/about/"
	case RouteNotFound:
		return "/404.html"
	case RoutePostsJSON:
		return "/posts.json"
	}
	return "/"
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	if r.Page > 0 {
		parts = append(parts, fmt.Sprintf("page=%d", r.Page))
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}

// Post slugs may contain "/" for documents stored in sub directories.
func PostURL(slug string) string {
	return path.Join("/blog", slug) + "/"
}

func SeriesURL(slug string) string {
	return path.Join("/series", slug) + "/"
}

func TagURL(key string) string {
	return path.Join("/tags", key) + "/"
}
