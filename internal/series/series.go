// Package series groups posts into series and answers navigation queries.
//
// Ordering inside a series is a strict total order: declared order ascending
// (undeclared last), then date ascending (undated last), then title and
// finally slug, both by byte order. The same input multiset therefore always
// yields the same sequence, whatever order the posts arrive in.
package series

import (
	"sort"

	"folio/internal/catalog"
	"folio/internal/domain/content"
)

// WithPosts is a catalog definition plus its ordered posts.
type WithPosts struct {
	catalog.Definition
	Posts []content.Post
}

type Resolver struct {
	catalog *catalog.Catalog
}

// NewResolver uses the built-in catalog when c is nil.
func NewResolver(c *catalog.Catalog) *Resolver {
	if c == nil {
		c = catalog.Default()
	}
	return &Resolver{catalog: c}
}

func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

func (r *Resolver) Meta(slug string) catalog.Definition {
	return r.catalog.Meta(slug)
}

func (r *Resolver) List() []catalog.Definition {
	return r.catalog.List()
}

// Order returns a sorted copy of posts: declared order first, then date,
// title and slug. When orders tie a dated post sorts before an undated one,
// and the slug comparison makes the order total.
func Order(posts []content.Post) []content.Post {
	out := make([]content.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func less(a, b content.Post) bool {
	ao, aok := declaredOrder(a)
	bo, bok := declaredOrder(b)
	if aok != bok {
		return aok
	}
	if aok && ao != bo {
		return ao < bo
	}
	if a.HasDate() != b.HasDate() {
		return a.HasDate()
	}
	if a.HasDate() && !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.Slug < b.Slug
}

func declaredOrder(p content.Post) (float64, bool) {
	if p.Series == nil || p.Series.Order == nil {
		return 0, false
	}
	return *p.Series.Order, true
}

// Collect groups posts by series slug and sorts the groups by title. Posts
// outside any series are ignored.
func (r *Resolver) Collect(posts []content.Post) []WithPosts {
	groups := make(map[string][]content.Post)
	var slugs []string
	for _, p := range posts {
		slug := p.SeriesSlug()
		if slug == "" {
			continue
		}
		if _, ok := groups[slug]; !ok {
			slugs = append(slugs, slug)
		}
		groups[slug] = append(groups[slug], p)
	}

	out := make([]WithPosts, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, WithPosts{
			Definition: r.catalog.Meta(slug),
			Posts:      Order(groups[slug]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// Find returns the collected series with the given slug.
func (r *Resolver) Find(posts []content.Post, slug string) (WithPosts, bool) {
	for _, s := range r.Collect(posts) {
		if s.Slug == slug {
			return s, true
		}
	}
	return WithPosts{}, false
}
