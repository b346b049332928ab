package series

import (
	"strconv"

	"folio/internal/catalog"
	"folio/internal/domain/content"
)

// Context locates one post inside its series. CurrentIndex is -1 when the
// post is not part of the resolved sequence.
type Context struct {
	Meta         catalog.Definition
	Posts        []content.Post
	CurrentIndex int
}

// Context returns nil when no post belongs to seriesSlug.
func (r *Resolver) Context(all []content.Post, seriesSlug, currentSlug string) *Context {
	var matching []content.Post
	for _, p := range all {
		if p.InSeries(seriesSlug) {
			matching = append(matching, p)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	ordered := Order(matching)
	idx := -1
	for i, p := range ordered {
		if p.Slug == currentSlug {
			idx = i
			break
		}
	}
	return &Context{
		Meta:         r.catalog.Meta(seriesSlug),
		Posts:        ordered,
		CurrentIndex: idx,
	}
}

func (c *Context) Found() bool {
	return c != nil && c.CurrentIndex >= 0 && c.CurrentIndex < len(c.Posts)
}

func (c *Context) Current() (content.Post, bool) {
	if !c.Found() {
		return content.Post{}, false
	}
	return c.Posts[c.CurrentIndex], true
}

func (c *Context) Prev() (content.Post, bool) {
	if !c.Found() || c.CurrentIndex == 0 {
		return content.Post{}, false
	}
	return c.Posts[c.CurrentIndex-1], true
}

func (c *Context) Next() (content.Post, bool) {
	if !c.Found() || c.CurrentIndex == len(c.Posts)-1 {
		return content.Post{}, false
	}
	return c.Posts[c.CurrentIndex+1], true
}

// Position is the 1-based place of the current post, as in "part 2 of 5".
func (c *Context) Position() int {
	if !c.Found() {
		return 0
	}
	return c.CurrentIndex + 1
}

func (c *Context) Total() int {
	if c == nil {
		return 0
	}
	return len(c.Posts)
}

// PartNumber labels the post at index i of an ordered series: its declared
// order when present, else i+1.
func PartNumber(p content.Post, i int) float64 {
	if o, ok := declaredOrder(p); ok {
		return o
	}
	return float64(i + 1)
}

func PartLabel(p content.Post, i int) string {
	return strconv.FormatFloat(PartNumber(p, i), 'f', -1, 64)
}
