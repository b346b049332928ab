// Package catalog holds the registered series definitions.
//
// A Catalog is built once at start-up and never mutated. Lookups of unknown
// slugs never fail: Meta synthesizes a definition from the slug so that a
// post referencing a series nobody registered still renders.
package catalog

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type CTA struct {
	Label string `yaml:"label" json:"label,omitempty"`
	Href  string `yaml:"href" json:"href,omitempty"`
}

// Usable reports whether a call-to-action link can be rendered.
func (c *CTA) Usable() bool {
	return c != nil && c.Label != "" && c.Href != ""
}

type Definition struct {
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Summary     string `yaml:"summary" json:"summary,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	CTA         *CTA   `yaml:"cta" json:"cta,omitempty"`
}

type Catalog struct {
	defs  map[string]Definition
	order []string
}

// New keeps the first definition of a duplicated slug. Definitions with an
// empty slug are ignored and a missing title is humanized from the slug.
func New(defs ...Definition) *Catalog {
	c := &Catalog{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		d.Slug = strings.TrimSpace(d.Slug)
		if d.Slug == "" {
			continue
		}
		if _, ok := c.defs[d.Slug]; ok {
			continue
		}
		if strings.TrimSpace(d.Title) == "" {
			d.Title = Humanize(d.Slug)
		}
		if d.CTA != nil {
			cta := *d.CTA
			d.CTA = &cta
		}
		c.defs[d.Slug] = d
		c.order = append(c.order, d.Slug)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) Lookup(slug string) (Definition, bool) {
	d, ok := c.defs[slug]
	if !ok {
		return Definition{}, false
	}
	return d.clone(), true
}

// Meta returns the registered definition or a fallback titled after slug.
func (c *Catalog) Meta(slug string) Definition {
	if d, ok := c.Lookup(slug); ok {
		return d
	}
	return Fallback(slug)
}

// List returns one definition per registered slug in declaration order.
func (c *Catalog) List() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.Meta(slug))
	}
	return out
}

func (d Definition) clone() Definition {
	if d.CTA != nil {
		cta := *d.CTA
		d.CTA = &cta
	}
	return d
}

func Fallback(slug string) Definition {
	return Definition{Slug: slug, Title: Humanize(slug)}
}

// Humanize turns "my-new-series" into "My New Series". Only the first letter
// of every hyphen separated segment changes case.
func Humanize(slug string) string {
	upper := cases.Upper(language.Und)
	segments := strings.Split(slug, "-")
	for i, s := range segments {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError {
			continue
		}
		segments[i] = upper.String(string(r)) + s[size:]
	}
	return strings.Join(segments, " ")
}
