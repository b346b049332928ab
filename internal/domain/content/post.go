package content

import (
	"strings"
	"time"
)

type Collection string

const (
	CollectionBlog    Collection = "blog"
	CollectionAuthors Collection = "authors"
)

func (c Collection) Valid() bool {
	return c == CollectionBlog || c == CollectionAuthors
}

// SeriesReference places a post inside a named series. Order is nil when the
// front matter did not declare a usable position.
type SeriesReference struct {
	Slug  string   `json:"slug"`
	Order *float64 `json:"order,omitempty"`
}

func (r SeriesReference) HasOrder() bool {
	return r.Order != nil
}

// Post is the normalized metadata of one blog document. Values are never
// mutated after the loader returns them.
type Post struct {
	Title    string
	Date     time.Time
	Tags     []string
	Summary  string
	Authors  []string
	Draft    bool
	Cover    string
	Slug     string
	FileName string
	Series   *SeriesReference
}

func (p Post) HasDate() bool {
	return !p.Date.IsZero()
}

// ISODate renders Date the way browsers print Date.toISOString, or "" when
// the post is undated.
func (p Post) ISODate() string {
	return ISOTime(p.Date)
}

func (p Post) SeriesSlug() string {
	if p.Series == nil {
		return ""
	}
	return p.Series.Slug
}

func (p Post) InSeries(slug string) bool {
	return p.Series != nil && p.Series.Slug == slug
}

const isoLayout = "2006-01-02T15:04:05.000Z"

func ISOTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

// TagKey is the URL segment used for tag listings.
func TagKey(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.Join(strings.Fields(tag), "-")
}

type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

type ReadingTime struct {
	Text    string  `json:"text" yaml:"text"`
	Minutes float64 `json:"minutes" yaml:"minutes"`
	Time    float64 `json:"time" yaml:"time"`
	Words   int     `json:"words" yaml:"words"`
}

// RoundedMinutes is what pages display: never below one minute.
func (r ReadingTime) RoundedMinutes() int {
	m := int(r.Minutes + 0.5)
	if m < 1 {
		return 1
	}
	return m
}

// FrontMatter is the metadata returned with a single compiled document.
type FrontMatter struct {
	Post
	Lastmod      time.Time
	ReadingTime  ReadingTime
	Bibliography string
}

type Document struct {
	HTML        []byte
	TOC         []Heading
	FrontMatter FrontMatter
}

type Author struct {
	Slug       string
	FileName   string
	Name       string
	Avatar     string
	Occupation string
	Company    string
	Email      string
	Twitter    string
	Linkedin   string
	Github     string
	Layout     string
}

type AuthorDocument struct {
	HTML   []byte
	TOC    []Heading
	Author Author
}
