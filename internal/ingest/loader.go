package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"folio/internal/domain/build"
	"folio/internal/domain/content"
	domainerr "folio/internal/domain/errors"
	"folio/internal/render"
)

// ErrNotFound is reported by LoadDocument and LoadAuthor for unknown slugs.
var ErrNotFound = domainerr.ErrNotFound

type Warning = build.Warning

// Compiler turns a document body into HTML plus its table of contents.
type Compiler interface {
	Compile(ctx context.Context, src []byte, opt render.CompileOptions) (render.Compiled, error)
}

type Options struct {
	// Root holds one directory per collection, e.g. Root/blog.
	Root     string
	Compiler Compiler
	Workers  int
	Logger   *slog.Logger
}

// Loader reads content collections from disk. It keeps no state between
// calls, so every call observes the current files.
type Loader struct {
	root     string
	compiler Compiler
	workers  int
	log      *slog.Logger
}

func NewLoader(opt Options) *Loader {
	l := &Loader{
		root:     opt.Root,
		compiler: opt.Compiler,
		workers:  opt.Workers,
		log:      opt.Logger,
	}
	if l.compiler == nil {
		l.compiler = render.NewMarkdownRenderer()
	}
	if l.workers <= 0 {
		l.workers = runtime.GOMAXPROCS(0)
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	return l
}

func (l *Loader) Root() string {
	return l.root
}

func (l *Loader) dir(kind content.Collection) string {
	return filepath.Join(l.root, string(kind))
}

type sourceDoc struct {
	SourceFile
	Raw []byte
}

type snapshot struct {
	docs        []sourceDoc
	fingerprint build.Fingerprint
}

// read loads every document of a collection concurrently, keeping discovery
// order in the result.
func (l *Loader) read(ctx context.Context, kind content.Collection) (snapshot, error) {
	files, err := DiscoverSource(l.dir(kind))
	if err != nil {
		return snapshot{}, fmt.Errorf("discover %s: %w", kind, err)
	}
	docs := make([]sourceDoc, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, sf := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(sf.Path)
			if err != nil {
				return fmt.Errorf("read %s: %w", sf.Rel, err)
			}
			docs[i] = sourceDoc{SourceFile: sf, Raw: raw}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}

	fp := build.NewFingerprint(string(kind))
	for _, d := range docs {
		fp.Add(d.Rel, d.Raw)
	}
	return snapshot{docs: docs, fingerprint: fp.Sum()}, nil
}

// LoadAll returns the published posts of a collection, newest first. Posts
// sharing a date keep discovery order; undated posts come last.
func (l *Loader) LoadAll(ctx context.Context, kind content.Collection) ([]content.Post, []Warning, error) {
	snap, err := l.read(ctx, kind)
	if err != nil {
		return nil, nil, err
	}
	posts, warns := l.parseAll(snap.docs)
	return posts, warns, nil
}

func (l *Loader) parseAll(docs []sourceDoc) ([]content.Post, []Warning) {
	type entry struct {
		post  content.Post
		draft bool
	}
	var (
		warns []Warning
		slugs []string
	)
	winners := make(map[string]entry, len(docs))

	for _, d := range docs {
		fields, _, err := ParseFrontMatter(d.Raw)
		if err != nil {
			warns = append(warns, l.warn(d.Rel, "skipped: "+err.Error()))
			continue
		}
		e := entry{post: postFromFields(fields, d.Rel), draft: fields.True("draft")}
		slug := e.post.Slug
		cur, dup := winners[slug]
		if !dup {
			winners[slug] = e
			slugs = append(slugs, slug)
			continue
		}
		// .mdx wins, matching LoadDocument's lookup order. A draft winner
		// still claims the slug so its .md sibling is not listed.
		if path.Ext(d.Rel) == extMDX && path.Ext(cur.post.FileName) != extMDX {
			warns = append(warns, l.warn(cur.post.FileName, "duplicate slug "+slug+", superseded by "+d.Rel))
			winners[slug] = e
		} else {
			warns = append(warns, l.warn(d.Rel, "duplicate slug "+slug+", skipped"))
		}
	}

	posts := make([]content.Post, 0, len(slugs))
	for _, slug := range slugs {
		e := winners[slug]
		if e.draft {
			l.log.Debug("skipping draft", "path", e.post.FileName)
			continue
		}
		posts = append(posts, e.post)
	}

	SortByDateDesc(posts)
	return posts, warns
}

func (l *Loader) warn(rel, msg string) Warning {
	l.log.Warn(msg, "path", rel)
	return Warning{Path: rel, Msg: msg}
}

// SortByDateDesc orders posts newest first, stable for equal dates.
func SortByDateDesc(posts []content.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Date.After(b.Date)
	})
}

func postFromFields(f Fields, rel string) content.Post {
	p := content.Post{
		Title:    f.String("title"),
		Date:     f.Time("date"),
		Tags:     f.Strings("tags"),
		Summary:  f.String("summary"),
		Authors:  f.Strings("authors"),
		Draft:    f.True("draft"),
		Cover:    f.String("cover"),
		Slug:     FormatSlug(rel),
		FileName: rel,
	}
	if ref, ok := ParseSeriesReference(f["series"]); ok {
		p.Series = &ref
	}
	return p
}

// validSlug rejects slugs that would escape the collection directory.
func validSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, "/") || strings.Contains(slug, `\`) {
		return false
	}
	for _, seg := range strings.Split(slug, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// locate tries the .mdx file first, then .md.
func (l *Loader) locate(kind content.Collection, slug string) (SourceFile, []byte, error) {
	if validSlug(slug) {
		for _, ext := range []string{extMDX, extMD} {
			rel := slug + ext
			p := filepath.Join(l.dir(kind), filepath.FromSlash(rel))
			raw, err := os.ReadFile(p)
			if err == nil {
				return SourceFile{Path: p, Rel: rel}, raw, nil
			}
			if !os.IsNotExist(err) {
				return SourceFile{}, nil, fmt.Errorf("read %s: %w", rel, err)
			}
		}
	}
	return SourceFile{}, nil, &domainerr.NotFoundError{Collection: string(kind), Slug: slug}
}

// LoadDocument compiles one blog document. Drafts are returned as well; only
// listings hide them.
func (l *Loader) LoadDocument(ctx context.Context, kind content.Collection, slug string) (content.Document, error) {
	sf, raw, err := l.locate(kind, slug)
	if err != nil {
		return content.Document{}, err
	}
	fields, body, err := ParseFrontMatter(raw)
	if err != nil {
		return content.Document{}, fmt.Errorf("%s: %w", sf.Rel, err)
	}

	bib := fields.String("bibliography")
	out, err := l.compiler.Compile(ctx, body, render.CompileOptions{
		Bibliography: bib,
		BaseDir:      l.root,
	})
	if err != nil {
		return content.Document{}, fmt.Errorf("compile %s: %w", sf.Rel, err)
	}

	fm := content.FrontMatter{
		Post:         postFromFields(fields, sf.Rel),
		ReadingTime:  readingTimeFrom(fields, body),
		Bibliography: bib,
	}
	fm.Slug = slug
	fm.Lastmod = fields.Time("lastmod")
	if fm.Lastmod.IsZero() {
		fm.Lastmod = fm.Date
	}
	return content.Document{HTML: out.HTML, TOC: out.TOC, FrontMatter: fm}, nil
}

// LoadAuthor compiles one document of the authors collection.
func (l *Loader) LoadAuthor(ctx context.Context, slug string) (content.AuthorDocument, error) {
	sf, raw, err := l.locate(content.CollectionAuthors, slug)
	if err != nil {
		return content.AuthorDocument{}, err
	}
	fields, body, err := ParseFrontMatter(raw)
	if err != nil {
		return content.AuthorDocument{}, fmt.Errorf("%s: %w", sf.Rel, err)
	}
	out, err := l.compiler.Compile(ctx, body, render.CompileOptions{BaseDir: l.root})
	if err != nil {
		return content.AuthorDocument{}, fmt.Errorf("compile %s: %w", sf.Rel, err)
	}
	return content.AuthorDocument{
		HTML: out.HTML,
		TOC:  out.TOC,
		Author: content.Author{
			Slug:       slug,
			FileName:   sf.Rel,
			Name:       fields.String("name"),
			Avatar:     fields.String("avatar"),
			Occupation: fields.String("occupation"),
			Company:    fields.String("company"),
			Email:      fields.String("email"),
			Twitter:    fields.String("twitter"),
			Linkedin:   fields.String("linkedin"),
			Github:     fields.String("github"),
			Layout:     fields.String("layout"),
		},
	}, nil
}
