package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"folio/internal/domain/content"
	"folio/internal/domain/site"
	"github.com/dustin/go-humanize"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

//go:embed theme
var embedded embed.FS

// requiredTemplates must all be present in a theme's templates directory.
var requiredTemplates = []string{
	"home.tmpl",
	"post.tmpl",
	"series-index.tmpl",
	"series.tmpl",
	"list.tmpl",
	"about.tmpl",
	"404.tmpl",
}

// LoadTheme opens themeDir/name when it exists on disk and falls back to the
// built-in theme otherwise. The returned FS holds templates/ and static/.
func LoadTheme(themeDir, name string) (fs.FS, error) {
	dir := filepath.Join(themeDir, name)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir), nil
	}
	return fs.Sub(embedded, "theme/default")
}

type TemplateRenderer struct {
	tpl *template.Template
}

func NewTemplateRenderer(theme fs.FS) (*TemplateRenderer, error) {
	if err := CheckThemeTemplates(theme); err != nil {
		return nil, err
	}
	tpl, err := template.New("").Funcs(templateFuncs()).ParseFS(theme, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(t interface{}, layout string) string {
			switch v := t.(type) {
			case nil:
				return ""
			case string:
				return v
			case time.Time:
				if v.IsZero() {
					return ""
				}
				return v.Format(layout)
			case interface{ Format(string) string }:
				return v.Format(layout)
			default:
				return ""
			}
		},
		"isoDate": content.ISOTime,
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"nowYear": func() int {
			return time.Now().Year()
		},
		"postURL":   site.PostURL,
		"seriesURL": site.SeriesURL,
		"tagURL": func(tag string) string {
			return site.TagURL(content.TagKey(tag))
		},
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
}

func (r *TemplateRenderer) RenderHome(ctx context.Context, page HomePage) ([]byte, error) {
	return r.exec("home.tmpl", page)
}

func (r *TemplateRenderer) RenderPost(ctx context.Context, page PostPage) ([]byte, error) {
	return r.exec("post.tmpl", page)
}

func (r *TemplateRenderer) RenderSeriesIndex(ctx context.Context, page SeriesIndexPage) ([]byte, error) {
	return r.exec("series-index.tmpl", page)
}

func (r *TemplateRenderer) RenderSeries(ctx context.Context, page SeriesPage) ([]byte, error) {
	return r.exec("series.tmpl", page)
}

func (r *TemplateRenderer) RenderList(ctx context.Context, page ListPage) ([]byte, error) {
	return r.exec("list.tmpl", page)
}

func (r *TemplateRenderer) RenderAbout(ctx context.Context, page AboutPage) ([]byte, error) {
	return r.exec("about.tmpl", page)
}

func (r *TemplateRenderer) RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error) {
	return r.exec("404.tmpl", page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func CheckThemeTemplates(theme fs.FS) error {
	for _, name := range requiredTemplates {
		if _, err := fs.Stat(theme, "templates/"+name); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
