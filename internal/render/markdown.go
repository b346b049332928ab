package render

import (
	"bytes"
	"context"
	"folio/internal/domain/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"path/filepath"
	"strings"
)

// CompileOptions carries per-document settings from the front matter.
type CompileOptions struct {
	// Bibliography is forwarded as declared; BaseDir resolves relative paths.
	Bibliography string
	BaseDir      string
}

type Compiled struct {
	HTML         []byte
	TOC          []content.Heading
	Bibliography string
}

type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &MarkdownRenderer{md: md}
}

func (r *MarkdownRenderer) Compile(ctx context.Context, src []byte, opt CompileOptions) (Compiled, error) {
	if err := ctx.Err(); err != nil {
		return Compiled{}, err
	}
	doc := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return Compiled{}, err
	}

	out := Compiled{HTML: buf.Bytes(), TOC: headings(doc, src)}
	if bib := strings.TrimSpace(opt.Bibliography); bib != "" {
		if !filepath.IsAbs(bib) && opt.BaseDir != "" {
			bib = filepath.Join(opt.BaseDir, bib)
		}
		out.Bibliography = bib
	}
	return out, nil
}

func headings(doc ast.Node, src []byte) []content.Heading {
	var heads []content.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var idStr string
		if id, ok := h.AttributeString("id"); ok {
			switch v := id.(type) {
			case string:
				idStr = v
			case []byte:
				idStr = string(v)
			}
		}
		heads = append(heads, content.Heading{
			Level: h.Level,
			ID:    idStr,
			Text:  plainText(h, src),
		})
		return ast.WalkSkipChildren, nil
	})
	return heads
}

// plainText joins the text segments below n, descending into emphasis and
// links.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeSpan:
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if tt, ok := cc.(*ast.Text); ok {
					b.Write(tt.Segment.Value(src))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
