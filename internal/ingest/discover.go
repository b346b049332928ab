package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	extMDX = ".mdx"
	extMD  = ".md"
)

// SourceFile is one content document. Rel is slash separated and relative to
// the collection root; it doubles as the post's fileName.
type SourceFile struct {
	Path string
	Rel  string
}

func isContentFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == extMD || ext == extMDX
}

// DiscoverSource walks root recursively in lexical order. A missing root is
// an empty collection.
func DiscoverSource(root string) ([]SourceFile, error) {
	var out []SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isContentFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, SourceFile{Path: path, Rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil && errors.Is(err, fs.ErrNotExist) && len(out) == 0 {
		return nil, nil
	}
	return out, err
}

// FormatSlug strips one recognized content extension from a stored relative
// path.
func FormatSlug(rel string) string {
	rel = strings.ReplaceAll(rel, `\`, "/")
	for _, ext := range []string{extMDX, extMD} {
		if strings.HasSuffix(rel, ext) {
			return strings.TrimSuffix(rel, ext)
		}
	}
	return rel
}
