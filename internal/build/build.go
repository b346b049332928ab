package build

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"folio/internal/app"
	"folio/internal/domain/config"
	domainbuild "folio/internal/domain/build"
)

type Builder struct {
	Cfg  config.Config
	Site *app.Site
	// Theme supplies static/ assets copied next to the pages.
	Theme  fs.FS
	Logger *slog.Logger
}

type Result struct {
	Posts    int
	Series   int
	Tags     int
	Pages    int
	Warnings []domainbuild.Warning
}

func (b *Builder) log() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	snap, err := b.Site.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	for _, w := range snap.Warnings {
		b.log().Warn("content warning", "path", w.Path, "msg", w.Msg)
	}

	outDir := b.Cfg.Build.PublicDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir public: %w", err)
	}

	pages := 0
	for _, r := range snap.Routes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := b.Site.Render(ctx, snap, r)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", r, err)
		}
		if err := writeFile(outDir, r.OutPath, data); err != nil {
			return nil, fmt.Errorf("write %s: %w", r.OutPath, err)
		}
		b.log().Debug("page written", "kind", r.Kind, "out", r.OutPath)
		pages++
	}

	if err := b.copyStaticAssets(outDir); err != nil {
		return nil, fmt.Errorf("copy static assets: %w", err)
	}

	return &Result{
		Posts:    len(snap.Posts),
		Series:   len(snap.Series),
		Tags:     len(snap.Tags),
		Pages:    pages,
		Warnings: snap.Warnings,
	}, nil
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

// copyStaticAssets mirrors the theme's static/ tree under outDir/static.
func (b *Builder) copyStaticAssets(outDir string) error {
	if b.Theme == nil {
		return nil
	}
	info, err := fs.Stat(b.Theme, "static")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return fs.WalkDir(b.Theme, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		in, err := fs.ReadFile(b.Theme, p)
		if err != nil {
			return err
		}
		return writeFile(outDir, path.Clean(p), in)
	})
}
