package main

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"folio/internal/app"
	"folio/internal/catalog"
	"folio/internal/domain/config"
	"folio/internal/index"
	"folio/internal/ingest"
	"folio/internal/render"
	"folio/internal/series"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path == "" {
			c.config = config.Default()
			return
		}
		c.config, c.configErr = config.LoadOrDefault(path)
		if c.configErr != nil {
			c.configErr = fmt.Errorf("load config %s: %w", path, c.configErr)
		}
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.verbose != nil && *c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// workspace is everything a command needs to load and render content.
type workspace struct {
	cfg      config.Config
	log      *slog.Logger
	store    *index.Store
	loader   *ingest.CachedLoader
	resolver *series.Resolver
	theme    fs.FS
}

func (w *workspace) Close() error {
	return w.store.Close()
}

func (c *commandContext) openWorkspace(cfg config.Config, logOut io.Writer) (*workspace, error) {
	log := c.logger(logOut)

	cat, err := catalog.Load(cfg.Build.SeriesFile)
	if err != nil {
		return nil, err
	}
	theme, err := render.LoadTheme(cfg.Build.ThemeDir, cfg.Site.Theme)
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", cfg.Site.Theme, err)
	}
	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return nil, err
	}

	loader := ingest.NewLoader(ingest.Options{
		Root:    filepath.Clean(cfg.Build.ContentDir),
		Workers: cfg.Build.Workers,
		Logger:  log,
	})
	return &workspace{
		cfg:      cfg,
		log:      log,
		store:    st,
		loader:   ingest.NewCachedLoader(loader, st),
		resolver: series.NewResolver(cat),
		theme:    theme,
	}, nil
}

func (w *workspace) site() (*app.Site, error) {
	tpl, err := render.NewTemplateRenderer(w.theme)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return app.NewSite(app.SiteOptions{
		Config:   w.cfg,
		Source:   w.loader,
		Resolver: w.resolver,
		Renderer: tpl,
		Logger:   w.log,
	}), nil
}
