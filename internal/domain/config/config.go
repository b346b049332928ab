package config

import (
	"errors"
	domainerr "folio/internal/domain/errors"
	"gopkg.in/yaml.v3"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
	Serve ServeConfig `yaml:"serve"`
}

type SiteConfig struct {
	Title         string `yaml:"title"`
	Author        string `yaml:"author"`
	Description   string `yaml:"description"`
	SiteURL       string `yaml:"site_url"`
	Language      string `yaml:"language"`
	Theme         string `yaml:"theme"`
	RepoURL       string `yaml:"repo_url"`
	PostsPerPage  int    `yaml:"posts_per_page"`
	DefaultAuthor string `yaml:"default_author"`
}

type BuildConfig struct {
	ContentDir   string    `yaml:"content_dir"`
	PublicDir    string    `yaml:"public_dir"`
	ThemeDir     string    `yaml:"theme_dir"`
	IndexPath    string    `yaml:"index_path"`
	SeriesFile   string    `yaml:"series_file"`
	IncludeDraft bool      `yaml:"include_draft"`
	Workers      int       `yaml:"workers"`
	Now          time.Time `yaml:"-"`
}

type ServeConfig struct {
	Addr     string        `yaml:"addr"`
	Debounce time.Duration `yaml:"debounce"`
	Metrics  bool          `yaml:"metrics"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:         "Folio",
			Language:      "en-US",
			Theme:         "default",
			SiteURL:       "http://localhost:8080",
			PostsPerPage:  10,
			DefaultAuthor: "default",
		},
		Build: BuildConfig{
			ContentDir: "data",
			PublicDir:  "public",
			ThemeDir:   "themes",
			IndexPath:  ".folio/index.db",
			Now:        time.Now(),
		},
		Serve: ServeConfig{
			Addr:     ":8080",
			Debounce: 200 * time.Millisecond,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Add("site.site_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}
	if u := strings.TrimSpace(c.Site.RepoURL); u != "" && !isValidAbsURL(u) {
		ve.Add("site.repo_url", "must be a valid absolute URL")
	}
	if c.Site.PostsPerPage < 0 {
		ve.Add("site.posts_per_page", "must not be negative")
	}
	if strings.TrimSpace(c.Site.Theme) == "" {
		ve.Add("site.theme", "must not be empty")
	}

	if strings.TrimSpace(c.Build.ContentDir) == "" {
		ve.Add("build.content_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Add("build.public_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.ThemeDir) == "" {
		ve.Add("build.theme_dir", "must not be empty")
	}
	if c.Build.Workers < 0 {
		ve.Addf("build.workers", "must not be negative, got %d", c.Build.Workers)
	}

	if strings.TrimSpace(c.Serve.Addr) == "" {
		ve.Add("serve.addr", "must not be empty")
	}
	if c.Serve.Debounce < 0 {
		ve.Add("serve.debounce", "must not be negative")
	}

	return ve.Err()
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Parse decodes data over Default: keys present in the file win, the rest
// keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}
