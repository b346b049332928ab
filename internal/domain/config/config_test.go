package config

import (
	"errors"
	domainerr "folio/internal/domain/errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
site:
  title: Field Notes
  site_url: https://notes.example.com
  repo_url: https://github.com/example/notes
build:
  content_dir: content
  include_draft: true
serve:
  debounce: 1s
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Site.Title != "Field Notes" {
		t.Errorf("title = %q", cfg.Site.Title)
	}
	if cfg.Build.ContentDir != "content" || !cfg.Build.IncludeDraft {
		t.Errorf("build = %+v", cfg.Build)
	}
	if cfg.Build.PublicDir != "public" {
		t.Errorf("public_dir default lost: %q", cfg.Build.PublicDir)
	}
	if cfg.Serve.Debounce != time.Second {
		t.Errorf("debounce = %v", cfg.Serve.Debounce)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("addr default lost: %q", cfg.Serve.Addr)
	}
}

func TestValidateCollectsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Site.Title = " "
	cfg.Site.SiteURL = "ftp://example.com"
	cfg.Build.Workers = -1

	err := cfg.Validate()
	if !errors.Is(err, domainerr.ErrInvalid) {
		t.Fatalf("Validate() = %v, want ErrInvalid", err)
	}
	var ve domainerr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate() error type = %T", err)
	}
	if len(ve.Items) != 3 {
		t.Fatalf("items = %d, want 3: %v", len(ve.Items), err)
	}
	if !strings.Contains(err.Error(), "build.workers") {
		t.Errorf("error %q does not mention build.workers", err)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Site.Title != Default().Site.Title {
		t.Errorf("title = %q", cfg.Site.Title)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte("site: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed yaml")
	}
}
