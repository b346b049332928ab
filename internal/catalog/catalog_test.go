package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestMetaFallbackForUnknownSlug(t *testing.T) {
	got := Default().Meta("my-new-series")
	if got.Slug != "my-new-series" || got.Title != "My New Series" {
		t.Fatalf("Meta = %+v", got)
	}
	if got.Summary != "" || got.Description != "" || got.CTA != nil {
		t.Fatalf("fallback carries optional fields: %+v", got)
	}
}

func TestMetaReturnsRegisteredDefinition(t *testing.T) {
	got := Default().Meta("empathetic-remote-management")
	if got.Title != "Empathetic Remote Management" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Summary == "" || got.Description == "" {
		t.Fatalf("registered definition lost its copy: %+v", got)
	}
	if got.CTA.Usable() {
		t.Fatal("empty CTA reported usable")
	}
}

func TestMetaDoesNotLeakMutations(t *testing.T) {
	c := New(Definition{Slug: "s", Title: "S", CTA: &CTA{Label: "Go", Href: "/go"}})
	d := c.Meta("s")
	d.CTA.Href = "/changed"
	d.Title = "changed"
	if again := c.Meta("s"); again.Title != "S" || again.CTA.Href != "/go" {
		t.Fatalf("catalog mutated through returned value: %+v", again)
	}
}

func TestListKeepsDeclarationOrder(t *testing.T) {
	c := New(
		Definition{Slug: "zeta", Title: "Zeta"},
		Definition{Slug: "alpha"},
		Definition{Slug: "zeta", Title: "Duplicate"},
		Definition{Slug: "  "},
	)
	got := c.List()
	if len(got) != 2 {
		t.Fatalf("List len = %d, want 2", len(got))
	}
	if got[0].Slug != "zeta" || got[0].Title != "Zeta" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Slug != "alpha" || got[1].Title != "Alpha" {
		t.Errorf("second = %+v", got[1])
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"go":            "Go",
		"my-new-series": "My New Series",
		"2024-recap":    "2024 Recap",
		"already-Upper": "Already Upper",
		"a--b":          "A  B",
		"2nd-part":      "2nd Part",
		"10x-engineer":  "10x Engineer",
		"my series-x":   "My series X",
		"":              "",
	}
	for in, want := range tests {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHumanizeCapitalizesEverySegment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		segs := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9]{0,8}`), 1, 5).Draw(t, "segments")
		got := strings.Split(Humanize(strings.Join(segs, "-")), " ")
		if len(got) != len(segs) {
			t.Fatalf("segments = %v, humanized = %v", segs, got)
		}
		for i, s := range segs {
			want := strings.ToUpper(s[:1]) + s[1:]
			if got[i] != want {
				t.Fatalf("segment %d = %q, want %q", i, got[i], want)
			}
		}
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.yaml")
	data := `
series:
  - slug: platform-notes
    title: Platform Notes
    cta:
      label: Subscribe
      href: /newsletter
  - slug: untitled-thing
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}
	d, ok := c.Lookup("platform-notes")
	if !ok || !d.CTA.Usable() {
		t.Fatalf("platform-notes = %+v, %v", d, ok)
	}
	if d, _ := c.Lookup("untitled-thing"); d.Title != "Untitled Thing" {
		t.Errorf("untitled title = %q", d.Title)
	}
}

func TestLoadEmptyPathUsesBuiltin(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Lookup("empathetic-remote-management"); !ok {
		t.Fatal("built-in series missing")
	}
}
