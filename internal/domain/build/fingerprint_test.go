package build

import "testing"

func sum(collection string, docs map[string]string, order []string) Fingerprint {
	b := NewFingerprint(collection)
	for _, rel := range order {
		b.Add(rel, []byte(docs[rel]))
	}
	return b.Sum()
}

func TestFingerprintDetectsChanges(t *testing.T) {
	docs := map[string]string{"a.md": "one", "b.md": "two"}
	order := []string{"a.md", "b.md"}
	base := sum("blog", docs, order)

	if !base.Equal(sum("blog", docs, order)) {
		t.Fatal("same input, different fingerprint")
	}
	if base.Documents != 2 || base.Collection != "blog" {
		t.Errorf("fingerprint = %+v", base)
	}

	edited := map[string]string{"a.md": "one!", "b.md": "two"}
	if base.Equal(sum("blog", edited, order)) {
		t.Error("edit not detected")
	}
	renamed := map[string]string{"c.md": "one", "b.md": "two"}
	if base.Equal(sum("blog", renamed, []string{"c.md", "b.md"})) {
		t.Error("rename not detected")
	}
	if base.Equal(sum("blog", docs, order[:1])) {
		t.Error("removal not detected")
	}
	if base.Equal(sum("authors", docs, order)) {
		t.Error("collection ignored")
	}
}
