package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog format:
//
//	series:
//	  - slug: empathetic-remote-management
//	    title: Empathetic Remote Management
//	    summary: ...
//	    cta: { label: Subscribe, href: /newsletter }
type File struct {
	Series []Definition `yaml:"series"`
}

func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode series catalog: %w", err)
	}
	return New(f.Series...), nil
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series catalog: %w", err)
	}
	return Parse(data)
}
