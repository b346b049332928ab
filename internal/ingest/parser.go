package ingest

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"folio/internal/domain/content"
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Fields is the loosely typed metadata block of a document. Accessors never
// fail: a value of the wrong shape reads as absent.
type Fields map[string]any

// ParseFrontMatter splits raw into its metadata and body. A document without
// a metadata block has empty Fields and the whole input as body.
func ParseFrontMatter(raw []byte) (Fields, []byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	fields := Fields{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fields, yamlFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("parse front matter: %w", err)
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, body, nil
}

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String accepts any scalar.
func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	case time.Time:
		return content.ISOTime(v)
	}
	return ""
}

// Strings accepts a list of scalars or a single string; nil means absent.
func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case nil:
				continue
			case string:
				out = append(out, s)
			case bool, int, int64, uint64, float64:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	}
	return nil
}

// True reports whether key holds the boolean true. Strings such as "true"
// do not count.
func (f Fields) True(key string) bool {
	b, ok := f[key].(bool)
	return ok && b
}

func (f Fields) Time(key string) time.Time {
	return ParseTime(f[key])
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
}

// ParseTime accepts decoded YAML timestamps and the common date string
// layouts. Times without a zone are taken as UTC and every result is
// truncated to the millisecond, the precision the index cache stores.
// Anything else is the zero time.
func ParseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Truncate(time.Millisecond)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return parsed.UTC().Truncate(time.Millisecond)
			}
		}
	}
	return time.Time{}
}

// ParseSeriesReference validates a series value. It succeeds only for a
// mapping with a non-empty string slug; a present order is kept when it
// converts to a finite number and silently dropped otherwise.
func ParseSeriesReference(v any) (content.SeriesReference, bool) {
	m, ok := asMap(v)
	if !ok {
		return content.SeriesReference{}, false
	}
	slug, ok := m["slug"].(string)
	if !ok {
		return content.SeriesReference{}, false
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.SeriesReference{}, false
	}
	ref := content.SeriesReference{Slug: slug}
	if raw, present := m["order"]; present {
		if n, ok := toNumber(raw); ok {
			ref.Order = &n
		}
	}
	return ref, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Fields:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	}
	return nil, false
}

func toNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint64:
		n = float64(x)
	case float64:
		n = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
