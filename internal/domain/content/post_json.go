package content

import (
	"encoding/json"
	"time"
)

// postJSON is the wire shape of a Post: every optional field is present and
// null when absent.
type postJSON struct {
	Title    *string          `json:"title"`
	Date     *string          `json:"date"`
	Tags     []string         `json:"tags"`
	Summary  *string          `json:"summary"`
	Authors  []string         `json:"authors"`
	Draft    bool             `json:"draft"` // listings never hold drafts, so absent and false are one case
	Cover    *string          `json:"cover"`
	Slug     string           `json:"slug"`
	FileName string           `json:"fileName"`
	Series   *SeriesReference `json:"series"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (p Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(postJSON{
		Title:    nullable(p.Title),
		Date:     nullable(p.ISODate()),
		Tags:     p.Tags,
		Summary:  nullable(p.Summary),
		Authors:  p.Authors,
		Draft:    p.Draft,
		Cover:    nullable(p.Cover),
		Slug:     p.Slug,
		FileName: p.FileName,
		Series:   p.Series,
	})
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var w postJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var date time.Time
	if w.Date != nil {
		t, err := time.Parse(isoLayout, *w.Date)
		if err != nil {
			return err
		}
		date = t
	}
	*p = Post{
		Title:    deref(w.Title),
		Date:     date,
		Tags:     w.Tags,
		Summary:  deref(w.Summary),
		Authors:  w.Authors,
		Draft:    w.Draft,
		Cover:    deref(w.Cover),
		Slug:     w.Slug,
		FileName: w.FileName,
		Series:   w.Series,
	}
	return nil
}
