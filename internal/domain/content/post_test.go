package content

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPostJSONNullsAbsentFields(t *testing.T) {
	data, err := json.Marshal(Post{Title: "Hello", Slug: "hello", FileName: "hello.md"})
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"date":null`, `"summary":null`, `"cover":null`, `"series":null`, `"draft":false`} {
		if !strings.Contains(got, want) {
			t.Errorf("%s lacks %s", got, want)
		}
	}
}

func TestPostJSONKeepsSeriesAndDate(t *testing.T) {
	order := 2.5
	in := Post{
		Title:  "Part",
		Date:   time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
		Slug:   "part",
		Series: &SeriesReference{Slug: "remote", Order: &order},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"date":"2024-03-04T05:06:07.000Z"`) {
		t.Errorf("date not ISO formatted: %s", data)
	}
	var out Post
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Date.Equal(in.Date) || out.Series == nil || *out.Series.Order != 2.5 || out.Series.Slug != "remote" {
		t.Errorf("decoded %+v", out)
	}

	data, err = json.Marshal(Post{Slug: "x", Series: &SeriesReference{Slug: "remote"}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"order"`) {
		t.Errorf("absent order encoded: %s", data)
	}
}

func TestTagKey(t *testing.T) {
	cases := map[string]string{
		"Go":               "go",
		" Remote  Work ":   "remote-work",
		"already-hyphened": "already-hyphened",
		"":                 "",
	}
	for in, want := range cases {
		if got := TagKey(in); got != want {
			t.Errorf("TagKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoundedMinutes(t *testing.T) {
	cases := []struct {
		minutes float64
		want    int
	}{
		{0, 1},
		{0.2, 1},
		{1.49, 1},
		{1.5, 2},
		{7.2, 7},
	}
	for _, c := range cases {
		if got := (ReadingTime{Minutes: c.minutes}).RoundedMinutes(); got != c.want {
			t.Errorf("RoundedMinutes(%v) = %d, want %d", c.minutes, got, c.want)
		}
	}
}
