package ingest

import (
	"fmt"
	"math"
	"unicode"

	"gopkg.in/yaml.v3"

	"folio/internal/domain/content"
)

const wordsPerMinute = 200

// ReadingTime estimates how long body takes to read. Han, kana and hangul
// characters count as one word each.
func ReadingTime(body []byte) content.ReadingTime {
	words := countWords(string(body))
	minutes := float64(words) / wordsPerMinute
	shown := math.Ceil(math.Round(minutes*100) / 100)
	return content.ReadingTime{
		Text:    fmt.Sprintf("%d min read", int(shown)),
		Minutes: minutes,
		Time:    minutes * 60 * 1000,
		Words:   words,
	}
}

func countWords(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		switch {
		case isCJK(r):
			n++
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'' || r == '’':
			if !inWord {
				n++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return n
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// readingTimeFrom prefers an estimate already present in the metadata.
func readingTimeFrom(fields Fields, body []byte) content.ReadingTime {
	if m, ok := asMap(fields["readingTime"]); ok {
		data, err := yaml.Marshal(m)
		if err == nil {
			var rt content.ReadingTime
			if yaml.Unmarshal(data, &rt) == nil {
				return rt
			}
		}
	}
	return ReadingTime(body)
}
