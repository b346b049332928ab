package index

import "folio/internal/domain/content"

// SeriesSummary is a cheap per-series overview read straight from the index.
type SeriesSummary struct {
	Slug  string
	Count int
}

func (s *Store) SeriesSummaries(kind content.Collection) ([]SeriesSummary, error) {
	names, err := s.SeriesSlugs(kind)
	if err != nil {
		return nil, err
	}
	out := make([]SeriesSummary, 0, len(names))
	for _, name := range names {
		members, err := s.SeriesMembers(kind, name)
		if err != nil {
			return nil, err
		}
		out = append(out, SeriesSummary{Slug: name, Count: len(members)})
	}
	return out, nil
}
