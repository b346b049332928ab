package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"

	"folio/internal/domain/build"
	"folio/internal/domain/content"
)

func (s *Store) Fingerprint(kind content.Collection) (build.Fingerprint, error) {
	var fp build.Fingerprint
	err := s.db.View(func(tx *bolt.Tx) error {
		return getJSON(tx, bFingerprint, kind, &fp)
	})
	return fp, err
}

// Load returns the cached collection, posts in the order they were stored.
func (s *Store) Load(kind content.Collection) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		if err := getJSON(tx, bFingerprint, kind, &e.Fingerprint); err != nil {
			return err
		}
		if err := getJSON(tx, bWarnings, kind, &e.Warnings); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		b := tx.Bucket(bPosts(kind))
		if b == nil {
			return ErrNotFound
		}
		return b.ForEach(func(k, v []byte) error {
			var p content.Post
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			e.Posts = append(e.Posts, p)
			return nil
		})
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Store) Get(kind content.Collection, slug string) (content.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Post{}, ErrNotFound
	}
	var p content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		slugsB, postsB := tx.Bucket(bSlugs(kind)), tx.Bucket(bPosts(kind))
		if slugsB == nil || postsB == nil {
			return ErrNotFound
		}
		key := slugsB.Get([]byte(slug))
		if key == nil {
			return ErrNotFound
		}
		v := postsB.Get(key)
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

// SeriesSlugs lists every series referenced by a cached post, in byte order.
func (s *Store) SeriesSlugs(kind content.Collection) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bSeries(kind))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// SeriesMembers returns the post slugs of one series in load order.
func (s *Store) SeriesMembers(kind content.Collection, series string) ([]string, error) {
	var slugs []string
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bSeries(kind))
		if parent == nil {
			return ErrNotFound
		}
		sb := parent.Bucket([]byte(series))
		if sb == nil {
			return ErrNotFound
		}
		c := sb.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if _, ok := seqFromKey(k); !ok {
				continue
			}
			slugs = append(slugs, string(v))
		}
		return nil
	})
	return slugs, err
}

func getJSON(tx *bolt.Tx, bucket []byte, kind content.Collection, v any) error {
	b := tx.Bucket(bucket)
	if b == nil {
		return ErrNotFound
	}
	data := b.Get([]byte(kind))
	if data == nil {
		return ErrNotFound
	}
	return json.Unmarshal(data, v)
}
