package index

import (
	"encoding/json"
	"errors"

	bolt "go.etcd.io/bbolt"

	"folio/internal/domain/build"
	"folio/internal/domain/content"
)

// Entry is everything cached for one collection.
type Entry struct {
	Fingerprint build.Fingerprint
	Posts       []content.Post
	Warnings    []build.Warning
}

// Rebuild replaces the cached state of the entry's collection in a single
// transaction.
func (s *Store) Rebuild(kind content.Collection, e Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bPosts(kind), bSlugs(kind), bSeries(kind)} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
		}
		postsB, err := tx.CreateBucket(bPosts(kind))
		if err != nil {
			return err
		}
		slugsB, err := tx.CreateBucket(bSlugs(kind))
		if err != nil {
			return err
		}
		seriesB, err := tx.CreateBucket(bSeries(kind))
		if err != nil {
			return err
		}

		for i, p := range e.Posts {
			key := seqKey(i)
			pb, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := postsB.Put(key, pb); err != nil {
				return err
			}
			if err := slugsB.Put([]byte(p.Slug), key); err != nil {
				return err
			}
			if ss := p.SeriesSlug(); ss != "" {
				sb, err := seriesB.CreateBucketIfNotExists([]byte(ss))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte(p.Slug)); err != nil {
					return err
				}
			}
		}

		if err := putJSON(tx, bWarnings, kind, e.Warnings); err != nil {
			return err
		}
		// Written last: a fingerprint is only visible next to complete data.
		return putJSON(tx, bFingerprint, kind, e.Fingerprint)
	})
}

func putJSON(tx *bolt.Tx, bucket []byte, kind content.Collection, v any) error {
	b, err := tx.CreateBucketIfNotExists(bucket)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(kind), data)
}
