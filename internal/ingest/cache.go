package ingest

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/domain/content"
	"folio/internal/index"
)

// CachedLoader serves LoadAll from the index while the collection's
// fingerprint is unchanged. Documents are still read on every call; only
// parsing is skipped.
type CachedLoader struct {
	*Loader
	store *index.Store
}

func NewCachedLoader(l *Loader, st *index.Store) *CachedLoader {
	return &CachedLoader{Loader: l, store: st}
}

func (c *CachedLoader) LoadAll(ctx context.Context, kind content.Collection) ([]content.Post, []Warning, error) {
	snap, err := c.read(ctx, kind)
	if err != nil {
		return nil, nil, err
	}

	cached, err := c.store.Load(kind)
	switch {
	case err == nil && cached.Fingerprint.Equal(snap.fingerprint):
		c.log.Debug("index hit", "collection", kind, "posts", len(cached.Posts))
		return cached.Posts, cached.Warnings, nil
	case err != nil && !errors.Is(err, index.ErrNotFound):
		c.log.Warn("index unreadable, reparsing", "collection", kind, "error", err)
	}

	posts, warns := c.parseAll(snap.docs)
	err = c.store.Rebuild(kind, index.Entry{
		Fingerprint: snap.fingerprint,
		Posts:       posts,
		Warnings:    warns,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("update index: %w", err)
	}
	c.log.Debug("index rebuilt", "collection", kind, "posts", len(posts))
	return posts, warns, nil
}
