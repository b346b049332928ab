package index

import "folio/internal/domain/content"

var (
	bFingerprint = []byte("fingerprint") // collection -> Fingerprint json
	bWarnings    = []byte("warnings")    // collection -> []Warning json
)

// Per collection buckets.
func bPosts(kind content.Collection) []byte  { return []byte("posts:" + string(kind)) }  // seq -> post json
func bSlugs(kind content.Collection) []byte  { return []byte("slugs:" + string(kind)) }  // slug -> seq
func bSeries(kind content.Collection) []byte { return []byte("series:" + string(kind)) } // series slug -> sub-bucket(seq -> slug)
