package build

import (
	"encoding/hex"
	"hash"

	"github.com/zeebo/blake3"
)

// Fingerprint identifies one exact state of a content collection. Any added,
// removed, renamed or edited document changes ContentHash.
type Fingerprint struct {
	Collection  string
	ContentHash string
	Documents   int
}

type FingerprintBuilder struct {
	collection string
	h          hash.Hash
	n          int
}

func NewFingerprint(collection string) *FingerprintBuilder {
	b := &FingerprintBuilder{collection: collection, h: blake3.New()}
	b.h.Write([]byte(collection))
	b.h.Write([]byte{0})
	return b
}

// Add must be called in a stable document order.
func (b *FingerprintBuilder) Add(relPath string, data []byte) {
	b.h.Write([]byte(relPath))
	b.h.Write([]byte{0})
	sum := blake3.Sum256(data)
	b.h.Write(sum[:])
	b.n++
}

func (b *FingerprintBuilder) Sum() Fingerprint {
	return Fingerprint{
		Collection:  b.collection,
		ContentHash: hex.EncodeToString(b.h.Sum(nil)),
		Documents:   b.n,
	}
}

func (f Fingerprint) Equal(o Fingerprint) bool {
	return f.Collection == o.Collection && f.ContentHash == o.ContentHash && f.Documents == o.Documents
}

// Warning is a non-fatal problem found while reading content.
type Warning struct {
	Path string `json:"path"`
	Msg  string `json:"msg"`
}
