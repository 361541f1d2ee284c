// Package hash computes 64-bit label identities for the hashed lookup fast
// path.
package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/larr/label"
)

// LabelID computes the xxHash64 of a label's canonical binary form, so the
// same label always hashes identically regardless of which process or axis
// produced it.
func LabelID(l label.Label) uint64 {
	var buf [48]byte

	return xxhash.Sum64(l.AppendBinary(buf[:0]))
}
