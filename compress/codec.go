// Package compress provides the compression codecs used by larr snapshot
// payloads.
//
// Snapshot label and data payloads are typically a few KiB to a few MiB of
// fixed-width numeric words or length-prefixed strings, which compress
// well under all three supported algorithms. Zstd favors ratio, S2 and LZ4
// favor speed; None stores payloads verbatim.
package compress

import (
	"fmt"

	"github.com/arloliu/larr/format"
)

// Compressor compresses a complete snapshot payload.
//
// Memory contract: the returned slice is newly allocated and owned by the
// caller; the input slice is never modified; internal buffers may be
// pooled and reused.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor for the same algorithm. It validates
// the input format and returns an error on corrupted or incompatible data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All implementations in this package are
// stateless values safe for concurrent use; pooled scratch state lives in
// package-level sync.Pools.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates the Codec for the given compression type. The target
// string names the payload being coded and only appears in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression type: %d", target, compressionType)
	}
}
