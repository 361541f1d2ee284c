package compress

// ZstdCompressor compresses snapshot payloads with Zstandard. It favors
// compression ratio over speed, making it the right choice for archival
// snapshots and bandwidth-limited transfers.
//
// Two implementations are selected at build time: a cgo build uses
// valyala/gozstd for throughput, a pure-Go build uses klauspost/compress.
// Both produce standard zstd frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
