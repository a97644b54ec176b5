// Package compress provides compression and decompression codecs for packed buffers.
//
// This package offers multiple compression algorithms with different speed/ratio
// tradeoffs. Compression is applied at the whole-buffer level, after a value tree
// has already been packed into its binary wire form, providing an additional layer
// of space savings beyond the wire format's own size-class selection.
//
// # Overview
//
// A packed buffer is already compact (fixed-family prefixes, typed-array payloads
// with no per-element overhead), but still benefits from general-purpose
// compression when it contains repeated structure (maps with common keys, runs of
// similar strings, sparse numeric data). The compress package implements this
// second stage, supporting multiple algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp Compression** (wire.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	compressed, _ := codec.Compress(data)  // Returns data unchanged
//	original, _ := codec.Decompress(compressed)  // Returns data unchanged
//
// Use when:
//   - The packed buffer is small enough that framing overhead isn't worth it
//   - CPU is more critical than transport or storage size
//   - The buffer is already incompressible (embedded binary blobs, random bytes)
//
// **Zstandard (Zstd)** (wire.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)  // Best compression ratio
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Excellent, best ratio of the supported algorithms
//   - Speed: Moderate (compression: ~400 MB/s, decompression: ~1000 MB/s)
//   - Memory: ~2-4 MB for compression, ~1-2 MB for decompression
//
// Best for archival, cold storage, or network transmission where bandwidth
// matters more than CPU time.
//
// **S2 (Snappy Alternative)** (wire.CompressionS2)
//
//	codec := compress.NewS2Compressor()
//	compressed, _ := codec.Compress(data)  // Fast with good compression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Good, moderate ratio
//   - Speed: Fast (compression: ~1000 MB/s, decompression: ~2000 MB/s)
//   - Memory: ~256KB for compression, ~64KB for decompression
//
// Best for request/response paths where latency matters as much as size.
//
// **LZ4** (wire.CompressionLZ4)
//
//	codec := compress.NewLZ4Compressor()
//	compressed, _ := codec.Compress(data)  // Very fast decompression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Moderate ratio
//   - Speed: Very fast decompression (~3000 MB/s), moderate compression (~800 MB/s)
//   - Memory: ~64KB for compression, ~16KB for decompression
//
// Best for workloads that decompress far more often than they compress.
//
// # Algorithm Selection Guide
//
// | Scenario                | Recommended | Reason                         |
// |--------------------------|-------------|---------------------------------|
// | Storage-constrained      | Zstd        | Best compression ratio          |
// | Latency-sensitive RPC    | S2          | Balanced speed and compression  |
// | Decompress-heavy reads   | LZ4         | Fastest decompression           |
// | CPU-constrained          | None        | No compression overhead         |
// | Archival / cold storage  | Zstd        | Maximize space savings          |
// | Network transmission     | Zstd or S2  | Reduce bytes on the wire        |
//
// # Memory Management
//
// Memory overhead per codec:
//   - NoOp: Zero overhead, returns the input slice directly
//   - LZ4: ~64KB compression, ~16KB decompression, uses a pooled block compressor
//   - S2: ~256KB compression, ~64KB decompression
//   - Zstd: ~2-4MB compression, ~1-2MB decompression, uses pooled encoder/decoder
//     instances (see zstd_pure.go's package-level sync.Pool variables)
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use by multiple goroutines.
//
// # Error Handling
//
// Decompression errors are the common case and surface as a wrapped error
// identifying the failing algorithm; callers should treat them as data
// corruption rather than transient failures.
//
// # Frame Integration
//
// The root package wraps a codec's output in a small frame (wire.FrameMagic,
// a wire.CompressionType byte, and the uncompressed length) so that Unpack can
// select the correct decompressor without external configuration:
//
//	// pack with Zstd compression
//	cfg, _ := config.New(config.WithBufferCompression(wire.CompressionZstd))
//	data, err := getpacker.Pack(v, cfg)
//
//	// unpack auto-detects the frame and decompresses before decoding
//	got, err := getpacker.Unpack(data, cfg, nil)
//
// # Advanced Usage
//
// For custom compression needs, implement the Compressor/Decompressor interfaces
// and register them with a custom dispatch in place of CreateCodec:
//
//	type MyCodec struct{}
//
//	func (c *MyCodec) Compress(data []byte) ([]byte, error) {
//	    // custom compression logic
//	    return compressedData, nil
//	}
//
//	func (c *MyCodec) Decompress(data []byte) ([]byte, error) {
//	    // custom decompression logic
//	    return originalData, nil
//	}
package compress
