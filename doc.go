// Package getpacker provides a compact binary serialization format for a
// polymorphic value tree: null, bool, signed/arbitrary-precision integers,
// float64, bytes, text, lists, maps, sets, date-times, durations, URIs,
// homogeneous typed arrays, packed bool lists, and opaque extension data.
//
// The format is a MessagePack-style, self-delimiting byte stream: every
// value starts with a single prefix byte that either encodes small values
// directly (small ints, short strings, short arrays/maps) or selects the
// size class of a following length field. Typed arrays are laid out with
// alignment padding so that a decoder holding its input in a sufficiently
// aligned buffer can reinterpret the element bytes in place instead of
// copying them.
//
// # Core Features
//
//   - Bit-exact round-tripping of every supported scalar and container kind
//   - Deterministic, narrowest-fitting size-class selection on encode
//   - Zero-copy decoding of typed arrays and binary blobs
//   - Configurable cross-runtime integer interop for values near or beyond
//     the float64-safe integer window
//   - Optional whole-buffer compression (Zstd, S2, LZ4) and an xxHash64
//     integrity trailer, both applied outside the core wire format
//
// # Basic Usage
//
//	import "github.com/jonataslaw/get-packer"
//
//	cfg, _ := config.New()
//	data, err := getpacker.Pack(value.Text("hello"), cfg)
//	if err != nil {
//	    return err
//	}
//
//	got, err := getpacker.Unpack(data, cfg, nil)
//	if err != nil {
//	    return err
//	}
//	s, _ := got.(value.Value).AsText()
//
// # Package Structure
//
// This package is a thin convenience wrapper around codec.Encoder and
// codec.Decoder that adds the two facade-level concerns that do not belong
// in the core wire format: optional whole-buffer compression (see the
// compress package) and an optional integrity trailer. Callers that need
// streaming or lower-level control can use the wire, value, config, and
// codec packages directly.
package getpacker
