package wire

// ExtType identifies the semantic meaning of an ext-family payload. The
// registry is stable: once a byte is assigned here, its meaning must never
// change, and 0xC1 (the reserved prefix) must never be assigned to an
// ExtType — it is a Prefix, not an ExtType, but the two byte spaces are
// kept visually distinct to avoid the mistake.
type ExtType = byte

const (
	ExtBigInt   ExtType = 0x01
	ExtDuration ExtType = 0x02
	ExtWideInt  ExtType = 0x03
	ExtBoolList ExtType = 0x04
	ExtURI      ExtType = 0x05
	ExtSet      ExtType = 0x06
	ExtDateTime ExtType = 0x07

	ExtInt8List    ExtType = 0x10
	ExtUint16List  ExtType = 0x11
	ExtInt16List   ExtType = 0x12
	ExtUint32List  ExtType = 0x13
	ExtInt32List   ExtType = 0x14
	ExtUint64List  ExtType = 0x15
	ExtInt64List   ExtType = 0x16
	ExtFloat32List ExtType = 0x17
	ExtFloat64List ExtType = 0x18
)

// TypedArrayKind identifies the element type of a TypedArray value.
type TypedArrayKind uint8

const (
	KindInt8 TypedArrayKind = iota
	KindUint16
	KindInt16
	KindUint32
	KindInt32
	KindUint64
	KindInt64
	KindFloat32
	KindFloat64
)

// ElementSize returns the size in bytes of one element of the given kind.
func (k TypedArrayKind) ElementSize() int {
	switch k {
	case KindInt8:
		return 1
	case KindUint16, KindInt16:
		return 2
	case KindUint32, KindInt32, KindFloat32:
		return 4
	case KindUint64, KindInt64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// ExtType returns the ext-type byte registered for the typed-array kind.
func (k TypedArrayKind) ExtType() ExtType {
	switch k {
	case KindInt8:
		return ExtInt8List
	case KindUint16:
		return ExtUint16List
	case KindInt16:
		return ExtInt16List
	case KindUint32:
		return ExtUint32List
	case KindInt32:
		return ExtInt32List
	case KindUint64:
		return ExtUint64List
	case KindInt64:
		return ExtInt64List
	case KindFloat32:
		return ExtFloat32List
	case KindFloat64:
		return ExtFloat64List
	default:
		return 0
	}
}

// TypedArrayKindFromExt returns the TypedArrayKind registered for ext, and
// ok=false if ext is not one of the nine typed-array ext types.
func TypedArrayKindFromExt(ext ExtType) (kind TypedArrayKind, ok bool) {
	switch ext {
	case ExtInt8List:
		return KindInt8, true
	case ExtUint16List:
		return KindUint16, true
	case ExtInt16List:
		return KindInt16, true
	case ExtUint32List:
		return KindUint32, true
	case ExtInt32List:
		return KindInt32, true
	case ExtUint64List:
		return KindUint64, true
	case ExtInt64List:
		return KindInt64, true
	case ExtFloat32List:
		return KindFloat32, true
	case ExtFloat64List:
		return KindFloat64, true
	default:
		return 0, false
	}
}

// CompressionType identifies the whole-buffer compression backend applied
// by the optional buffer-compression extension (see config.WithBufferCompression).
// This is a domain-stack addition layered on top of the core wire format:
// it governs a frame wrapped around the entire pack() output, not a value
// kind within the tree.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// FrameMagic is the leading byte of a compressed pack() output frame.
// It is only inspected by the top-level Pack/Unpack facade, never by
// Encoder/Decoder, which always operate on an uncompressed value stream.
const FrameMagic byte = 0xF0

// FrameHeaderSize is the size in bytes of the compressed-frame header:
// magic (1) + compression type (1) + uncompressed length (4, big-endian).
const FrameHeaderSize = 6
