package codec

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/jonataslaw/get-packer/config"
	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// Decoder reads a Value tree from a byte slice written by Encoder.
//
// Decoder does not copy its input: binary blobs, typed-array payloads, and
// other raw byte payloads returned from Unpack may alias the slice passed to
// Reset (Text values are copied into Go strings). A
// caller that needs a decoded Value to outlive the input buffer must copy
// the parts it keeps (value.TypedArray.Clone, append([]byte{}, b...), and
// so on).
//
// Note: Decoder is NOT thread-safe.
type Decoder struct {
	cfg    *config.Config
	data   []byte
	offset int
	depth  int
}

// NewDecoder creates a Decoder. cfg may be nil to use config.Default().
func NewDecoder(cfg *config.Config) *Decoder {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Decoder{cfg: cfg}
}

// Reset points the decoder at a new input buffer and rewinds its offset
// to 0. When cfg is non-nil, it replaces the decoder's configuration.
func (d *Decoder) Reset(data []byte, cfg *config.Config) {
	d.data = data
	d.offset = 0
	d.depth = 0
	if cfg != nil {
		d.cfg = cfg
	}
}

// Offset returns the decoder's current read position within its input.
func (d *Decoder) Offset() int {
	return d.offset
}

// IsDone reports whether the decoder has consumed its entire input.
func (d *Decoder) IsDone() bool {
	return d.offset >= len(d.data)
}

// Unpack decodes exactly one value starting at the current offset,
// advancing the offset past it.
func (d *Decoder) Unpack() (value.Value, error) {
	return d.decodeValue()
}

func (d *Decoder) enterContainer() error {
	d.depth++
	if d.depth > d.cfg.MaxDepth {
		return errs.New(errs.ErrMaxDepthExceeded, "max depth exceeded").
			WithOffset(d.offset).
			WithDetail("maxDepth", d.cfg.MaxDepth).WithDetail("depth", d.depth)
	}

	return nil
}

func (d *Decoder) exitContainer() {
	d.depth--
}

// need fails with ErrTruncatedInput if fewer than n bytes remain.
func (d *Decoder) need(n int) error {
	if len(d.data)-d.offset < n {
		return errs.New(errs.ErrTruncatedInput, "truncated input").
			WithOffset(d.offset).WithDetail("needed", n).WithDetail("remaining", len(d.data)-d.offset)
	}

	return nil
}

func (d *Decoder) readByte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.data[d.offset]
	d.offset++

	return b, nil
}

func (d *Decoder) readBytes(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n

	return b, nil
}

func (d *Decoder) readUint16() (uint16, error) {
	b, err := d.readBytes(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

func (d *Decoder) readUint32() (uint32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

func (d *Decoder) readUint64() (uint64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

// decodeValue is the single dispatch switch over the leading prefix byte.
func (d *Decoder) decodeValue() (value.Value, error) {
	prefix, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	switch {
	case wire.IsPosFixInt(prefix):
		return value.Int64(int64(prefix)), nil
	case wire.IsNegFixInt(prefix):
		return value.Int64(int64(int8(prefix))), nil
	case wire.IsFixMap(prefix):
		return d.decodeMap(int(prefix & 0x0F))
	case wire.IsFixArray(prefix):
		return d.decodeList(int(prefix & 0x0F))
	case wire.IsFixStr(prefix):
		return d.decodeString(int(prefix & 0x1F))
	}

	switch prefix {
	case wire.Nil:
		return value.Null(), nil
	case wire.Reserved:
		return value.Value{}, errs.New(errs.ErrUnknownPrefix, "0xC1 is reserved and must never appear").
			WithOffset(d.offset - 1).WithDetail("prefix", prefix)
	case wire.False:
		return value.Bool(false), nil
	case wire.True:
		return value.Bool(true), nil
	case wire.Bin8, wire.Bin16, wire.Bin32:
		return d.decodeBinary(prefix)
	case wire.Ext8, wire.Ext16, wire.Ext32:
		return d.decodeExt(prefix)
	case wire.Float32:
		bits, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}

		return value.Float64(float64(math.Float32frombits(bits))), nil
	case wire.Float64:
		bits, err := d.readUint64()
		if err != nil {
			return value.Value{}, err
		}

		return value.Float64(math.Float64frombits(bits)), nil
	case wire.Uint8:
		b, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int64(int64(b)), nil
	case wire.Uint16:
		u, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int64(int64(u)), nil
	case wire.Uint32:
		u, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int64(int64(u)), nil
	case wire.Uint64:
		u, err := d.readUint64()
		if err != nil {
			return value.Value{}, err
		}

		return d.coerceWireUint64(u), nil
	case wire.Int8:
		b, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int64(int64(int8(b))), nil
	case wire.Int16:
		u, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int64(int64(int16(u))), nil
	case wire.Int32:
		u, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int64(int64(int32(u))), nil
	case wire.Int64:
		u, err := d.readUint64()
		if err != nil {
			return value.Value{}, err
		}

		return d.coerceWireInt64(int64(u)), nil
	case wire.FixExt1, wire.FixExt2, wire.FixExt4, wire.FixExt8, wire.FixExt16:
		return d.decodeExt(prefix)
	case wire.Str8, wire.Str16, wire.Str32:
		return d.decodeStrFamily(prefix)
	case wire.Array16:
		n, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}

		return d.decodeList(int(n))
	case wire.Array32:
		n, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}

		return d.decodeList(int(n))
	case wire.Map16:
		n, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}

		return d.decodeMap(int(n))
	case wire.Map32:
		n, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}

		return d.decodeMap(int(n))
	default:
		return value.Value{}, errs.New(errs.ErrUnknownPrefix, "unknown prefix byte").
			WithOffset(d.offset - 1).WithDetail("prefix", prefix)
	}
}

// coerceWireUint64 applies the interop policy to a decoded uint64 wire
// scalar: values that fit the policy's threshold become a host Int64;
// everything else becomes BigInteger, since the Value model has no
// separate unsigned-64 kind.
func (d *Decoder) coerceWireUint64(u uint64) value.Value {
	switch d.cfg.IntInteropMode {
	case numint.Off:
		if u <= math.MaxInt64 {
			return value.Int64(int64(u))
		}

		return value.BigInt(new(big.Int).SetUint64(u))
	default:
		if numint.UintInSafeWindow(u) {
			return value.Int64(int64(u))
		}

		return value.BigInt(new(big.Int).SetUint64(u))
	}
}

// coerceWireInt64 applies the interop policy to a decoded int64 wire
// scalar. Under off, every int64 bit pattern is representable as a host
// int64, so no promotion is needed.
func (d *Decoder) coerceWireInt64(raw int64) value.Value {
	if d.cfg.IntInteropMode == numint.Off || numint.InSafeWindow(raw) {
		return value.Int64(raw)
	}

	return value.BigInt(big.NewInt(raw))
}
