// Package codec implements the Encoder and Decoder: the adaptive,
// size-class-minimal serializer and the zero-copy-preferring deserializer
// that together realize the wire format defined in package wire.
package codec

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/jonataslaw/get-packer/config"
	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/internal/buffer"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// Encoder dispatches a Value tree to a compact byte stream.
//
// Note: Encoder is NOT thread-safe. Each instance should be used by a
// single goroutine at a time.
//
// Note: an Encoder is reusable across Pack calls via Reset, but a Pack
// call that returns an error leaves the encoder's buffer in an undefined
// state; callers must call Reset before reusing it.
type Encoder struct {
	cfg   *config.Config
	buf   *buffer.Buffer
	depth int
}

// NewEncoder creates an Encoder. cfg may be nil to use config.Default().
func NewEncoder(cfg *config.Config) *Encoder {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Encoder{
		cfg: cfg,
		buf: buffer.New(cfg.InitialCapacity),
	}
}

// Reset clears the encoder's write offset. When cfg is non-nil, it
// replaces the encoder's configuration. The internal buffer and its
// capacity are kept, so a new InitialCapacity in cfg does not resize it.
func (e *Encoder) Reset(cfg *config.Config) {
	e.buf.Reset()
	e.depth = 0
	if cfg != nil {
		e.cfg = cfg
	}
}

// Pack resets the encoder's offset to 0, encodes v, and returns a slice
// into the encoder's internal buffer. The returned slice is invalidated by
// the next call to Pack or Reset; callers that need to retain it across
// such a call must copy it. There is no trimming option here or in the
// package-level Pack function; the latter creates a fresh Encoder on every
// call, so its result is not overwritten by a later call.
func (e *Encoder) Pack(v value.Value) ([]byte, error) {
	e.buf.Reset()
	e.depth = 0

	if err := e.encodeValue(v); err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}

// enterContainer increments the depth counter, failing if it would exceed
// MaxDepth. Call on entry to List/Map/Set and their ext-set encoding.
func (e *Encoder) enterContainer() error {
	e.depth++
	if e.depth > e.cfg.MaxDepth {
		return errs.New(errs.ErrMaxDepthExceeded, "max depth exceeded").
			WithDetail("maxDepth", e.cfg.MaxDepth).WithDetail("depth", e.depth)
	}

	return nil
}

func (e *Encoder) exitContainer() {
	e.depth--
}

// encodeValue is the single dispatch switch over Value.Kind, with one case
// per Kind. The scalar kinds come first; the typed-array and bool-list
// kinds are listed before the generic containers (Set, Map, List).
func (e *Encoder) encodeValue(v value.Value) error {
	switch v.Kind {
	case value.KindNull:
		e.buf.AppendByte(wire.Nil)

		return nil
	case value.KindBool:
		b, _ := v.AsBool()

		return e.encodeBool(b)
	case value.KindInt64:
		i, _ := v.AsInt64()

		return e.encodeHostInt(i)
	case value.KindBigInt:
		bi, _ := v.AsBigInt()

		return e.encodeBigIntValue(bi)
	case value.KindFloat64:
		f, _ := v.AsFloat64()

		return e.encodeFloat(f)
	case value.KindBytes:
		b, _ := v.AsBytes()

		return e.encodeBinary(b)
	case value.KindText:
		s, _ := v.AsText()

		return e.encodeString(s)
	case value.KindTypedArray:
		t, _ := v.AsTypedArray()

		return e.encodeTypedArray(t)
	case value.KindBoolBitList:
		b, _ := v.AsBoolBitList()

		return e.encodeBoolBitList(b)
	case value.KindDateTime:
		dt, _ := v.AsDateTime()

		return e.encodeDateTime(dt)
	case value.KindDuration:
		d, _ := v.AsDuration()

		return e.encodeDuration(d)
	case value.KindURI:
		u, _ := v.AsURI()

		return e.encodeURI(u)
	case value.KindSet:
		items, _ := v.AsSet()

		return e.encodeSet(items)
	case value.KindMap:
		m, _ := v.AsMap()

		return e.encodeMap(m)
	case value.KindList:
		items, _ := v.AsList()

		return e.encodeList(items)
	case value.KindExtUnknown:
		ext, _ := v.AsExtUnknown()

		return e.encodeExtUnknown(ext)
	default:
		return errUnsupportedKind(v.Kind)
	}
}

func (e *Encoder) encodeBool(b bool) error {
	if b {
		e.buf.AppendByte(wire.True)
	} else {
		e.buf.AppendByte(wire.False)
	}

	return nil
}

// encodeHostInt encodes a Go int64, applying the interop policy when its
// magnitude falls outside the safe window.
func (e *Encoder) encodeHostInt(i int64) error {
	if e.cfg.IntInteropMode != numint.Off && !numint.InSafeWindow(i) {
		switch e.cfg.IntInteropMode {
		case numint.RequireBigIntForWide:
			return errs.New(errs.ErrUnsupportedType,
				"integer outside safe window requires an explicit BigInteger under requireBigIntForWide").
				WithDetail("value", i)
		case numint.PromoteWideToBigInt:
			return e.encodeBigIntValue(big.NewInt(i))
		}
	}

	return e.writePlainInt(i)
}

// writePlainInt picks the tightest fixed-width integer family for i,
// ignoring the interop policy. encodeHostInt calls it for every host
// integer the policy lets through; BigInteger values, including those
// written as the wideInt ext, go through writeBigIntPayload instead.
func (e *Encoder) writePlainInt(i int64) error {
	switch {
	case i >= 0 && i <= 127:
		e.buf.AppendByte(byte(i))
	case i < 0 && i >= -32:
		e.buf.AppendByte(byte(int8(i)))
	case i >= 0:
		return e.writeUnsignedFamily(uint64(i))
	case i >= math.MinInt8:
		e.buf.AppendByte(wire.Int8)
		e.buf.AppendByte(byte(int8(i)))
	case i >= math.MinInt16:
		e.buf.AppendByte(wire.Int16)
		e.appendUint16(uint16(int16(i)))
	case i >= math.MinInt32:
		e.buf.AppendByte(wire.Int32)
		e.appendUint32(uint32(int32(i)))
	default:
		e.buf.AppendByte(wire.Int64)
		e.appendUint64(uint64(i))
	}

	return nil
}

func (e *Encoder) writeUnsignedFamily(u uint64) error {
	switch {
	case u <= math.MaxUint8:
		e.buf.AppendByte(wire.Uint8)
		e.buf.AppendByte(byte(u))
	case u <= math.MaxUint16:
		e.buf.AppendByte(wire.Uint16)
		e.appendUint16(uint16(u))
	case u <= math.MaxUint32:
		e.buf.AppendByte(wire.Uint32)
		e.appendUint32(uint32(u))
	default:
		e.buf.AppendByte(wire.Uint64)
		e.appendUint64(u)
	}

	return nil
}

func (e *Encoder) encodeFloat(f float64) error {
	if e.cfg.PreferFloat32 && !math.IsNaN(f) {
		f32 := float32(f)
		if float64(f32) == f {
			e.buf.AppendByte(wire.Float32)
			e.appendUint32(math.Float32bits(f32))

			return nil
		}
	}
	e.buf.AppendByte(wire.Float64)
	e.appendUint64(math.Float64bits(f))

	return nil
}

func (e *Encoder) encodeBinary(b []byte) error {
	if uint64(len(b)) > uint64(e.cfg.MaxBinaryBytes) {
		return e.limitErr("maxBinaryBytes", e.cfg.MaxBinaryBytes, len(b))
	}

	switch wire.BinSizeClass(len(b)) {
	case wire.Size8:
		e.buf.AppendByte(wire.Bin8)
		e.buf.AppendByte(byte(len(b)))
	case wire.Size16:
		e.buf.AppendByte(wire.Bin16)
		e.appendUint16(uint16(len(b)))
	default:
		e.buf.AppendByte(wire.Bin32)
		e.appendUint32(uint32(len(b)))
	}
	e.buf.Append(b)

	return nil
}

// Appenders for big-endian multi-byte framing fields. Per package wire's
// format, all length/count/scalar framing fields are big-endian; only
// typed-array payload *data* is host-endian (see encoder_container.go and
// value/typedarray.go).
func (e *Encoder) appendUint16(v uint16) { appendUint16(e.buf, v) }
func (e *Encoder) appendUint32(v uint32) { appendUint32(e.buf, v) }
func (e *Encoder) appendUint64(v uint64) { appendUint64(e.buf, v) }

func appendUint16(buf *buffer.Buffer, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	buf.Append(tmp[:])
}

func appendUint32(buf *buffer.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Append(tmp[:])
}

func appendUint64(buf *buffer.Buffer, v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	buf.Append(tmp[:])
}

func (e *Encoder) limitErr(name string, limit, actual any) error {
	return errs.New(errs.ErrLimitExceeded, "limit exceeded").
		WithDetail("limit", name).WithDetail("limitValue", limit).WithDetail("actual", actual)
}
