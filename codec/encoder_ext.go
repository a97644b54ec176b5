package codec

import (
	"math/big"
	"net/url"

	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// writeExtHeader writes the prefix/length-field/ext-type-byte sequence for
// an ext payload of the given length, choosing fixext1/2/4/8/16 when the
// length matches exactly and ext8/16/32 otherwise.
func (e *Encoder) writeExtHeader(extType byte, payloadLen int) error {
	if uint64(payloadLen) > uint64(e.cfg.MaxExtPayloadBytes) {
		return e.limitErr("maxExtPayloadBytes", e.cfg.MaxExtPayloadBytes, payloadLen)
	}

	if prefix, ok := wire.FixExtPrefixFor(payloadLen); ok {
		e.buf.AppendByte(prefix)
		e.buf.AppendByte(extType)

		return nil
	}

	switch wire.ExtSizeClass(payloadLen) {
	case wire.Size8:
		e.buf.AppendByte(wire.Ext8)
		e.buf.AppendByte(byte(payloadLen))
	case wire.Size16:
		e.buf.AppendByte(wire.Ext16)
		e.appendUint16(uint16(payloadLen))
	default:
		e.buf.AppendByte(wire.Ext32)
		e.appendUint32(uint32(payloadLen))
	}
	e.buf.AppendByte(extType)

	return nil
}

// extHeaderLen returns how many bytes writeExtHeader would emit (prefix +
// length field + ext-type byte) for a payload of the given length, without
// writing anything. Used by encodeTypedArray to compute alignment padding
// before the header itself is written.
func extHeaderLen(payloadLen int) int {
	if _, ok := wire.FixExtPrefixFor(payloadLen); ok {
		return 2
	}

	switch wire.ExtSizeClass(payloadLen) {
	case wire.Size8:
		return 3
	case wire.Size16:
		return 4
	default:
		return 6
	}
}

// encodeBigIntValue encodes an explicit BigInteger value. Per the
// cross-runtime interop policy (numint.InteropMode), the ext type chosen
// depends on whether fidelity requires the decoder to always reconstruct
// a BigInteger (bigInt) or may cheaply collapse to a host integer when the
// magnitude fits in 64 bits and mode is off (wideInt). See package
// numint's InteropMode doc comments for the full policy.
func (e *Encoder) encodeBigIntValue(bi *big.Int) error {
	extType := wire.ExtBigInt
	if e.cfg.IntInteropMode == numint.Off {
		if _, ok := numint.FitsInt64(bi); ok {
			extType = wire.ExtWideInt
		} else if _, ok := numint.FitsUint64(bi); ok {
			extType = wire.ExtWideInt
		}
	}

	return e.writeBigIntPayload(extType, bi)
}

func (e *Encoder) writeBigIntPayload(extType byte, bi *big.Int) error {
	sign, magnitude := numint.SignMagnitude(bi)
	if uint64(len(magnitude)) > uint64(e.cfg.MaxBigIntMagnitudeBytes) {
		return e.limitErr("maxBigIntMagnitudeBytes", e.cfg.MaxBigIntMagnitudeBytes, len(magnitude))
	}

	if err := e.writeExtHeader(extType, 1+len(magnitude)); err != nil {
		return err
	}
	e.buf.AppendByte(sign)
	e.buf.Append(magnitude)

	return nil
}

// encodeDateTime writes an 8-byte microsecond timestamp plus a 1-byte
// UTC/local flag as a 9-byte ext payload.
func (e *Encoder) encodeDateTime(dt value.DateTime) error {
	if err := e.writeExtHeader(wire.ExtDateTime, 9); err != nil {
		return err
	}
	e.appendUint64(uint64(dt.Micros))
	if dt.UTC {
		e.buf.AppendByte(1)
	} else {
		e.buf.AppendByte(0)
	}

	return nil
}

// encodeDuration writes a signed microsecond span as an 8-byte ext payload.
func (e *Encoder) encodeDuration(d value.Duration) error {
	if err := e.writeExtHeader(wire.ExtDuration, 8); err != nil {
		return err
	}
	e.appendUint64(uint64(int64(d)))

	return nil
}

func (e *Encoder) encodeURI(u *url.URL) error {
	s := u.String()
	if uint64(len(s)) > uint64(e.cfg.MaxURIUTF8Bytes) {
		return e.limitErr("maxURIUTF8Bytes", e.cfg.MaxURIUTF8Bytes, len(s))
	}

	if err := e.writeExtHeader(wire.ExtURI, len(s)); err != nil {
		return err
	}
	e.buf.Append([]byte(s))

	return nil
}

func (e *Encoder) encodeExtUnknown(ext value.ExtValue) error {
	if err := e.writeExtHeader(ext.Type, len(ext.Data)); err != nil {
		return err
	}
	e.buf.Append(ext.Data)

	return nil
}

// encodeTypedArray writes a homogeneous numeric array as an ext payload:
// a big-endian u32 element count, zero-padding bytes to align the data
// region to the element size (measured from the start of the output
// buffer, since the whole pack() output is assumed to begin at a
// sufficiently aligned address), then the raw host-endian element bytes
// verbatim.
func (e *Encoder) encodeTypedArray(t value.TypedArray) error {
	n := t.Len()
	if uint64(n) > uint64(e.cfg.MaxArrayLength) {
		return e.limitErr("maxArrayLength", e.cfg.MaxArrayLength, n)
	}

	elemSize := t.ElemKind.ElementSize()
	base := e.buf.Len()
	payloadLen := 4 + len(t.Data)

	// Padding depends on the header length, which depends on the ext
	// size class, which depends on the payload length (which includes
	// the padding). Two passes converge: padding is at most 7 bytes, so
	// it can only flip the size class in vanishingly rare boundary
	// cases, and a second pass always catches those.
	var pad int
	for i := 0; i < 2; i++ {
		headerLen := base + extHeaderLen(payloadLen) + 4
		pad = wire.TypedArrayPadding(headerLen, elemSize)
		next := 4 + pad + len(t.Data)
		if next == payloadLen {
			break
		}
		payloadLen = next
	}

	if err := e.writeExtHeader(t.ElemKind.ExtType(), payloadLen); err != nil {
		return err
	}
	e.appendUint32(uint32(n))
	for i := 0; i < pad; i++ {
		e.buf.AppendByte(0)
	}
	e.buf.Append(t.Data)

	return nil
}

// encodeBoolBitList writes a bit-packed boolean list as an ext payload: a
// big-endian u32 element count followed by the packed bytes.
func (e *Encoder) encodeBoolBitList(b *value.BoolBitList) error {
	if uint64(b.Length()) > uint64(e.cfg.MaxArrayLength) {
		return e.limitErr("maxArrayLength", e.cfg.MaxArrayLength, b.Length())
	}

	packed := b.AsBytes()
	if err := e.writeExtHeader(wire.ExtBoolList, 4+len(packed)); err != nil {
		return err
	}
	e.appendUint32(uint32(b.Length()))
	e.buf.Append(packed)

	return nil
}

// errUnsupportedKind is a small helper for dispatch defaults outside the
// main switch (e.g. when a promoted-list helper rejects a shape).
func errUnsupportedKind(kind value.Kind) error {
	return errs.New(errs.ErrUnsupportedType, "unsupported value kind").WithDetail("kind", kind.String())
}
