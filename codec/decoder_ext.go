package codec

import (
	"math"
	"math/big"
	"net/url"

	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// decodeExt reads an ext-family value: the length field (fixed for
// fixext1/2/4/8/16, explicit for ext8/16/32), the ext-type byte, and
// dispatches to the reader registered for that ext type. Every ext reader
// returns through checkExtConsumed, which fails with ErrTrailingBytes if
// the reader did not consume exactly the declared payload length.
func (d *Decoder) decodeExt(prefix byte) (value.Value, error) {
	base := d.offset - 1

	var payloadLen int
	if fixLen := wire.FixExtPayloadLen(prefix); fixLen > 0 {
		payloadLen = fixLen
	} else {
		var err error
		switch prefix {
		case wire.Ext8:
			var b byte
			b, err = d.readByte()
			payloadLen = int(b)
		case wire.Ext16:
			var u uint16
			u, err = d.readUint16()
			payloadLen = int(u)
		default: // wire.Ext32
			var u uint32
			u, err = d.readUint32()
			payloadLen = int(u)
		}
		if err != nil {
			return value.Value{}, err
		}
	}

	if uint64(payloadLen) > uint64(d.cfg.MaxExtPayloadBytes) {
		return value.Value{}, d.limitErr("maxExtPayloadBytes", d.cfg.MaxExtPayloadBytes, payloadLen)
	}

	extType, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	payloadStart := d.offset

	var v value.Value
	switch extType {
	case wire.ExtBigInt:
		v, err = d.decodeBigIntExt(payloadLen, false)
	case wire.ExtWideInt:
		v, err = d.decodeBigIntExt(payloadLen, true)
	case wire.ExtDuration:
		v, err = d.decodeDurationExt(payloadLen)
	case wire.ExtDateTime:
		v, err = d.decodeDateTimeExt(payloadLen)
	case wire.ExtURI:
		v, err = d.decodeURIExt(payloadLen)
	case wire.ExtSet:
		v, err = d.decodeSetExt(payloadLen)
	case wire.ExtBoolList:
		v, err = d.decodeBoolListExt(payloadLen)
	default:
		if kind, ok := wire.TypedArrayKindFromExt(extType); ok {
			v, err = d.decodeTypedArrayExt(base, payloadLen, kind)
		} else {
			var data []byte
			data, err = d.readBytes(payloadLen)
			if err == nil {
				v = value.ExtUnknown(value.ExtValue{Type: extType, Data: data})
			}
		}
	}
	if err != nil {
		return value.Value{}, err
	}

	if err := d.checkExtConsumed(payloadStart, payloadLen); err != nil {
		return value.Value{}, err
	}

	return v, nil
}

func (d *Decoder) checkExtConsumed(payloadStart, payloadLen int) error {
	if d.offset-payloadStart != payloadLen {
		return errs.New(errs.ErrTrailingBytes, "ext payload length did not match bytes consumed").
			WithOffset(d.offset).WithDetail("declared", payloadLen).WithDetail("consumed", d.offset-payloadStart)
	}

	return nil
}

// decodeBigIntExt reads a sign byte followed by a big-endian magnitude.
// When wide is true (the wideInt ext), the result is coerced to a host
// Int64 when the current interop mode allows it; bigInt always yields a
// BigInteger, preserving the caller's explicit intent.
func (d *Decoder) decodeBigIntExt(payloadLen int, wide bool) (value.Value, error) {
	if payloadLen < 1 {
		return value.Value{}, errs.New(errs.ErrInvalidExtPayload, "bigInt ext payload must include a sign byte").
			WithOffset(d.offset)
	}

	payload, err := d.readBytes(payloadLen)
	if err != nil {
		return value.Value{}, err
	}

	bi := numint.BigIntFromSignMagnitude(payload[0], payload[1:])
	if wide {
		return d.coerceWideBigInt(bi), nil
	}

	return value.BigInt(bi), nil
}

func (d *Decoder) coerceWideBigInt(bi *big.Int) value.Value {
	switch d.cfg.IntInteropMode {
	case numint.Off:
		if v, ok := numint.FitsInt64(bi); ok {
			return value.Int64(v)
		}
		if v, ok := numint.FitsUint64(bi); ok && v <= math.MaxInt64 {
			return value.Int64(int64(v))
		}

		return value.BigInt(bi)
	default:
		if v, ok := numint.FitsInt64(bi); ok && numint.InSafeWindow(v) {
			return value.Int64(v)
		}
		if v, ok := numint.FitsUint64(bi); ok && numint.UintInSafeWindow(v) {
			return value.Int64(int64(v))
		}

		return value.BigInt(bi)
	}
}

func (d *Decoder) decodeDurationExt(payloadLen int) (value.Value, error) {
	if payloadLen != 8 {
		return value.Value{}, errs.New(errs.ErrInvalidExtPayload, "duration ext payload must be 8 bytes").
			WithOffset(d.offset).WithDetail("payloadLen", payloadLen)
	}

	u, err := d.readUint64()
	if err != nil {
		return value.Value{}, err
	}

	return value.DurationValue(value.Duration(int64(u))), nil
}

func (d *Decoder) decodeDateTimeExt(payloadLen int) (value.Value, error) {
	if payloadLen != 9 {
		return value.Value{}, errs.New(errs.ErrInvalidExtPayload, "dateTime ext payload must be 9 bytes").
			WithOffset(d.offset).WithDetail("payloadLen", payloadLen)
	}

	micros, err := d.readUint64()
	if err != nil {
		return value.Value{}, err
	}
	flag, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	return value.DateTimeValue(value.DateTime{Micros: int64(micros), UTC: flag != 0}), nil
}

func (d *Decoder) decodeURIExt(payloadLen int) (value.Value, error) {
	if uint64(payloadLen) > uint64(d.cfg.MaxURIUTF8Bytes) {
		return value.Value{}, d.limitErr("maxURIUTF8Bytes", d.cfg.MaxURIUTF8Bytes, payloadLen)
	}

	b, err := d.readBytes(payloadLen)
	if err != nil {
		return value.Value{}, err
	}

	u, err := url.Parse(string(b))
	if err != nil {
		return value.Value{}, errs.New(errs.ErrInvalidExtPayload, "uri ext payload is not a valid URI").
			WithOffset(d.offset - payloadLen)
	}

	return value.URI(u), nil
}

// decodeSetExt reads a u32 element count followed by that many values,
// read directly from the shared input stream (the set's elements are not
// wrapped in any further framing beyond the ext payload they already sit
// inside).
func (d *Decoder) decodeSetExt(payloadLen int) (value.Value, error) {
	if err := d.enterContainer(); err != nil {
		return value.Value{}, err
	}
	defer d.exitContainer()

	count, err := d.readUint32()
	if err != nil {
		return value.Value{}, err
	}
	if uint64(count) > uint64(d.cfg.MaxArrayLength) {
		return value.Value{}, d.limitErr("maxArrayLength", d.cfg.MaxArrayLength, count)
	}

	items := make([]value.Value, count)
	for i := range items {
		v, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}

	return value.Set(items), nil
}

func (d *Decoder) decodeBoolListExt(payloadLen int) (value.Value, error) {
	if payloadLen < 4 {
		return value.Value{}, errs.New(errs.ErrInvalidExtPayload, "boolList ext payload must include a u32 count").
			WithOffset(d.offset)
	}

	count, err := d.readUint32()
	if err != nil {
		return value.Value{}, err
	}

	packedLen := payloadLen - 4
	expected := (int(count) + 7) / 8
	if packedLen != expected {
		return value.Value{}, errs.New(errs.ErrInvalidExtPayload, "boolList packed byte length does not match count").
			WithOffset(d.offset).WithDetail("count", count).WithDetail("packedLen", packedLen)
	}

	packed, err := d.readBytes(packedLen)
	if err != nil {
		return value.Value{}, err
	}

	return value.BoolBitListValue(value.FromPacked(packed, int(count))), nil
}

// decodeTypedArrayExt reads a u32 element count, the alignment padding
// (whatever the declared payload length leaves after the count field and
// count*elementSize data bytes, at most 7), and the raw element bytes.
// The returned TypedArray
// aliases the decoder's input (Owned=false): this is the zero-copy path,
// valid because the encoder always wrote these bytes in the host's native
// byte order and the padding guarantees correct alignment for the
// unsafe.Slice reinterpretation in value.TypedArray's accessors.
func (d *Decoder) decodeTypedArrayExt(base, payloadLen int, kind wire.TypedArrayKind) (value.Value, error) {
	count, err := d.readUint32()
	if err != nil {
		return value.Value{}, err
	}
	if uint64(count) > uint64(d.cfg.MaxArrayLength) {
		return value.Value{}, d.limitErr("maxArrayLength", d.cfg.MaxArrayLength, count)
	}

	elemSize := kind.ElementSize()
	dataLen := int(count) * elemSize
	pad := payloadLen - 4 - dataLen
	if pad < 0 || pad > 7 {
		return value.Value{}, errs.New(errs.ErrInvalidExtPayload, "typed-array payload length does not match count").
			WithOffset(d.offset).WithDetail("count", count).WithDetail("payloadLen", payloadLen)
	}
	if _, err := d.readBytes(pad); err != nil {
		return value.Value{}, err
	}

	data, err := d.readBytes(dataLen)
	if err != nil {
		return value.Value{}, err
	}

	return value.TypedArrayValue(value.TypedArray{ElemKind: kind, Data: data, Owned: false}), nil
}
