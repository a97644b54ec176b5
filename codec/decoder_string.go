package codec

import (
	"strings"
	"unicode/utf8"

	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// decodeStrFamily reads the length field for a str8/16/32 prefix and
// delegates to decodeString.
func (d *Decoder) decodeStrFamily(prefix byte) (value.Value, error) {
	var n int
	switch prefix {
	case wire.Str8:
		b, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}
		n = int(b)
	case wire.Str16:
		u, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		n = int(u)
	default: // wire.Str32
		u, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		n = int(u)
	}

	return d.decodeString(n)
}

// decodeString reads n bytes and returns them as a Text value after
// validating them as UTF-8. Invalid UTF-8 fails with ErrInvalidUTF8, unless
// AllowMalformedUTF8 is set, in which case each invalid byte run is
// replaced with U+FFFD.
func (d *Decoder) decodeString(n int) (value.Value, error) {
	if uint64(n) > uint64(d.cfg.MaxStringUTF8Bytes) {
		return value.Value{}, d.limitErr("maxStringUTF8Bytes", d.cfg.MaxStringUTF8Bytes, n)
	}

	b, err := d.readBytes(n)
	if err != nil {
		return value.Value{}, err
	}

	if !utf8.Valid(b) {
		if !d.cfg.AllowMalformedUTF8 {
			return value.Value{}, errs.New(errs.ErrInvalidUTF8, "text value is not valid UTF-8").
				WithOffset(d.offset - n)
		}

		return value.Text(strings.ToValidUTF8(string(b), "�")), nil
	}

	return value.Text(string(b)), nil
}

func (d *Decoder) limitErr(name string, limit, actual any) error {
	return errs.New(errs.ErrLimitExceeded, "limit exceeded").
		WithOffset(d.offset).
		WithDetail("limit", name).WithDetail("limitValue", limit).WithDetail("actual", actual)
}
