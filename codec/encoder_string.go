package codec

import (
	"unicode/utf8"

	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/wire"
)

// isASCIIFast scans s byte-by-byte and reports whether every byte is in
// the 7-bit ASCII range. ASCII text is always valid UTF-8, so this lets
// encodeString skip the more expensive utf8.ValidString scan for the
// common case. The scan bails out (rolls back to the slow, full
// validation path in encodeString) at the first byte with the high bit
// set rather than trying to resume validation from that point.
func isASCIIFast(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}

	return true
}

// encodeString writes s as a fixstr/str8/str16/str32 value, selecting the
// tightest size class. Non-ASCII strings are validated as UTF-8 unless
// AllowMalformedUTF8 is set.
func (e *Encoder) encodeString(s string) error {
	if uint64(len(s)) > uint64(e.cfg.MaxStringUTF8Bytes) {
		return e.limitErr("maxStringUTF8Bytes", e.cfg.MaxStringUTF8Bytes, len(s))
	}

	if !isASCIIFast(s) && !e.cfg.AllowMalformedUTF8 && !utf8.ValidString(s) {
		return errs.New(errs.ErrInvalidUTF8, "text value is not valid UTF-8")
	}

	switch wire.StringSizeClass(len(s)) {
	case wire.SizeFix:
		e.buf.AppendByte(wire.FixStrMin | byte(len(s)))
	case wire.Size8:
		e.buf.AppendByte(wire.Str8)
		e.buf.AppendByte(byte(len(s)))
	case wire.Size16:
		e.buf.AppendByte(wire.Str16)
		e.appendUint16(uint16(len(s)))
	default:
		e.buf.AppendByte(wire.Str32)
		e.appendUint32(uint32(len(s)))
	}
	e.buf.Append([]byte(s))

	return nil
}
