package codec

import (
	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/wire"
)

// SkipValue advances past exactly one value without materializing it,
// leaving the decoder's offset where Unpack would have left it had it
// decoded the value in full. Every ext payload (including Set, whose
// element values Unpack would otherwise decode one by one) carries an
// explicit length, so skipping it is a single bounds-checked jump
// regardless of what it contains.
func (d *Decoder) SkipValue() error {
	prefix, err := d.readByte()
	if err != nil {
		return err
	}

	switch {
	case wire.IsPosFixInt(prefix), wire.IsNegFixInt(prefix):
		return nil
	case wire.IsFixMap(prefix):
		return d.skipContainer(int(prefix&0x0F) * 2)
	case wire.IsFixArray(prefix):
		return d.skipContainer(int(prefix & 0x0F))
	case wire.IsFixStr(prefix):
		return d.skipBytes(int(prefix & 0x1F))
	}

	switch prefix {
	case wire.Nil, wire.False, wire.True:
		return nil
	case wire.Reserved:
		return errs.New(errs.ErrUnknownPrefix, "0xC1 is reserved and must never appear").
			WithOffset(d.offset - 1).WithDetail("prefix", prefix)
	case wire.Bin8:
		n, err := d.readByte()
		if err != nil {
			return err
		}

		return d.skipBytes(int(n))
	case wire.Bin16:
		n, err := d.readUint16()
		if err != nil {
			return err
		}

		return d.skipBytes(int(n))
	case wire.Bin32:
		n, err := d.readUint32()
		if err != nil {
			return err
		}

		return d.skipBytes(int(n))
	case wire.Ext8, wire.Ext16, wire.Ext32, wire.FixExt1, wire.FixExt2, wire.FixExt4, wire.FixExt8, wire.FixExt16:
		return d.skipExt(prefix)
	case wire.Float32, wire.Uint32, wire.Int32:
		return d.skipBytes(4)
	case wire.Float64, wire.Uint64, wire.Int64:
		return d.skipBytes(8)
	case wire.Uint8, wire.Int8:
		return d.skipBytes(1)
	case wire.Uint16, wire.Int16:
		return d.skipBytes(2)
	case wire.Str8:
		n, err := d.readByte()
		if err != nil {
			return err
		}

		return d.skipBytes(int(n))
	case wire.Str16:
		n, err := d.readUint16()
		if err != nil {
			return err
		}

		return d.skipBytes(int(n))
	case wire.Str32:
		n, err := d.readUint32()
		if err != nil {
			return err
		}

		return d.skipBytes(int(n))
	case wire.Array16:
		n, err := d.readUint16()
		if err != nil {
			return err
		}

		return d.skipContainer(int(n))
	case wire.Array32:
		n, err := d.readUint32()
		if err != nil {
			return err
		}

		return d.skipContainer(int(n))
	case wire.Map16:
		n, err := d.readUint16()
		if err != nil {
			return err
		}

		return d.skipContainer(int(n) * 2)
	case wire.Map32:
		n, err := d.readUint32()
		if err != nil {
			return err
		}

		return d.skipContainer(int(n) * 2)
	default:
		return errs.New(errs.ErrUnknownPrefix, "unknown prefix byte").
			WithOffset(d.offset - 1).WithDetail("prefix", prefix)
	}
}

func (d *Decoder) skipBytes(n int) error {
	_, err := d.readBytes(n)

	return err
}

func (d *Decoder) skipContainer(count int) error {
	if err := d.enterContainer(); err != nil {
		return err
	}
	defer d.exitContainer()

	for i := 0; i < count; i++ {
		if err := d.SkipValue(); err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) skipExt(prefix byte) error {
	if fixLen := wire.FixExtPayloadLen(prefix); fixLen > 0 {
		return d.skipBytes(1 + fixLen) // ext-type byte + fixed payload
	}

	var n int
	switch prefix {
	case wire.Ext8:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		n = int(b)
	case wire.Ext16:
		u, err := d.readUint16()
		if err != nil {
			return err
		}
		n = int(u)
	default: // wire.Ext32
		u, err := d.readUint32()
		if err != nil {
			return err
		}
		n = int(u)
	}

	return d.skipBytes(1 + n) // ext-type byte + payload
}
