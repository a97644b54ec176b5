package codec

import (
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// decodeBinary reads a bin8/16/32 payload. The returned Bytes value
// aliases the decoder's input buffer; callers that need it to outlive a
// subsequent Reset must copy it.
func (d *Decoder) decodeBinary(prefix byte) (value.Value, error) {
	var n int
	switch prefix {
	case wire.Bin8:
		b, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}
		n = int(b)
	case wire.Bin16:
		u, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		n = int(u)
	default: // wire.Bin32
		u, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		n = int(u)
	}

	if uint64(n) > uint64(d.cfg.MaxBinaryBytes) {
		return value.Value{}, d.limitErr("maxBinaryBytes", d.cfg.MaxBinaryBytes, n)
	}

	b, err := d.readBytes(n)
	if err != nil {
		return value.Value{}, err
	}

	return value.Bytes(b), nil
}

// decodeList reads n consecutive values as a List.
func (d *Decoder) decodeList(n int) (value.Value, error) {
	if uint64(n) > uint64(d.cfg.MaxArrayLength) {
		return value.Value{}, d.limitErr("maxArrayLength", d.cfg.MaxArrayLength, n)
	}

	if err := d.enterContainer(); err != nil {
		return value.Value{}, err
	}
	defer d.exitContainer()

	items := make([]value.Value, n)
	for i := 0; i < n; i++ {
		v, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}

	return value.List(items), nil
}

// decodeMap reads n key/value pairs as a Map. Map.Append maintains an
// O(1) text-keyed lookup index incrementally as entries are appended, so
// a map whose keys are all Text gets the fast lookup path for free; a map
// with any non-Text key has no index, so Map.Get finds nothing in it and
// its pairs are read through Map.Entries.
func (d *Decoder) decodeMap(n int) (value.Value, error) {
	if uint64(n) > uint64(d.cfg.MaxMapLength) {
		return value.Value{}, d.limitErr("maxMapLength", d.cfg.MaxMapLength, n)
	}

	if err := d.enterContainer(); err != nil {
		return value.Value{}, err
	}
	defer d.exitContainer()

	m := value.NewMap()
	for i := 0; i < n; i++ {
		key, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}
		val, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}
		m.Append(key, val)
	}

	return value.MapValue(m), nil
}
