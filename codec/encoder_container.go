package codec

import (
	"math"
	"sort"

	"github.com/jonataslaw/get-packer/endian"
	"github.com/jonataslaw/get-packer/internal/buffer"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// writeContainerHeader writes the fixmap/fixarray/map16/map32/array16/array32
// prefix (and length field, for the 16/32-bit families) for a container of
// n elements.
func (e *Encoder) writeContainerHeader(sc wire.SizeClass, n int, isMap bool) {
	switch sc {
	case wire.SizeFix:
		if isMap {
			e.buf.AppendByte(wire.FixMapMin | byte(n))
		} else {
			e.buf.AppendByte(wire.FixArrayMin | byte(n))
		}
	case wire.Size16:
		if isMap {
			e.buf.AppendByte(wire.Map16)
		} else {
			e.buf.AppendByte(wire.Array16)
		}
		e.appendUint16(uint16(n))
	default:
		if isMap {
			e.buf.AppendByte(wire.Map32)
		} else {
			e.buf.AppendByte(wire.Array32)
		}
		e.appendUint32(uint32(n))
	}
}

// encodeList writes an ordered, heterogeneous list. Homogeneous numeric or
// boolean lists of at least NumericListPromotionMinLength elements are
// transparently promoted to a more compact representation first (opaque
// binary, a typed array, or a bit-packed bool list); see tryPromoteList.
func (e *Encoder) encodeList(items []value.Value) error {
	if promoted, ok := e.tryPromoteList(items); ok {
		return e.encodeValue(promoted)
	}

	if err := e.enterContainer(); err != nil {
		return err
	}
	defer e.exitContainer()

	if uint64(len(items)) > uint64(e.cfg.MaxArrayLength) {
		return e.limitErr("maxArrayLength", e.cfg.MaxArrayLength, len(items))
	}

	e.writeContainerHeader(wire.ArraySizeClass(len(items)), len(items), false)
	for _, it := range items {
		if err := e.encodeValue(it); err != nil {
			return err
		}
	}

	return nil
}

// encodeMap writes an insertion-ordered (or, under DeterministicMaps, key-
// sorted) associative container as key/value pairs interleaved within a
// map-family container.
func (e *Encoder) encodeMap(m *value.Map) error {
	if err := e.enterContainer(); err != nil {
		return err
	}
	defer e.exitContainer()

	entries := m.Entries()
	if uint64(len(entries)) > uint64(e.cfg.MaxMapLength) {
		return e.limitErr("maxMapLength", e.cfg.MaxMapLength, len(entries))
	}

	order := entries
	if e.cfg.DeterministicMaps && m.AllKeysText() {
		order = sortedByTextKey(entries)
	}

	e.writeContainerHeader(wire.MapSizeClass(len(order)), len(order), true)
	for _, ent := range order {
		if err := e.encodeValue(ent.Key); err != nil {
			return err
		}
		if err := e.encodeValue(ent.Val); err != nil {
			return err
		}
	}

	return nil
}

func sortedByTextKey(entries []value.MapEntry) []value.MapEntry {
	out := make([]value.MapEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		ki, _ := out[i].Key.AsText()
		kj, _ := out[j].Key.AsText()

		return ki < kj
	})

	return out
}

// encodeSet writes an unordered collection as an ext payload wrapping a
// u32 element count followed by each element's encoding. The payload
// length is not known until the elements are encoded, so they are first
// encoded into a scratch buffer (drawn from the package buffer pool) and
// the ext header's length is "patched in" from the scratch buffer's final
// size before the payload is copied into the real output.
func (e *Encoder) encodeSet(items []value.Value) error {
	if err := e.enterContainer(); err != nil {
		return err
	}
	defer e.exitContainer()

	if uint64(len(items)) > uint64(e.cfg.MaxArrayLength) {
		return e.limitErr("maxArrayLength", e.cfg.MaxArrayLength, len(items))
	}

	scratch := buffer.Default.Get()
	defer buffer.Default.Put(scratch)

	sub := &Encoder{cfg: e.cfg, buf: scratch, depth: e.depth}
	appendUint32(scratch, uint32(len(items)))
	for _, it := range items {
		if err := sub.encodeValue(it); err != nil {
			return err
		}
	}

	payload := scratch.Bytes()
	if err := e.writeExtHeader(wire.ExtSet, len(payload)); err != nil {
		return err
	}
	e.buf.Append(payload)

	return nil
}

// tryPromoteList inspects items and, if every element shares one of the
// promotable shapes (all Bool, all Int64, all Float64) and the list meets
// NumericListPromotionMinLength, returns the equivalent compact value.
// Integer lists whose values all fit in 0..255 take the most compact path
// of all: plain opaque Bytes, which carries no ext-family or
// element-count overhead (there is no unsigned-8-bit typed-array kind on
// the wire precisely because Bytes already covers it more cheaply).
func (e *Encoder) tryPromoteList(items []value.Value) (value.Value, bool) {
	if len(items) < e.cfg.NumericListPromotionMinLength {
		return value.Value{}, false
	}

	switch classifyList(items) {
	case listBool:
		bools := make([]bool, len(items))
		for i, it := range items {
			bools[i], _ = it.AsBool()
		}

		return value.BoolBitListValue(value.FromBools(bools)), true
	case listInt:
		if !e.intListFitsInteropMode(items) {
			return value.Value{}, false
		}

		return e.promoteIntList(items), true
	case listFloat:
		return e.promoteFloatList(items), true
	default:
		return value.Value{}, false
	}
}

type listShape int

const (
	listMixed listShape = iota
	listBool
	listInt
	listFloat
)

func classifyList(items []value.Value) listShape {
	if len(items) == 0 {
		return listMixed
	}

	shape := listMixed
	switch items[0].Kind {
	case value.KindBool:
		shape = listBool
	case value.KindInt64:
		shape = listInt
	case value.KindFloat64:
		shape = listFloat
	default:
		return listMixed
	}

	for _, it := range items {
		switch shape {
		case listBool:
			if it.Kind != value.KindBool {
				return listMixed
			}
		case listInt:
			if it.Kind != value.KindInt64 {
				return listMixed
			}
		case listFloat:
			if it.Kind != value.KindFloat64 {
				return listMixed
			}
		}
	}

	return shape
}

// intListFitsInteropMode reports whether the list's values may be promoted
// to a typed array under the encoder's IntInteropMode. RequireBigIntForWide
// forbids wide ints from reaching the wire as plain integers regardless of
// container shape, so a list holding any out-of-safe-window value must fall
// through to per-element encoding, where encodeHostInt rejects it explicitly.
func (e *Encoder) intListFitsInteropMode(items []value.Value) bool {
	if e.cfg.IntInteropMode != numint.RequireBigIntForWide {
		return true
	}

	for _, it := range items {
		v, _ := it.AsInt64()
		if !numint.InSafeWindow(v) {
			return false
		}
	}

	return true
}

func (e *Encoder) promoteIntList(items []value.Value) value.Value {
	minV, _ := items[0].AsInt64()
	maxV := minV
	for _, it := range items[1:] {
		v, _ := it.AsInt64()
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	if minV >= 0 && maxV <= 255 {
		bytes := make([]byte, len(items))
		for i, it := range items {
			v, _ := it.AsInt64()
			bytes[i] = byte(v)
		}

		return value.Bytes(bytes)
	}

	kind := pickIntTypedArrayKind(minV, maxV)
	engine := nativeEngine()
	data := make([]byte, 0, len(items)*kind.ElementSize())

	for _, it := range items {
		v, _ := it.AsInt64()
		switch kind {
		case wire.KindInt8:
			data = append(data, byte(int8(v)))
		case wire.KindUint16:
			data = engine.AppendUint16(data, uint16(v))
		case wire.KindInt16:
			data = engine.AppendUint16(data, uint16(int16(v)))
		case wire.KindUint32:
			data = engine.AppendUint32(data, uint32(v))
		case wire.KindInt32:
			data = engine.AppendUint32(data, uint32(int32(v)))
		case wire.KindUint64:
			data = engine.AppendUint64(data, uint64(v))
		default: // wire.KindInt64
			data = engine.AppendUint64(data, uint64(v))
		}
	}

	return value.TypedArrayValue(value.TypedArray{ElemKind: kind, Data: data, Owned: true})
}

func pickIntTypedArrayKind(minV, maxV int64) wire.TypedArrayKind {
	switch {
	case minV >= -128 && maxV <= 127:
		return wire.KindInt8
	case minV >= 0 && maxV <= 65535:
		return wire.KindUint16
	case minV >= -32768 && maxV <= 32767:
		return wire.KindInt16
	case minV >= 0 && maxV <= 4294967295:
		return wire.KindUint32
	case minV >= -2147483648 && maxV <= 2147483647:
		return wire.KindInt32
	case minV >= 0:
		return wire.KindUint64
	default:
		return wire.KindInt64
	}
}

func (e *Encoder) promoteFloatList(items []value.Value) value.Value {
	engine := nativeEngine()

	if e.cfg.PreferFloat32 && allExactFloat32(items) {
		data := make([]byte, 0, len(items)*4)
		for _, it := range items {
			f, _ := it.AsFloat64()
			data = engine.AppendUint32(data, math.Float32bits(float32(f)))
		}

		return value.TypedArrayValue(value.TypedArray{ElemKind: wire.KindFloat32, Data: data, Owned: true})
	}

	data := make([]byte, 0, len(items)*8)
	for _, it := range items {
		f, _ := it.AsFloat64()
		data = engine.AppendUint64(data, math.Float64bits(f))
	}

	return value.TypedArrayValue(value.TypedArray{ElemKind: wire.KindFloat64, Data: data, Owned: true})
}

func allExactFloat32(items []value.Value) bool {
	for _, it := range items {
		f, _ := it.AsFloat64()
		if float64(float32(f)) != f {
			return false
		}
	}

	return true
}

// nativeEngine returns the EndianEngine matching the host's native byte
// order, used to serialize promoted-list elements into typed-array bytes.
// Values already carried as a TypedArray (via value.TypedArrayValue from a
// caller, or decoded from the wire) are appended verbatim without going
// through an engine at all, since their Data is already raw host-endian
// bytes; the engine is only needed here, where scalar Values are being
// materialized into bytes for the first time.
func nativeEngine() endian.EndianEngine {
	if endian.IsNativeLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
