package value

import (
	"math/big"
	"net/url"
)

// DateTime is an instant expressed as epoch microseconds, with a flag
// recording whether it represents UTC or local wall-clock time (the wire
// format itself only ever carries microseconds plus the flag; any
// timezone interpretation beyond UTC/local is the caller's responsibility).
type DateTime struct {
	Micros int64
	UTC    bool
}

// Duration is a signed span of microseconds.
type Duration int64

// Value is the recursive tagged union at the heart of the codec: every
// wire-representable shape is one field of this struct, selected by Kind.
// Unused fields for a given Kind are zero. One arm per wire kind means the
// encoder's dispatch is a single switch over Kind, and the decoder produces
// this struct directly.
type Value struct {
	Kind Kind

	boolVal    bool
	intVal     int64
	bigIntVal  *big.Int
	floatVal   float64
	bytesVal   []byte
	textVal    string
	listVal    []Value
	mapVal     *Map
	setVal     []Value
	dateTime   DateTime
	duration   Duration
	uriVal     *url.URL
	typedArray TypedArray
	boolBits   *BoolBitList
	extVal     ExtValue
}

// Null returns the Null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{Kind: KindBool, boolVal: b} }

// Int64 returns an Int64 value.
func Int64(i int64) Value { return Value{Kind: KindInt64, intVal: i} }

// BigInt returns a BigInteger value.
func BigInt(bi *big.Int) Value { return Value{Kind: KindBigInt, bigIntVal: bi} }

// Float64 returns a Float64 value.
func Float64(f float64) Value { return Value{Kind: KindFloat64, floatVal: f} }

// Bytes returns a Bytes (opaque binary blob) value.
func Bytes(b []byte) Value { return Value{Kind: KindBytes, bytesVal: b} }

// Text returns a Text (UTF-8 string) value.
func Text(s string) Value { return Value{Kind: KindText, textVal: s} }

// List returns an ordered, heterogeneous List value.
func List(items []Value) Value { return Value{Kind: KindList, listVal: items} }

// MapValue returns a Map value.
func MapValue(m *Map) Value { return Value{Kind: KindMap, mapVal: m} }

// Set returns an unordered Set value. Order of items is preserved only for
// encoding purposes; Set carries no ordering guarantee on decode.
func Set(items []Value) Value { return Value{Kind: KindSet, setVal: items} }

// DateTimeValue returns a DateTime value.
func DateTimeValue(dt DateTime) Value { return Value{Kind: KindDateTime, dateTime: dt} }

// DurationValue returns a Duration value.
func DurationValue(d Duration) Value { return Value{Kind: KindDuration, duration: d} }

// URI returns a Uri value.
func URI(u *url.URL) Value { return Value{Kind: KindURI, uriVal: u} }

// TypedArrayValue returns a TypedArray value.
func TypedArrayValue(t TypedArray) Value { return Value{Kind: KindTypedArray, typedArray: t} }

// BoolBitListValue returns a BoolBitList value.
func BoolBitListValue(b *BoolBitList) Value { return Value{Kind: KindBoolBitList, boolBits: b} }

// ExtUnknown returns an opaque ExtUnknown value for an unregistered ext type.
func ExtUnknown(e ExtValue) Value { return Value{Kind: KindExtUnknown, extVal: e} }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsBool returns v's bool payload and ok=true if v.Kind == KindBool.
func (v Value) AsBool() (bool, bool) { return v.boolVal, v.Kind == KindBool }

// AsInt64 returns v's int64 payload and ok=true if v.Kind == KindInt64.
func (v Value) AsInt64() (int64, bool) { return v.intVal, v.Kind == KindInt64 }

// AsBigInt returns v's BigInteger payload and ok=true if v.Kind == KindBigInt.
func (v Value) AsBigInt() (*big.Int, bool) { return v.bigIntVal, v.Kind == KindBigInt }

// AsFloat64 returns v's float64 payload and ok=true if v.Kind == KindFloat64.
func (v Value) AsFloat64() (float64, bool) { return v.floatVal, v.Kind == KindFloat64 }

// AsBytes returns v's byte-blob payload and ok=true if v.Kind == KindBytes.
func (v Value) AsBytes() ([]byte, bool) { return v.bytesVal, v.Kind == KindBytes }

// AsText returns v's string payload and ok=true if v.Kind == KindText.
func (v Value) AsText() (string, bool) { return v.textVal, v.Kind == KindText }

// AsList returns v's list payload and ok=true if v.Kind == KindList.
func (v Value) AsList() ([]Value, bool) { return v.listVal, v.Kind == KindList }

// AsMap returns v's map payload and ok=true if v.Kind == KindMap.
func (v Value) AsMap() (*Map, bool) { return v.mapVal, v.Kind == KindMap }

// AsSet returns v's set payload and ok=true if v.Kind == KindSet.
func (v Value) AsSet() ([]Value, bool) { return v.setVal, v.Kind == KindSet }

// AsDateTime returns v's DateTime payload and ok=true if v.Kind == KindDateTime.
func (v Value) AsDateTime() (DateTime, bool) { return v.dateTime, v.Kind == KindDateTime }

// AsDuration returns v's Duration payload and ok=true if v.Kind == KindDuration.
func (v Value) AsDuration() (Duration, bool) { return v.duration, v.Kind == KindDuration }

// AsURI returns v's Uri payload and ok=true if v.Kind == KindURI.
func (v Value) AsURI() (*url.URL, bool) { return v.uriVal, v.Kind == KindURI }

// AsTypedArray returns v's TypedArray payload and ok=true if v.Kind == KindTypedArray.
func (v Value) AsTypedArray() (TypedArray, bool) { return v.typedArray, v.Kind == KindTypedArray }

// AsBoolBitList returns v's BoolBitList payload and ok=true if v.Kind == KindBoolBitList.
func (v Value) AsBoolBitList() (*BoolBitList, bool) { return v.boolBits, v.Kind == KindBoolBitList }

// AsExtUnknown returns v's opaque ext payload and ok=true if v.Kind == KindExtUnknown.
func (v Value) AsExtUnknown() (ExtValue, bool) { return v.extVal, v.Kind == KindExtUnknown }

// FromMapper encodes a Mapper-implementing user model as a Map value.
func FromMapper(m Mapper) Value {
	return MapValue(NewTextMap(m.ToMap()))
}
