package value

import (
	"unsafe"

	"github.com/jonataslaw/get-packer/wire"
)

// TypedArray is a homogeneous numeric array of one of the nine element
// kinds the wire format supports. Data holds the raw host-endian element
// bytes; when the decoder produced this value via a zero-copy view, Data
// is a sub-slice of the decoder's input buffer and Owned is false. Callers
// that need the array to outlive the input buffer must copy it (see
// Clone) or rely on a trimmed pack()/decode cycle.
type TypedArray struct {
	ElemKind wire.TypedArrayKind
	Data     []byte // raw host-endian element bytes, length == Len()*ElemKind.ElementSize()
	Owned    bool
}

// Len returns the number of elements in the array.
func (t TypedArray) Len() int {
	size := t.ElemKind.ElementSize()
	if size == 0 {
		return 0
	}

	return len(t.Data) / size
}

// Clone returns a TypedArray with its own copy of Data, safe to retain
// beyond the lifetime of whatever buffer backed the original.
func (t TypedArray) Clone() TypedArray {
	cp := make([]byte, len(t.Data))
	copy(cp, t.Data)

	return TypedArray{ElemKind: t.ElemKind, Data: cp, Owned: true}
}

// Int8 reinterprets Data as []int8. Valid only when ElemKind == KindInt8.
func (t TypedArray) Int8() []int8 {
	if t.ElemKind != wire.KindInt8 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*int8)(unsafe.Pointer(&t.Data[0])), len(t.Data))
}

// Uint16 reinterprets Data as []uint16. Valid only when ElemKind == KindUint16.
func (t TypedArray) Uint16() []uint16 {
	if t.ElemKind != wire.KindUint16 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*uint16)(unsafe.Pointer(&t.Data[0])), len(t.Data)/2)
}

// Int16 reinterprets Data as []int16. Valid only when ElemKind == KindInt16.
func (t TypedArray) Int16() []int16 {
	if t.ElemKind != wire.KindInt16 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*int16)(unsafe.Pointer(&t.Data[0])), len(t.Data)/2)
}

// Uint32 reinterprets Data as []uint32. Valid only when ElemKind == KindUint32.
func (t TypedArray) Uint32() []uint32 {
	if t.ElemKind != wire.KindUint32 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*uint32)(unsafe.Pointer(&t.Data[0])), len(t.Data)/4)
}

// Int32 reinterprets Data as []int32. Valid only when ElemKind == KindInt32.
func (t TypedArray) Int32() []int32 {
	if t.ElemKind != wire.KindInt32 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*int32)(unsafe.Pointer(&t.Data[0])), len(t.Data)/4)
}

// Uint64 reinterprets Data as []uint64. Valid only when ElemKind == KindUint64.
func (t TypedArray) Uint64() []uint64 {
	if t.ElemKind != wire.KindUint64 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*uint64)(unsafe.Pointer(&t.Data[0])), len(t.Data)/8)
}

// Int64 reinterprets Data as []int64. Valid only when ElemKind == KindInt64.
func (t TypedArray) Int64() []int64 {
	if t.ElemKind != wire.KindInt64 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*int64)(unsafe.Pointer(&t.Data[0])), len(t.Data)/8)
}

// Float32 reinterprets Data as []float32. Valid only when ElemKind == KindFloat32.
func (t TypedArray) Float32() []float32 {
	if t.ElemKind != wire.KindFloat32 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*float32)(unsafe.Pointer(&t.Data[0])), len(t.Data)/4)
}

// Float64 reinterprets Data as []float64. Valid only when ElemKind == KindFloat64.
func (t TypedArray) Float64() []float64 {
	if t.ElemKind != wire.KindFloat64 || len(t.Data) == 0 {
		return nil
	}

	return unsafe.Slice((*float64)(unsafe.Pointer(&t.Data[0])), len(t.Data)/8)
}
