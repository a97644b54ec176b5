package value_test

import (
	"math/big"
	"net/url"
	"testing"

	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind value.Kind
		want string
	}{
		{value.KindNull, "Null"},
		{value.KindBool, "Bool"},
		{value.KindInt64, "Int64"},
		{value.KindBigInt, "BigInteger"},
		{value.KindFloat64, "Float64"},
		{value.KindBytes, "Bytes"},
		{value.KindText, "Text"},
		{value.KindList, "List"},
		{value.KindMap, "Map"},
		{value.KindSet, "Set"},
		{value.KindDateTime, "DateTime"},
		{value.KindDuration, "Duration"},
		{value.KindURI, "Uri"},
		{value.KindTypedArray, "TypedArray"},
		{value.KindBoolBitList, "BoolBitList"},
		{value.KindExtUnknown, "ExtUnknown"},
		{value.Kind(0xFF), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestScalarConstructorsAndAccessors(t *testing.T) {
	assert.True(t, value.Null().IsNull())

	b := value.Bool(true)
	got, ok := b.AsBool()
	assert.True(t, ok)
	assert.True(t, got)

	i := value.Int64(-7)
	n, ok := i.AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(-7), n)

	bi := value.BigInt(big.NewInt(42))
	gbi, ok := bi.AsBigInt()
	assert.True(t, ok)
	assert.Equal(t, int64(42), gbi.Int64())

	f := value.Float64(3.5)
	gf, ok := f.AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 3.5, gf)

	by := value.Bytes([]byte{1, 2, 3})
	gby, ok := by.AsBytes()
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, gby)

	s := value.Text("hi")
	gs, ok := s.AsText()
	assert.True(t, ok)
	assert.Equal(t, "hi", gs)
}

func TestAccessorsFailOnWrongKind(t *testing.T) {
	v := value.Int64(1)
	_, ok := v.AsText()
	assert.False(t, ok)
	_, ok = v.AsBool()
	assert.False(t, ok)
}

func TestListSetDateTimeDurationURI(t *testing.T) {
	l := value.List([]value.Value{value.Int64(1), value.Text("x")})
	items, ok := l.AsList()
	assert.True(t, ok)
	assert.Len(t, items, 2)

	st := value.Set([]value.Value{value.Int64(1)})
	sItems, ok := st.AsSet()
	assert.True(t, ok)
	assert.Len(t, sItems, 1)

	dt := value.DateTimeValue(value.DateTime{Micros: 100, UTC: true})
	gdt, ok := dt.AsDateTime()
	assert.True(t, ok)
	assert.Equal(t, int64(100), gdt.Micros)
	assert.True(t, gdt.UTC)

	d := value.DurationValue(value.Duration(-5))
	gd, ok := d.AsDuration()
	assert.True(t, ok)
	assert.Equal(t, value.Duration(-5), gd)

	u, err := url.Parse("https://example.com")
	require.NoError(t, err)
	uv := value.URI(u)
	gu, ok := uv.AsURI()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", gu.String())
}

func TestExtUnknown(t *testing.T) {
	ev := value.ExtValue{Type: 0x42, Data: []byte{9, 9}}
	v := value.ExtUnknown(ev)
	got, ok := v.AsExtUnknown()
	assert.True(t, ok)
	assert.Equal(t, ev, got)
}

type item struct {
	Name string
	Qty  int64
}

func (it item) ToMap() map[string]value.Value {
	return map[string]value.Value{
		"name": value.Text(it.Name),
		"qty":  value.Int64(it.Qty),
	}
}

func TestFromMapper(t *testing.T) {
	v := value.FromMapper(item{Name: "widget", Qty: 3})
	m, ok := v.AsMap()
	require.True(t, ok)

	name, ok := m.Get("name")
	require.True(t, ok)
	s, _ := name.AsText()
	assert.Equal(t, "widget", s)
}

func TestTypedArrayLenAndClone(t *testing.T) {
	ta := value.TypedArray{ElemKind: wire.KindInt32, Data: make([]byte, 12), Owned: false}
	assert.Equal(t, 3, ta.Len())

	clone := ta.Clone()
	assert.True(t, clone.Owned)
	assert.Equal(t, ta.Data, clone.Data)

	clone.Data[0] = 0xFF
	assert.NotEqual(t, ta.Data[0], clone.Data[0])
}

func TestTypedArrayAccessorsRejectWrongKind(t *testing.T) {
	ta := value.TypedArray{ElemKind: wire.KindInt32, Data: make([]byte, 8)}
	assert.Nil(t, ta.Int64())
	assert.NotNil(t, ta.Int32())
}

func TestBoolBitListRoundTrip(t *testing.T) {
	bools := []bool{true, false, true, true, false, false, true, true, false}
	bb := value.FromBools(bools)
	assert.Equal(t, len(bools), bb.Length())
	assert.Equal(t, bools, bb.ToBools())

	for i, want := range bools {
		assert.Equal(t, want, bb.Get(i))
	}
}

func TestBoolBitListSet(t *testing.T) {
	bb := value.FromBools([]bool{false, false, false})
	bb.Set(1, true)
	assert.True(t, bb.Get(1))
	assert.False(t, bb.Get(0))
}

func TestBoolBitListFromPacked(t *testing.T) {
	bb := value.FromBools([]bool{true, false, true})
	packed := bb.AsBytes()

	bb2 := value.FromPacked(packed, 3)
	assert.Equal(t, bb.ToBools(), bb2.ToBools())
}
