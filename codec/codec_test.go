package codec_test

import (
	"math"
	"math/big"
	"net/url"
	"testing"
	"unicode/utf8"

	"github.com/jonataslaw/get-packer/codec"
	"github.com/jonataslaw/get-packer/config"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
	"github.com/stretchr/testify/require"
)

func packUnpack(t *testing.T, cfg *config.Config, v value.Value) value.Value {
	t.Helper()

	enc := codec.NewEncoder(cfg)
	data, err := enc.Pack(v)
	require.NoError(t, err)

	dec := codec.NewDecoder(cfg)
	dec.Reset(data, cfg)
	got, err := dec.Unpack()
	require.NoError(t, err)
	require.True(t, dec.IsDone())

	return got
}

func TestRoundTrip_Scalars(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	tests := []value.Value{
		value.Null(),
		value.Bool(true),
		value.Bool(false),
		value.Int64(0),
		value.Int64(-1),
		value.Int64(127),
		value.Int64(-128),
		value.Int64(math.MaxInt64),
		value.Int64(math.MinInt64),
		value.Float64(3.14159),
		value.Float64(-0.0),
		value.Bytes([]byte{1, 2, 3, 4}),
		value.Text(""),
		value.Text("hello, world"),
	}

	for _, v := range tests {
		got := packUnpack(t, cfg, v)
		require.Equal(t, v.Kind, got.Kind)

		switch v.Kind {
		case value.KindInt64:
			want, _ := v.AsInt64()
			have, _ := got.AsInt64()
			require.Equal(t, want, have)
		case value.KindFloat64:
			want, _ := v.AsFloat64()
			have, _ := got.AsFloat64()
			require.Equal(t, math.Float64bits(want), math.Float64bits(have))
		case value.KindText:
			want, _ := v.AsText()
			have, _ := got.AsText()
			require.Equal(t, want, have)
		case value.KindBytes:
			want, _ := v.AsBytes()
			have, _ := got.AsBytes()
			require.Equal(t, want, have)
		case value.KindBool:
			want, _ := v.AsBool()
			have, _ := got.AsBool()
			require.Equal(t, want, have)
		}
	}
}

func TestRoundTrip_LargeString(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	s := make([]byte, 70000)
	for i := range s {
		s[i] = byte('a' + i%26)
	}

	got := packUnpack(t, cfg, value.Text(string(s)))
	have, ok := got.AsText()
	require.True(t, ok)
	require.Equal(t, string(s), have)
}

func TestRoundTrip_ListAndMap(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	m := value.NewMap()
	m.Append(value.Text("a"), value.Int64(1))
	m.Append(value.Text("b"), value.Int64(2))

	v := value.List([]value.Value{
		value.Int64(1),
		value.Text("x"),
		value.MapValue(m),
		value.List([]value.Value{value.Bool(true), value.Null()}),
	})

	got := packUnpack(t, cfg, v)
	items, ok := got.AsList()
	require.True(t, ok)
	require.Len(t, items, 4)

	gm, ok := items[2].AsMap()
	require.True(t, ok)
	require.Equal(t, 2, gm.Len())
	av, ok := gm.Get("a")
	require.True(t, ok)
	n, _ := av.AsInt64()
	require.Equal(t, int64(1), n)
}

func TestRoundTrip_Set(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	v := value.Set([]value.Value{value.Int64(1), value.Int64(2), value.Text("z")})
	got := packUnpack(t, cfg, v)
	items, ok := got.AsSet()
	require.True(t, ok)
	require.Len(t, items, 3)
}

func TestRoundTrip_DateTimeDurationURI(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	dt := value.DateTime{Micros: 1700000000000000, UTC: true}
	got := packUnpack(t, cfg, value.DateTimeValue(dt))
	gdt, ok := got.AsDateTime()
	require.True(t, ok)
	require.Equal(t, dt, gdt)

	d := value.Duration(-987654)
	got = packUnpack(t, cfg, value.DurationValue(d))
	gd, ok := got.AsDuration()
	require.True(t, ok)
	require.Equal(t, d, gd)

	u, err := url.Parse("https://example.com/path?q=1")
	require.NoError(t, err)
	got = packUnpack(t, cfg, value.URI(u))
	gu, ok := got.AsURI()
	require.True(t, ok)
	require.Equal(t, u.String(), gu.String())
}

func TestRoundTrip_BigInt(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	bi := new(big.Int)
	bi.SetString("123456789012345678901234567890", 10)

	got := packUnpack(t, cfg, value.BigInt(bi))
	gbi, ok := got.AsBigInt()
	require.True(t, ok)
	require.Equal(t, 0, bi.Cmp(gbi))
}

func TestRoundTrip_NumericListPromotion(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	items := make([]value.Value, 10)
	for i := range items {
		items[i] = value.Int64(int64(i) * 1000)
	}

	got := packUnpack(t, cfg, value.List(items))
	require.Equal(t, value.KindTypedArray, got.Kind)

	ta, ok := got.AsTypedArray()
	require.True(t, ok)
	require.Equal(t, len(items), ta.Len())
}

func TestRoundTrip_SmallByteRangeIntListBecomesBytes(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	items := make([]value.Value, 8)
	for i := range items {
		items[i] = value.Int64(int64(i * 10))
	}

	got := packUnpack(t, cfg, value.List(items))
	require.Equal(t, value.KindBytes, got.Kind)

	b, ok := got.AsBytes()
	require.True(t, ok)
	require.Len(t, b, 8)
}

func TestRoundTrip_BoolListPromotion(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	items := []value.Value{
		value.Bool(true), value.Bool(false), value.Bool(true),
		value.Bool(true), value.Bool(false),
	}

	got := packUnpack(t, cfg, value.List(items))
	require.Equal(t, value.KindBoolBitList, got.Kind)

	bb, ok := got.AsBoolBitList()
	require.True(t, ok)
	require.Equal(t, []bool{true, false, true, true, false}, bb.ToBools())
}

func TestDeterministicMaps(t *testing.T) {
	cfg, err := config.New(config.WithDeterministicMaps(true))
	require.NoError(t, err)

	m := value.NewMap()
	m.Append(value.Text("zebra"), value.Int64(1))
	m.Append(value.Text("apple"), value.Int64(2))
	m.Append(value.Text("mango"), value.Int64(3))

	enc1 := codec.NewEncoder(cfg)
	data1, err := enc1.Pack(value.MapValue(m))
	require.NoError(t, err)

	enc2 := codec.NewEncoder(cfg)
	data2, err := enc2.Pack(value.MapValue(m))
	require.NoError(t, err)

	require.Equal(t, data1, data2)
}

func TestSkipValue_MatchesDecodeOffset(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	v := value.List([]value.Value{
		value.Int64(5),
		value.Text("skip me"),
		value.Set([]value.Value{value.Int64(1), value.Int64(2)}),
	})

	enc := codec.NewEncoder(cfg)
	data, err := enc.Pack(v)
	require.NoError(t, err)

	decDecode := codec.NewDecoder(cfg)
	decDecode.Reset(data, cfg)
	_, err = decDecode.Unpack()
	require.NoError(t, err)

	decSkip := codec.NewDecoder(cfg)
	decSkip.Reset(data, cfg)
	require.NoError(t, decSkip.SkipValue())

	require.Equal(t, decDecode.Offset(), decSkip.Offset())
}

func TestMaxDepthExceeded(t *testing.T) {
	cfg, err := config.New(config.WithMaxDepth(2))
	require.NoError(t, err)

	v := value.List([]value.Value{
		value.List([]value.Value{
			value.List([]value.Value{value.Int64(1)}),
		}),
	})

	enc := codec.NewEncoder(cfg)
	_, err = enc.Pack(v)
	require.Error(t, err)
}

func TestMaxArrayLengthExceeded(t *testing.T) {
	cfg, err := config.New(config.WithMaxArrayLength(2))
	require.NoError(t, err)

	v := value.List([]value.Value{value.Int64(1), value.Int64(2), value.Int64(3)})

	enc := codec.NewEncoder(cfg)
	_, err = enc.Pack(v)
	require.Error(t, err)
}

func TestInvalidUTF8Rejected(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	enc := codec.NewEncoder(cfg)
	_, err = enc.Pack(value.Text(string([]byte{0xff, 0xfe})))
	require.Error(t, err)
}

func TestIntInteropMode_RequireBigIntForWide(t *testing.T) {
	cfg, err := config.New(config.WithIntInteropMode(numint.RequireBigIntForWide))
	require.NoError(t, err)

	enc := codec.NewEncoder(cfg)
	_, err = enc.Pack(value.Int64(numint.MaxSafeInt + 1))
	require.Error(t, err)

	bi := big.NewInt(numint.MaxSafeInt + 1)
	data, err := enc.Pack(value.BigInt(bi))
	require.NoError(t, err)

	dec := codec.NewDecoder(cfg)
	dec.Reset(data, cfg)
	got, err := dec.Unpack()
	require.NoError(t, err)
	require.Equal(t, value.KindBigInt, got.Kind)
}

func TestIntInteropMode_RequireBigIntForWide_RejectsListPromotion(t *testing.T) {
	cfg, err := config.New(config.WithIntInteropMode(numint.RequireBigIntForWide))
	require.NoError(t, err)

	enc := codec.NewEncoder(cfg)
	wide := value.Int64(numint.MaxSafeInt + 1)
	list := value.List([]value.Value{wide, wide, wide, wide})

	_, err = enc.Pack(list)
	require.Error(t, err)
}

func TestAllowMalformedUTF8_SubstitutesReplacementCharacter(t *testing.T) {
	cfg, err := config.New(config.WithAllowMalformedUTF8(true))
	require.NoError(t, err)

	raw := string([]byte{0xFF, 0xFE, 'a'})
	enc := codec.NewEncoder(cfg)
	data, err := enc.Pack(value.Text(raw))
	require.NoError(t, err)

	dec := codec.NewDecoder(cfg)
	dec.Reset(data, cfg)
	got, err := dec.Unpack()
	require.NoError(t, err)

	s, ok := got.AsText()
	require.True(t, ok)
	require.True(t, utf8.ValidString(s))
	require.Contains(t, s, "�")
	require.Contains(t, s, "a")
	require.NotEqual(t, raw, s)
}

func TestIntInteropMode_Off_WideIntStaysHostInt(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	bi := big.NewInt(42)
	enc := codec.NewEncoder(cfg)
	data, err := enc.Pack(value.BigInt(bi))
	require.NoError(t, err)

	dec := codec.NewDecoder(cfg)
	dec.Reset(data, cfg)
	got, err := dec.Unpack()
	require.NoError(t, err)
	require.Equal(t, value.KindInt64, got.Kind)
	n, _ := got.AsInt64()
	require.Equal(t, int64(42), n)
}

func TestTypedArrayZeroCopy(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	items := make([]value.Value, 16)
	for i := range items {
		items[i] = value.Int64(int64(i) * 100000)
	}

	enc := codec.NewEncoder(cfg)
	data, err := enc.Pack(value.List(items))
	require.NoError(t, err)

	dec := codec.NewDecoder(cfg)
	dec.Reset(data, cfg)
	got, err := dec.Unpack()
	require.NoError(t, err)

	ta, ok := got.AsTypedArray()
	require.True(t, ok)
	require.False(t, ta.Owned)
	require.Equal(t, len(items), ta.Len())

	for i, want := range items {
		wantN, _ := want.AsInt64()
		var haveN int64
		switch ta.ElemKind {
		case wire.KindInt32:
			haveN = int64(ta.Int32()[i])
		case wire.KindInt64:
			haveN = ta.Int64()[i]
		case wire.KindUint32:
			haveN = int64(ta.Uint32()[i])
		default:
			t.Fatalf("unexpected typed array kind %v for this value range", ta.ElemKind)
		}
		require.Equal(t, wantN, haveN)
	}
}
