package getpacker_test

import (
	"testing"

	getpacker "github.com/jonataslaw/get-packer"
	"github.com/jonataslaw/get-packer/config"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
	"github.com/stretchr/testify/require"
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	v := value.List([]value.Value{
		value.Int64(42),
		value.Text("hello"),
		value.Bool(true),
		value.Null(),
	})

	data, err := getpacker.Pack(v, cfg)
	require.NoError(t, err)

	got, err := getpacker.Unpack(data, cfg, nil)
	require.NoError(t, err)

	decoded, ok := got.(value.Value)
	require.True(t, ok)
	items, ok := decoded.AsList()
	require.True(t, ok)
	require.Len(t, items, 4)

	n, ok := items[0].AsInt64()
	require.True(t, ok)
	require.Equal(t, int64(42), n)

	s, ok := items[1].AsText()
	require.True(t, ok)
	require.Equal(t, "hello", s)
}

func TestPackUnpack_Checksum(t *testing.T) {
	cfg, err := config.New(config.WithChecksum(true))
	require.NoError(t, err)

	v := value.Text("checked")
	data, err := getpacker.Pack(v, cfg)
	require.NoError(t, err)

	_, err = getpacker.Unpack(data, cfg, nil)
	require.NoError(t, err)

	corrupted := append([]byte(nil), data...)
	corrupted[0] ^= 0xFF
	_, err = getpacker.Unpack(corrupted, cfg, nil)
	require.Error(t, err)
}

func TestPackUnpack_Compression(t *testing.T) {
	cfg, err := config.New(config.WithBufferCompression(wire.CompressionS2))
	require.NoError(t, err)

	v := value.Bytes(make([]byte, 4096))
	data, err := getpacker.Pack(v, cfg)
	require.NoError(t, err)
	require.Equal(t, wire.FrameMagic, data[0])

	got, err := getpacker.Unpack(data, cfg, nil)
	require.NoError(t, err)
	decoded, ok := got.(value.Value)
	require.True(t, ok)
	b, ok := decoded.AsBytes()
	require.True(t, ok)
	require.Len(t, b, 4096)
}

func TestUnpack_WithMapFactory(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	m := value.NewTextMap(map[string]value.Value{
		"name": value.Text("widget"),
		"qty":  value.Int64(7),
	})
	data, err := getpacker.Pack(value.MapValue(m), cfg)
	require.NoError(t, err)

	type Item struct {
		Name string
		Qty  int64
	}
	factory := func(m map[string]value.Value) (any, error) {
		name, _ := m["name"].AsText()
		qty, _ := m["qty"].AsInt64()

		return Item{Name: name, Qty: qty}, nil
	}

	got, err := getpacker.Unpack(data, cfg, factory)
	require.NoError(t, err)
	item, ok := got.(Item)
	require.True(t, ok)
	require.Equal(t, "widget", item.Name)
	require.Equal(t, int64(7), item.Qty)
}
