package config_test

import (
	"testing"

	"github.com/jonataslaw/get-packer/config"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.DefaultInitialCapacity, cfg.InitialCapacity)
	assert.Equal(t, config.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, numint.Off, cfg.IntInteropMode)
	assert.False(t, cfg.Checksum)
	assert.Equal(t, wire.CompressionNone, cfg.BufferCompression)
}

func TestNewAppliesOptions(t *testing.T) {
	cfg, err := config.New(
		config.WithInitialCapacity(1024),
		config.WithPreferFloat32(true),
		config.WithDeterministicMaps(true),
		config.WithMaxDepth(4),
		config.WithChecksum(true),
		config.WithBufferCompression(wire.CompressionLZ4),
	)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.InitialCapacity)
	assert.True(t, cfg.PreferFloat32)
	assert.True(t, cfg.DeterministicMaps)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.True(t, cfg.Checksum)
	assert.Equal(t, wire.CompressionLZ4, cfg.BufferCompression)
}

func TestNewValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  config.Option
	}{
		{"negative initial capacity", config.WithInitialCapacity(-1)},
		{"zero max depth", config.WithMaxDepth(0)},
		{"negative promotion length", config.WithNumericListPromotionMinLength(-1)},
		{"invalid interop mode", config.WithIntInteropMode(numint.InteropMode(0xFF))},
		{"invalid compression", config.WithBufferCompression(wire.CompressionType(0xFF))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.New(tt.opt)
			assert.Error(t, err)
		})
	}
}

func TestIntInteropModeOptionAccepted(t *testing.T) {
	for _, mode := range []numint.InteropMode{numint.Off, numint.PromoteWideToBigInt, numint.RequireBigIntForWide} {
		cfg, err := config.New(config.WithIntInteropMode(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, cfg.IntInteropMode)
	}
}

func TestBufferCompressionOptionAccepted(t *testing.T) {
	for _, c := range []wire.CompressionType{wire.CompressionNone, wire.CompressionZstd, wire.CompressionS2, wire.CompressionLZ4} {
		cfg, err := config.New(config.WithBufferCompression(c))
		require.NoError(t, err)
		assert.Equal(t, c, cfg.BufferCompression)
	}
}
