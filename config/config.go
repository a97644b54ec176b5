// Package config defines the immutable Config object threaded through
// Encoder and Decoder: size caps, depth limits, integer interop mode, and
// the adaptive-encoding toggles (preferFloat32, deterministicMaps, the
// numeric-list promotion threshold).
package config

import (
	"math"

	"github.com/jonataslaw/get-packer/internal/options"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/wire"
)

// Default values for every recognized option.
const (
	DefaultInitialCapacity            = 256
	DefaultPreferFloat32              = false
	DefaultAllowMalformedUTF8         = false
	DefaultDeterministicMaps          = false
	DefaultMaxDepth                   = 32
	DefaultIntInteropMode             = numint.Off
	DefaultMaxBigIntMagnitudeBytes    = math.MaxUint32
	DefaultNumericListPromotionMinLen = 4
	DefaultMaxStringUTF8Bytes         = math.MaxUint32
	DefaultMaxURIUTF8Bytes            = math.MaxUint32
	DefaultMaxBinaryBytes             = math.MaxUint32
	DefaultMaxArrayLength             = math.MaxUint32
	DefaultMaxMapLength               = math.MaxUint32
	DefaultMaxExtPayloadBytes         = math.MaxUint32
	DefaultChecksum                   = false
	DefaultBufferCompression          = wire.CompressionNone
)

// Config holds every recognized encode/decode option. It is built once via
// New and is immutable thereafter; Encoder/Decoder hold a *Config and never
// mutate it.
type Config struct {
	InitialCapacity    int
	PreferFloat32      bool
	AllowMalformedUTF8 bool
	DeterministicMaps  bool
	MaxDepth           int

	IntInteropMode          numint.InteropMode
	MaxBigIntMagnitudeBytes uint32

	NumericListPromotionMinLength int

	MaxStringUTF8Bytes uint32
	MaxURIUTF8Bytes    uint32
	MaxBinaryBytes     uint32
	MaxArrayLength     uint32
	MaxMapLength       uint32
	MaxExtPayloadBytes uint32

	// Checksum, when true, makes the Pack/Unpack facade append/verify an
	// 8-byte xxHash64 trailer over the encoded value bytes.
	Checksum bool

	// BufferCompression, when not CompressionNone, makes the Pack/Unpack
	// facade wrap the encoded value bytes in a compressed frame.
	BufferCompression wire.CompressionType
}

// Option configures a Config. Obtain instances via the WithXxx functions
// in this package.
type Option = options.Option[*Config]

// Default returns a Config populated with every default value.
func Default() *Config {
	return &Config{
		InitialCapacity:               DefaultInitialCapacity,
		PreferFloat32:                 DefaultPreferFloat32,
		AllowMalformedUTF8:            DefaultAllowMalformedUTF8,
		DeterministicMaps:             DefaultDeterministicMaps,
		MaxDepth:                      DefaultMaxDepth,
		IntInteropMode:                DefaultIntInteropMode,
		MaxBigIntMagnitudeBytes:       DefaultMaxBigIntMagnitudeBytes,
		NumericListPromotionMinLength: DefaultNumericListPromotionMinLen,
		MaxStringUTF8Bytes:            DefaultMaxStringUTF8Bytes,
		MaxURIUTF8Bytes:               DefaultMaxURIUTF8Bytes,
		MaxBinaryBytes:                DefaultMaxBinaryBytes,
		MaxArrayLength:                DefaultMaxArrayLength,
		MaxMapLength:                  DefaultMaxMapLength,
		MaxExtPayloadBytes:            DefaultMaxExtPayloadBytes,
		Checksum:                      DefaultChecksum,
		BufferCompression:             DefaultBufferCompression,
	}
}

// New builds a Config from the given options, applied in order over the
// defaults.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
