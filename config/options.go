package config

import (
	"fmt"

	"github.com/jonataslaw/get-packer/internal/options"
	"github.com/jonataslaw/get-packer/numint"
	"github.com/jonataslaw/get-packer/wire"
)

// WithInitialCapacity sets the encoder's initial output buffer size.
func WithInitialCapacity(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("initialCapacity must be >= 0, got %d", n)
		}
		c.InitialCapacity = n

		return nil
	})
}

// WithPreferFloat32 enables or disables encoding doubles as float32 when
// the 32-bit roundtrip is exact.
func WithPreferFloat32(enabled bool) Option {
	return options.NoError(func(c *Config) { c.PreferFloat32 = enabled })
}

// WithAllowMalformedUTF8 makes the decoder pass through invalid UTF-8 with
// replacement characters instead of failing.
func WithAllowMalformedUTF8(enabled bool) Option {
	return options.NoError(func(c *Config) { c.AllowMalformedUTF8 = enabled })
}

// WithDeterministicMaps makes the encoder emit Text-keyed maps in sorted
// key order so that two maps with the same entries encode identically.
func WithDeterministicMaps(enabled bool) Option {
	return options.NoError(func(c *Config) { c.DeterministicMaps = enabled })
}

// WithMaxDepth sets the hard cap on nesting depth, enforced symmetrically
// on encode and decode.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("maxDepth must be >= 1, got %d", depth)
		}
		c.MaxDepth = depth

		return nil
	})
}

// WithIntInteropMode selects the cross-runtime integer interop policy.
func WithIntInteropMode(mode numint.InteropMode) Option {
	return options.New(func(c *Config) error {
		switch mode {
		case numint.Off, numint.PromoteWideToBigInt, numint.RequireBigIntForWide:
			c.IntInteropMode = mode

			return nil
		default:
			return fmt.Errorf("invalid intInteropMode: %d", mode)
		}
	})
}

// WithMaxBigIntMagnitudeBytes caps the magnitude length of arbitrary
// precision integers.
func WithMaxBigIntMagnitudeBytes(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxBigIntMagnitudeBytes = n })
}

// WithNumericListPromotionMinLength sets the minimum list length below
// which numeric-list-to-typed-array promotion is skipped.
func WithNumericListPromotionMinLength(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("numericListPromotionMinLength must be >= 0, got %d", n)
		}
		c.NumericListPromotionMinLength = n

		return nil
	})
}

// WithMaxStringUTF8Bytes lowers the cap on encoded string UTF-8 byte
// length below the wire maximum (math.MaxUint32).
func WithMaxStringUTF8Bytes(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxStringUTF8Bytes = n })
}

// WithMaxURIUTF8Bytes lowers the cap on encoded URI UTF-8 byte length.
func WithMaxURIUTF8Bytes(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxURIUTF8Bytes = n })
}

// WithMaxBinaryBytes lowers the cap on opaque binary blob length.
func WithMaxBinaryBytes(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxBinaryBytes = n })
}

// WithMaxArrayLength lowers the cap on List/Set element counts.
func WithMaxArrayLength(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxArrayLength = n })
}

// WithMaxMapLength lowers the cap on Map entry counts.
func WithMaxMapLength(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxMapLength = n })
}

// WithMaxExtPayloadBytes lowers the cap on any ext-family payload length.
func WithMaxExtPayloadBytes(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxExtPayloadBytes = n })
}

// WithChecksum enables an 8-byte xxHash64 integrity trailer appended by
// the Pack/Unpack facade around the encoded value bytes.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *Config) { c.Checksum = enabled })
}

// WithBufferCompression wraps the Pack/Unpack facade's output in a
// compressed frame using the given backend. CompressionNone (the default)
// disables buffer compression.
func WithBufferCompression(compression wire.CompressionType) Option {
	return options.New(func(c *Config) error {
		switch compression {
		case wire.CompressionNone, wire.CompressionZstd, wire.CompressionS2, wire.CompressionLZ4:
			c.BufferCompression = compression

			return nil
		default:
			return fmt.Errorf("invalid bufferCompression: %d", compression)
		}
	})
}
