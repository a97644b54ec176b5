package getpacker

import (
	"encoding/binary"

	"github.com/jonataslaw/get-packer/codec"
	"github.com/jonataslaw/get-packer/compress"
	"github.com/jonataslaw/get-packer/config"
	"github.com/jonataslaw/get-packer/errs"
	"github.com/jonataslaw/get-packer/internal/hash"
	"github.com/jonataslaw/get-packer/value"
	"github.com/jonataslaw/get-packer/wire"
)

// Pack encodes v according to cfg and returns the resulting buffer.
//
// When cfg.Checksum is set, an 8-byte xxHash64 trailer is appended over the
// encoded value bytes. When cfg.BufferCompression is not wire.CompressionNone,
// the encoded bytes (plus checksum trailer, if any) are compressed and
// wrapped in a small frame so Unpack can recognize and reverse it without
// being told the compression type out of band.
func Pack(v value.Value, cfg *config.Config) ([]byte, error) {
	enc := codec.NewEncoder(cfg)

	data, err := enc.Pack(v)
	if err != nil {
		return nil, err
	}

	if cfg.Checksum {
		data = hash.AppendChecksum(data, data)
	}

	if cfg.BufferCompression == wire.CompressionNone {
		return data, nil
	}

	codecImpl, err := compress.CreateCodec(cfg.BufferCompression, "Pack")
	if err != nil {
		return nil, err
	}

	compressed, err := codecImpl.Compress(data)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, wire.FrameHeaderSize+len(compressed))
	frame = append(frame, wire.FrameMagic, byte(cfg.BufferCompression))
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(data)))
	frame = append(frame, compressed...)

	return frame, nil
}

// Unpack decodes data according to cfg, reversing whatever framing Pack
// applied (compression, checksum) before decoding the value tree.
//
// If factory is non-nil and the decoded value is a Text-keyed Map, Unpack
// calls factory with the map's Go-native form and returns its result instead
// of the raw value.Value; pass nil to always get the decoded value.Value back
// as an any.
func Unpack(data []byte, cfg *config.Config, factory value.MapFactory) (any, error) {
	data, err := unwrapFrame(data)
	if err != nil {
		return nil, err
	}

	if cfg.Checksum {
		if len(data) < hash.ChecksumSize {
			return nil, errs.New(errs.ErrTruncatedInput, "buffer too short to contain a checksum trailer")
		}
		if !hash.VerifyChecksum(data) {
			return nil, errs.New(errs.ErrChecksumMismatch, "checksum trailer does not match buffer contents")
		}
		data = data[:len(data)-hash.ChecksumSize]
	}

	dec := codec.NewDecoder(cfg)
	dec.Reset(data, cfg)

	v, err := dec.Unpack()
	if err != nil {
		return nil, err
	}

	if factory == nil {
		return v, nil
	}

	m, ok := v.AsMap()
	if !ok {
		return nil, errs.New(errs.ErrModelMismatch, "decoded value is not a map")
	}
	goMap, ok := m.ToGoMap()
	if !ok {
		return nil, errs.New(errs.ErrModelMismatch, "decoded map has non-text keys")
	}

	return factory(goMap)
}

func unwrapFrame(data []byte) ([]byte, error) {
	if len(data) == 0 || data[0] != wire.FrameMagic {
		return data, nil
	}
	if len(data) < wire.FrameHeaderSize {
		return nil, errs.New(errs.ErrInvalidFrame, "compressed frame header is truncated")
	}

	compressionType := wire.CompressionType(data[1])
	uncompressedLen := binary.BigEndian.Uint32(data[2:6])

	codecImpl, err := compress.CreateCodec(compressionType, "Unpack")
	if err != nil {
		return nil, errs.New(errs.ErrInvalidFrame, "compressed frame uses an unrecognized compression type").
			WithDetail("compressionType", compressionType)
	}

	payload, err := codecImpl.Decompress(data[wire.FrameHeaderSize:])
	if err != nil {
		return nil, err
	}
	if uint32(len(payload)) != uncompressedLen {
		return nil, errs.New(errs.ErrInvalidFrame, "decompressed length does not match frame header").
			WithDetail("declared", uncompressedLen).WithDetail("actual", len(payload))
	}

	return payload, nil
}
