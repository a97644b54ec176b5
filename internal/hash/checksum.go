// Package hash provides the digest used by the Checksum config option to
// guard a packed buffer against truncation and bit flips in transit.
package hash

import "github.com/cespare/xxhash/v2"

// ChecksumSize is the width in bytes of the trailer Sum appends.
const ChecksumSize = 8

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// AppendChecksum appends the big-endian xxHash64 of data to dst.
func AppendChecksum(dst, data []byte) []byte {
	sum := Sum(data)

	return append(dst,
		byte(sum>>56), byte(sum>>48), byte(sum>>40), byte(sum>>32),
		byte(sum>>24), byte(sum>>16), byte(sum>>8), byte(sum),
	)
}

// VerifyChecksum reports whether the trailing 8 bytes of buf match the
// xxHash64 of the bytes preceding them. buf must be at least ChecksumSize
// bytes long.
func VerifyChecksum(buf []byte) bool {
	n := len(buf) - ChecksumSize
	data, trailer := buf[:n], buf[n:]

	want := Sum(data)
	got := uint64(trailer[0])<<56 | uint64(trailer[1])<<48 | uint64(trailer[2])<<40 | uint64(trailer[3])<<32 |
		uint64(trailer[4])<<24 | uint64(trailer[5])<<16 | uint64(trailer[6])<<8 | uint64(trailer[7])

	return want == got
}
