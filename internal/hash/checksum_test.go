package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumDeterministic(t *testing.T) {
	data := []byte("the quick brown fox")
	assert.Equal(t, Sum(data), Sum(data))
	assert.NotEqual(t, Sum(data), Sum([]byte("the quick brown fox.")))
}

func TestAppendChecksumLength(t *testing.T) {
	data := []byte("payload bytes")
	out := AppendChecksum(append([]byte(nil), data...), data)
	assert.Len(t, out, len(data)+ChecksumSize)
	assert.Equal(t, data, out[:len(data)])
}

func TestVerifyChecksumRoundTrip(t *testing.T) {
	data := []byte("round trip me")
	framed := AppendChecksum(append([]byte(nil), data...), data)
	assert.True(t, VerifyChecksum(framed))

	corrupted := append([]byte(nil), framed...)
	corrupted[0] ^= 0xFF
	assert.False(t, VerifyChecksum(corrupted))
}

func TestVerifyChecksumEmptyPayload(t *testing.T) {
	data := []byte{}
	framed := AppendChecksum(append([]byte(nil), data...), data)
	assert.Len(t, framed, ChecksumSize)
	assert.True(t, VerifyChecksum(framed))
}
