// Package errs defines the error taxonomy shared by the wire, config, and
// codec packages.
//
// Every operation failure is one of a small set of sentinel errors, each
// identifying a stable error kind. Callers should use errors.Is against the
// sentinels below rather than matching on message text. When an error
// carries positional or limit context, it is returned as a *CodecError
// wrapping the matching sentinel.
package errs

import (
	"errors"
	"strconv"
)

// Sentinel errors, one per row of the error taxonomy.
var (
	// ErrUnsupportedType is returned when a value's runtime kind has no
	// wire mapping.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrMaxDepthExceeded is returned when the nesting depth counter
	// exceeds the configured maxDepth, on either encode or decode.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")

	// ErrLimitExceeded is returned when a length or byte count exceeds a
	// configured cap, on either encode or decode.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrTruncatedInput is returned when the decoder needs more bytes than
	// remain in the input buffer.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrUnknownPrefix is returned when a prefix byte is 0xC1 or otherwise
	// absent from the wire format table.
	ErrUnknownPrefix = errors.New("unknown prefix byte")

	// ErrInvalidExtPayload is returned when an ext payload's length,
	// sub-field, or alignment constraint is violated.
	ErrInvalidExtPayload = errors.New("invalid ext payload")

	// ErrTrailingBytes is returned when an ext payload's declared length
	// does not match the number of bytes its body reader consumed.
	ErrTrailingBytes = errors.New("trailing bytes in ext payload")

	// ErrTypeMismatch is returned when a decoded shape does not match
	// what a typed API requested. The model hook factory path reports
	// ErrModelMismatch instead.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidUTF8 is returned when a Text value's bytes are not valid
	// UTF-8 and the AllowMalformedUTF8 option is not set.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrChecksumMismatch is returned by Unpack when Config.Checksum is set
	// and the trailing xxHash64 does not match the preceding bytes.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidFrame is returned by Unpack when the input begins with the
	// compressed-frame magic byte but the rest of the frame header is
	// malformed, or the frame's compression type is not recognized.
	ErrInvalidFrame = errors.New("invalid compressed frame")

	// ErrModelMismatch is returned when a MapFactory is supplied to Unpack
	// but the decoded value is not a Text-keyed Map.
	ErrModelMismatch = errors.New("decoded value is not a text-keyed map")
)

// CodecError carries a stable error code, a human message, an optional
// byte offset (meaningful for decode errors), and structured details.
//
// CodecError always wraps one of the sentinels above via Unwrap, so
// errors.Is(err, errs.ErrTruncatedInput) works regardless of whether the
// caller received the sentinel directly or a *CodecError.
type CodecError struct {
	// Code is one of the sentinel errors above.
	Code error
	// Message is a human-readable description of the failure.
	Message string
	// Offset is the byte offset at which the error occurred, or -1 if
	// not applicable (e.g. most encode errors).
	Offset int
	// Details holds structured context: limit name/value, actual size,
	// ext type, prefix byte, depth, etc.
	Details map[string]any
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	if e.Offset >= 0 {
		return e.Message + " at offset " + strconv.Itoa(e.Offset)
	}

	return e.Message
}

// Unwrap allows errors.Is/errors.As to match the wrapped sentinel.
func (e *CodecError) Unwrap() error {
	return e.Code
}

// New creates a *CodecError with no offset and no details.
func New(code error, message string) *CodecError {
	return &CodecError{Code: code, Message: message, Offset: -1}
}

// WithOffset returns a copy of e with Offset set.
func (e *CodecError) WithOffset(offset int) *CodecError {
	clone := *e
	clone.Offset = offset

	return &clone
}

// WithDetail returns a copy of e with one detail key/value merged in.
func (e *CodecError) WithDetail(key string, value any) *CodecError {
	clone := *e
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	clone.Details = details

	return &clone
}

