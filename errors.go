// Package uwacodec implements a schema-driven compact binary codec for
// bandwidth-constrained links such as underwater acoustic modems. Given an
// ordered, bounds-checked schema, it packs values into the smallest bit
// string that can represent them, and inverts that mapping losslessly
// (within declared precision for floats).
package uwacodec

import (
	"errors"
	"fmt"
)

// Error kinds, one sentinel per failure mode named in the schema and wire
// contract. Callers should compare with errors.Is against these, not by
// matching error strings.
var (
	// ErrOutOfRange is returned when a value does not satisfy a field's
	// declared bounds, or a varid/length overflows its representable range.
	ErrOutOfRange = errors.New("uwacodec: value out of range")

	// ErrTruncated is returned when a decode operation runs out of bits or
	// bytes before it can satisfy a read.
	ErrTruncated = errors.New("uwacodec: truncated input")

	// ErrCorruptValue is returned for well-formed-length but invalid
	// content: bad UTF-8, an out-of-range enum index, a bad CRC, or a
	// malformed varid.
	ErrCorruptValue = errors.New("uwacodec: corrupt value")

	// ErrBadChecksum is a more specific CorruptValue for framing failures.
	// errors.Is(err, ErrCorruptValue) is also true for this error.
	ErrBadChecksum = fmt.Errorf("uwacodec: bad checksum: %w", ErrCorruptValue)

	// ErrUnknownMessageID is returned when a decoded varid has no matching
	// registry entry.
	ErrUnknownMessageID = errors.New("uwacodec: unknown message id")

	// ErrOversizeMessage is returned when an encoded body exceeds a
	// declared max_bytes or a transport's MTU.
	ErrOversizeMessage = errors.New("uwacodec: oversize message")

	// ErrInvalidSchema is returned when a descriptor is rejected at
	// construction time (e.g. hi < lo, precision > 6, negative length).
	ErrInvalidSchema = errors.New("uwacodec: invalid schema")
)

// wrapf builds an error that both reads naturally and satisfies
// errors.Is(err, kind) for the given sentinel kind.
func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
