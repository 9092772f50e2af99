// Package sanitize guards the edges where untrusted host data enters the process.
package sanitize

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxPayloadSize is 1 MiB.
	DefaultMaxPayloadSize = 1 << 20
	// EnvMaxPayloadSize overrides DefaultMaxPayloadSize.
	EnvMaxPayloadSize = "CLICKTREE_MAX_PAYLOAD_SIZE"
)

var (
	ErrPayloadTooLarge = errors.New("payload exceeds maximum allowed size")
	ErrInvalidUTF8     = errors.New("payload contains invalid UTF-8 sequences")
)

// Payload rejects raw payloads over the size limit or with invalid UTF-8.
// Oversized payloads are rejected, never truncated.
func Payload(raw []byte) error {
	limit := MaxPayloadSize()
	if len(raw) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrPayloadTooLarge, len(raw), limit)
	}
	if !utf8.Valid(raw) {
		return ErrInvalidUTF8
	}
	return nil
}

// Label strips control characters (ANSI escapes, NUL, BEL, newlines) from a
// label before it is written to a terminal. Labels are single-line, so unlike
// free text no whitespace control is kept except tab, which becomes a space.
func Label(s string) string {
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaxPayloadSize returns the active limit.
func MaxPayloadSize() int {
	if val := os.Getenv(EnvMaxPayloadSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxPayloadSize
}
