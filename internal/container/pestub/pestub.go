// Package pestub writes executable-like stubs: the "MZ" magic followed by a zero-filled region.
package pestub

import (
	"fmt"

	"github.com/farcloser/doppel/internal/types"
)

// DefaultPayloadSize is the zero region length when none is requested.
const DefaultPayloadSize = 1000

// Encode returns "MZ", size zero bytes, and a trailing 0x01 when marker is set.
// Two stubs differing only by the marker are single-byte near duplicates.
func Encode(size int, marker bool) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: payload size %d", types.ErrDegenerateBuffer, size)
	}

	if size == 0 {
		size = DefaultPayloadSize
	}

	out := make([]byte, 2+size, 3+size)
	copy(out, "MZ")

	if marker {
		out = append(out, 0x01)
	}

	return out, nil
}
