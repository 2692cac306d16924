package doppel

import "github.com/farcloser/doppel/internal/types"

// Errors returned by Generate and Run. Check them with errors.Is.
var (
	ErrUnsupportedContent      = types.ErrUnsupportedContent
	ErrDegenerateBuffer        = types.ErrDegenerateBuffer
	ErrNonDeterministicContent = types.ErrNonDeterministicContent
	ErrDuplicateEntry          = types.ErrDuplicateEntry
	ErrEncoderUnavailable      = types.ErrEncoderUnavailable
	ErrPathReuse               = types.ErrPathReuse
	ErrInvalidPlan             = types.ErrInvalidPlan
)
