package types

import "errors"

// Generation failures. All but ErrPathReuse and ErrInvalidPlan are local to a single output and do not abort a run.
var (
	// ErrUnsupportedContent indicates an unknown content class or perturbation, or one that does not apply to the
	// buffer medium (eg: amplitude scaling on video).
	ErrUnsupportedContent = errors.New("unsupported content")

	// ErrDegenerateBuffer indicates parameters that would yield an empty signal.
	ErrDegenerateBuffer = errors.New("degenerate buffer")

	// ErrNonDeterministicContent indicates that reproducibility was requested for content generated without a seed.
	ErrNonDeterministicContent = errors.New("non-deterministic content")

	// ErrDuplicateEntry indicates two archive entries sharing a name.
	ErrDuplicateEntry = errors.New("duplicate archive entry")

	// ErrEncoderUnavailable indicates the real encoder could not produce an artifact.
	// Callers may explicitly fall back to the stand-in encoding.
	ErrEncoderUnavailable = errors.New("encoder unavailable")

	// ErrPathReuse indicates a second write to the same output path within one run.
	ErrPathReuse = errors.New("output path reused")

	// ErrInvalidPlan indicates a structurally broken generation plan.
	ErrInvalidPlan = errors.New("invalid plan")
)
