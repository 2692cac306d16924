//nolint:tagliatelle
package types

// PerturbationKind is drawn from a closed set of transforms.
type PerturbationKind string

const (
	PerturbIdentity         PerturbationKind = "identity"
	PerturbQualityScale     PerturbationKind = "quality_scale"
	PerturbResample         PerturbationKind = "resample"
	PerturbResize           PerturbationKind = "resize"
	PerturbDurationScale    PerturbationKind = "duration_scale"
	PerturbReverse          PerturbationKind = "reverse"
	PerturbAmplitudeScale   PerturbationKind = "amplitude_scale"
	PerturbContainerRelabel PerturbationKind = "container_relabel"
)

// Perturbation is a named, parameterized transform. Only the fields relevant to Kind are read.
type Perturbation struct {
	Kind   PerturbationKind `json:"kind"`
	Factor float64          `json:"factor,omitempty"`
	Rate   int              `json:"rate,omitempty"`
	Width  int              `json:"width,omitempty"`
	Height int              `json:"height,omitempty"`
	Format string           `json:"format,omitempty"`
}

func Identity() Perturbation {
	return Perturbation{Kind: PerturbIdentity}
}

func QualityScale(factor float64) Perturbation {
	return Perturbation{Kind: PerturbQualityScale, Factor: factor}
}

func Resample(rate int) Perturbation {
	return Perturbation{Kind: PerturbResample, Rate: rate}
}

func Resize(width, height int) Perturbation {
	return Perturbation{Kind: PerturbResize, Width: width, Height: height}
}

func DurationScale(factor float64) Perturbation {
	return Perturbation{Kind: PerturbDurationScale, Factor: factor}
}

func Reverse() Perturbation {
	return Perturbation{Kind: PerturbReverse}
}

func AmplitudeScale(factor float64) Perturbation {
	return Perturbation{Kind: PerturbAmplitudeScale, Factor: factor}
}

func Relabel(format string) Perturbation {
	return Perturbation{Kind: PerturbContainerRelabel, Format: format}
}
