//nolint:tagliatelle
package types

import "fmt"

// ContainerKind is the byte-level format of an output.
type ContainerKind string

const (
	ContainerWAV     ContainerKind = "wav"
	ContainerRIFFAVI ContainerKind = "riff_avi"
	ContainerZIP     ContainerKind = "zip"
	ContainerJAR     ContainerKind = "jar"
	ContainerAPK     ContainerKind = "apk"
	ContainerPE      ContainerKind = "pe"
)

// Medium returns the signal medium the container carries, MediumNone for synthetic binaries.
func (k ContainerKind) Medium() Medium {
	switch k {
	case ContainerWAV:
		return MediumAudio
	case ContainerRIFFAVI:
		return MediumVideo
	case ContainerZIP, ContainerJAR, ContainerAPK, ContainerPE:
	}

	return MediumNone
}

// IsArchive reports whether the container is ZIP based.
func (k ContainerKind) IsArchive() bool {
	return k == ContainerZIP || k == ContainerJAR || k == ContainerAPK
}

// Known reports whether the container kind is one of the supported kinds.
func (k ContainerKind) Known() bool {
	return k.Medium() != MediumNone || k.IsArchive() || k == ContainerPE
}

// DefaultExtension is the file extension a container is labeled with when nothing else is requested.
func (k ContainerKind) DefaultExtension() string {
	switch k {
	case ContainerWAV:
		return "wav"
	case ContainerRIFFAVI:
		return "avi"
	case ContainerZIP:
		return "zip"
	case ContainerJAR:
		return "jar"
	case ContainerAPK:
		return "apk"
	case ContainerPE:
		return "exe"
	}

	return "bin"
}

// Entry is one named archive member. Data wins over Text when both are set.
type Entry struct {
	Name string `json:"name"`
	Data []byte `json:"data,omitempty"`
	Text string `json:"text,omitempty"`
}

// Bytes returns the entry payload.
func (e Entry) Bytes() []byte {
	if e.Data != nil {
		return e.Data
	}

	return []byte(e.Text)
}

// ContainerSpec describes the target byte-level format.
type ContainerSpec struct {
	Kind ContainerKind `json:"kind"`
	// Extension labels the output format (eg: "mp3" on a wav container). Empty means the kind default.
	Extension string `json:"extension,omitempty"`
	// Entries of archive kinds, in order. Empty means the kind preset.
	Entries []Entry `json:"entries,omitempty"`
	// Marker appends a single 0x01 byte to the primary payload, producing a near duplicate.
	Marker bool `json:"marker,omitempty"`
	// PayloadSize is the zero-filled region length of executable stubs.
	PayloadSize int `json:"payload_size,omitempty"`
}

// EncoderKind selects how signal content is encoded.
type EncoderKind string

const (
	// EncoderStandIn writes the structural stand-in (WAV bytes, RIFF/AVI stub).
	EncoderStandIn EncoderKind = "standin"
	// EncoderFFmpeg delegates to an external ffmpeg binary.
	EncoderFFmpeg EncoderKind = "ffmpeg"
)

// Request is one unit of generation: content, ordered perturbations, and the target container.
type Request struct {
	// Content is nil for synthetic binaries (archives, executables).
	Content       *ClassSpec     `json:"content,omitempty"`
	Perturbations []Perturbation `json:"perturbations,omitempty"`
	Container     ContainerSpec  `json:"container"`
	Encoder       EncoderKind    `json:"encoder,omitempty"`
	// Fallback allows the stand-in encoding when the real encoder is unavailable.
	Fallback bool `json:"fallback,omitempty"`
}

// Format returns the effective format label: the last relabel, else the container extension, else the default.
func (r Request) Format() string {
	for i := len(r.Perturbations) - 1; i >= 0; i-- {
		if r.Perturbations[i].Kind == PerturbContainerRelabel && r.Perturbations[i].Format != "" {
			return r.Perturbations[i].Format
		}
	}

	if r.Container.Extension != "" {
		return r.Container.Extension
	}

	return r.Container.Kind.DefaultExtension()
}

// ValidFormat reports whether a format label is a plain extension: lowercase letters and digits only (eg: "mp3").
// Labels become file extensions, so anything else could name a path.
func ValidFormat(label string) bool {
	if label == "" {
		return false
	}

	for _, char := range label {
		if (char < 'a' || char > 'z') && (char < '0' || char > '9') {
			return false
		}
	}

	return true
}

// Validate checks what can be checked without synthesis: the encoder, the container kind and every format label.
// Failures wrap ErrUnsupportedContent.
func (r Request) Validate() error {
	switch r.Encoder {
	case "", EncoderStandIn, EncoderFFmpeg:
	default:
		return fmt.Errorf("%w: encoder %q", ErrUnsupportedContent, r.Encoder)
	}

	if !r.Container.Kind.Known() {
		return fmt.Errorf("%w: container %q", ErrUnsupportedContent, r.Container.Kind)
	}

	if r.Container.Extension != "" && !ValidFormat(r.Container.Extension) {
		return fmt.Errorf("%w: extension %q", ErrUnsupportedContent, r.Container.Extension)
	}

	for _, pert := range r.Perturbations {
		if pert.Kind == PerturbContainerRelabel && !ValidFormat(pert.Format) {
			return fmt.Errorf("%w: relabel format %q", ErrUnsupportedContent, pert.Format)
		}
	}

	return nil
}
