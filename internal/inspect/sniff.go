package inspect

import (
	"bytes"
	"slices"

	"github.com/farcloser/doppel/internal/types"
)

// Kind is the container family recognized from leading bytes.
type Kind string

const (
	KindWAV     Kind = Kind(types.ContainerWAV)
	KindRIFFAVI Kind = Kind(types.ContainerRIFFAVI)
	KindZIP     Kind = Kind(types.ContainerZIP)
	KindJAR     Kind = Kind(types.ContainerJAR)
	KindAPK     Kind = Kind(types.ContainerAPK)
	KindPE      Kind = Kind(types.ContainerPE)
	KindUnknown Kind = "unknown"
)

const riffHeaderSize = 12

// Sniff recognizes a container by its magic bytes. ZIP files are reported as zip; Archive refines jar and apk.
func Sniff(data []byte) Kind {
	switch {
	case len(data) >= riffHeaderSize && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return KindWAV
	case len(data) >= riffHeaderSize && string(data[0:4]) == "RIFF" && string(data[8:12]) == "AVI ":
		return KindRIFFAVI
	case bytes.HasPrefix(data, []byte("PK\x03\x04")), bytes.HasPrefix(data, []byte("PK\x05\x06")):
		return KindZIP
	case bytes.HasPrefix(data, []byte("MZ")):
		return KindPE
	}

	return KindUnknown
}

// refine tells jar and apk archives apart from plain zip by their well-known members.
func refine(names []string) Kind {
	switch {
	case slices.Contains(names, "AndroidManifest.xml"):
		return KindAPK
	case slices.Contains(names, "META-INF/MANIFEST.MF"):
		return KindJAR
	}

	return KindZIP
}
