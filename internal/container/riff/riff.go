// Package riff writes a minimal RIFF/AVI-tagged stand-in for video content.
//
// The layout is RIFF, size, "AVI ", one "avih" chunk (width, height, frame count, frame rate as little-endian uint32),
// then one "00dc" chunk per frame. Frame chunks carry the content label followed by zero padding, never image data:
// the file exists so container-aware parsers have something structurally valid to open.
package riff

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/farcloser/doppel/internal/types"
)

const (
	chunkHeaderSize = 8
	mainHeaderSize  = 16
	framePadding    = 100
)

// Encode returns the stand-in for a video buffer. Size is a deterministic function of the label and frame count.
func Encode(buf *types.SignalBuffer, label string) ([]byte, error) {
	if buf.Medium != types.MediumVideo {
		return nil, fmt.Errorf("%w: riff stand-in for %s buffer", types.ErrUnsupportedContent, buf.Medium)
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: no frames", types.ErrDegenerateBuffer)
	}

	block := make([]byte, len(label)+framePadding)
	copy(block, label)

	blockChunk := chunkHeaderSize + len(block) + len(block)%2
	total := 12 + chunkHeaderSize + mainHeaderSize + blockChunk*buf.Len()

	out := make([]byte, 0, total)
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(total-8)) //nolint:gosec // bounded by memory
	out = append(out, "AVI "...)

	out = append(out, "avih"...)
	out = binary.LittleEndian.AppendUint32(out, mainHeaderSize)
	out = binary.LittleEndian.AppendUint32(out, uint32(buf.Width))  //nolint:gosec // validated positive
	out = binary.LittleEndian.AppendUint32(out, uint32(buf.Height)) //nolint:gosec // validated positive
	out = binary.LittleEndian.AppendUint32(out, uint32(buf.Len()))  //nolint:gosec // validated positive
	out = binary.LittleEndian.AppendUint32(out, uint32(buf.Rate))   //nolint:gosec // validated positive

	for range buf.Len() {
		out = append(out, "00dc"...)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(block))) //nolint:gosec // bounded by label length
		out = append(out, block...)

		if len(block)%2 == 1 {
			out = append(out, 0)
		}
	}

	return out, nil
}

// Header is the decoded "avih" chunk of a stand-in.
type Header struct {
	Width     int
	Height    int
	Frames    int
	FrameRate int
	// Chunks is the number of frame chunks actually present.
	Chunks int
	// Label is the content label of the first frame chunk.
	Label string
}

// Parse reads back a stand-in produced by Encode.
func Parse(data []byte) (*Header, error) {
	if len(data) < 12+chunkHeaderSize+mainHeaderSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		return nil, fmt.Errorf("%w: not a RIFF/AVI stand-in", types.ErrUnsupportedContent)
	}

	if string(data[12:16]) != "avih" {
		return nil, fmt.Errorf("%w: missing avih chunk", types.ErrUnsupportedContent)
	}

	hdr := data[20:36]
	header := &Header{
		Width:     int(binary.LittleEndian.Uint32(hdr[0:])),
		Height:    int(binary.LittleEndian.Uint32(hdr[4:])),
		Frames:    int(binary.LittleEndian.Uint32(hdr[8:])),
		FrameRate: int(binary.LittleEndian.Uint32(hdr[12:])),
	}

	for off := 36; off+chunkHeaderSize <= len(data); {
		size := int(binary.LittleEndian.Uint32(data[off+4:]))
		if string(data[off:off+4]) == "00dc" {
			if header.Chunks == 0 && off+chunkHeaderSize+size <= len(data) {
				header.Label = string(bytes.TrimRight(data[off+chunkHeaderSize:off+chunkHeaderSize+size], "\x00"))
			}

			header.Chunks++
		}

		off += chunkHeaderSize + size + size%2
	}

	return header, nil
}
