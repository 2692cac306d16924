// Package inspect reads corpus files back and summarizes what they actually contain.
//
//nolint:tagliatelle
package inspect

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/farcloser/doppel/internal/container/archive"
	"github.com/farcloser/doppel/internal/container/riff"
	"github.com/farcloser/doppel/internal/integration/ffprobe"
)

var (
	errInvalidWAV = errors.New("invalid WAV file")
	errNotPE      = errors.New("not an MZ executable")
)

// Summary describes one file. Exactly one of the kind-specific sections is set, except for unknown files that
// ffprobe could not read.
type Summary struct {
	Path   string `json:"path,omitempty"`
	Size   int    `json:"size"`
	SHA256 string `json:"sha256"`
	Kind   Kind   `json:"kind"`

	Audio      *Audio          `json:"audio,omitempty"`
	Video      *Video          `json:"video,omitempty"`
	Archive    *Archive        `json:"archive,omitempty"`
	Executable *Executable     `json:"executable,omitempty"`
	Probe      *ffprobe.Result `json:"probe,omitempty"`
}

// Audio describes a PCM WAV file.
type Audio struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	BitDepth   int     `json:"bit_depth"`
	Samples    int     `json:"samples"`
	Duration   float64 `json:"duration"`
	DominantHz float64 `json:"dominant_hz"`
	Peak       float64 `json:"peak"`
	PeakDb     float64 `json:"peak_db"`
	DCOffset   float64 `json:"dc_offset"`
	RMS        float64 `json:"rms"`

	ClipEvents     int     `json:"clip_events"`
	ClippedSamples int     `json:"clipped_samples"`
	LeadingSilence float64 `json:"leading_silence"`
	// TrailingSilence is zero for all-silent files, see LeadingSilence.
	TrailingSilence float64 `json:"trailing_silence"`
}

// Video describes a RIFF/AVI stand-in.
type Video struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Frames    int     `json:"frames"`
	FrameRate int     `json:"frame_rate"`
	Chunks    int     `json:"chunks"`
	Duration  float64 `json:"duration"`
	Label     string  `json:"label"`
}

// Archive lists the members of a ZIP based file.
type Archive struct {
	Entries []Member `json:"entries"`
}

// Member is one archive entry.
type Member struct {
	Name   string `json:"name"`
	Size   int    `json:"size"`
	SHA256 string `json:"sha256"`
}

// Executable describes an MZ stub.
type Executable struct {
	PayloadSize int  `json:"payload_size"`
	Marker      bool `json:"marker"`
}

// Bytes summarizes in-memory data. Unknown formats get a summary with only the generic fields.
func Bytes(data []byte) (*Summary, error) {
	sum := sha256.Sum256(data)
	summary := &Summary{
		Size:   len(data),
		SHA256: hex.EncodeToString(sum[:]),
		Kind:   Sniff(data),
	}

	var err error

	switch summary.Kind {
	case KindWAV:
		summary.Audio, err = readAudio(data)
	case KindRIFFAVI:
		// Real AVI encodes nest avih in a LIST chunk; those are left to ffprobe.
		if summary.Video, err = readVideo(data); err != nil {
			slog.Debug("inspect.Bytes", "stage", "riff", "error", err)

			summary.Kind, err = KindUnknown, nil
		}
	case KindZIP, KindJAR, KindAPK:
		summary.Archive, err = readArchive(data)
		if err == nil {
			names := make([]string, len(summary.Archive.Entries))
			for i, member := range summary.Archive.Entries {
				names[i] = member.Name
			}

			summary.Kind = refine(names)
		}
	case KindPE:
		summary.Executable, err = readExecutable(data)
	case KindUnknown:
	}

	if err != nil {
		return nil, err
	}

	return summary, nil
}

// File summarizes a file on disk. Files that are none of the native containers, or AVI files that are not stand-ins, are handed to ffprobe when it is
// available, which covers real encodes (mp4, mkv, mp3, flac...).
func File(ctx context.Context, filePath string, probeTimeout time.Duration) (*Summary, error) {
	slog.Debug("inspect.File", "file path", filePath)

	data, err := os.ReadFile(filePath) //nolint:gosec // inspecting user-provided files by design
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}

	summary, err := Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	summary.Path = filePath

	if summary.Kind == KindUnknown {
		probe, probeErr := ffprobe.Probe(ctx, filePath, probeTimeout)
		if probeErr != nil {
			slog.Debug("inspect.File", "file path", filePath, "stage", "probe", "error", probeErr)
		} else {
			summary.Probe = probe
		}
	}

	return summary, nil
}

func readAudio(data []byte) (*Audio, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidWAV, err)
	}

	if pcm == nil || pcm.Format == nil || pcm.Format.SampleRate <= 0 || pcm.Format.NumChannels <= 0 {
		return nil, errInvalidWAV
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth <= 0 {
		return nil, fmt.Errorf("%w: bit depth %d", errInvalidWAV, bitDepth)
	}

	channels := pcm.Format.NumChannels
	scale := float64(int(1) << (bitDepth - 1))

	// First channel only; the corpus writes mono.
	raw := make([]int, 0, len(pcm.Data)/channels)
	samples := make([]float64, 0, len(pcm.Data)/channels)

	for i := 0; i < len(pcm.Data); i += channels {
		raw = append(raw, pcm.Data[i])
		samples = append(samples, float64(pcm.Data[i])/scale)
	}

	lv := levels(samples)
	clips := clipping(raw, bitDepth)
	leading, trailing := edgeSilence(samples, pcm.Format.SampleRate)

	return &Audio{
		SampleRate: pcm.Format.SampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Samples:    len(samples),
		Duration:   float64(len(samples)) / float64(pcm.Format.SampleRate),
		DominantHz: dominantFrequency(samples, pcm.Format.SampleRate),
		Peak:       lv.Peak,
		PeakDb:     lv.PeakDb,
		DCOffset:   lv.DCOffset,
		RMS:        lv.RMS,

		ClipEvents:      clips.Events,
		ClippedSamples:  clips.Samples,
		LeadingSilence:  leading,
		TrailingSilence: trailing,
	}, nil
}

func readVideo(data []byte) (*Video, error) {
	header, err := riff.Parse(data)
	if err != nil {
		return nil, err
	}

	video := &Video{
		Width:     header.Width,
		Height:    header.Height,
		Frames:    header.Frames,
		FrameRate: header.FrameRate,
		Chunks:    header.Chunks,
		Label:     header.Label,
	}

	if header.FrameRate > 0 {
		video.Duration = float64(header.Frames) / float64(header.FrameRate)
	}

	return video, nil
}

func readArchive(data []byte) (*Archive, error) {
	entries, err := archive.Read(data)
	if err != nil {
		return nil, err
	}

	result := &Archive{Entries: make([]Member, len(entries))}

	for i, entry := range entries {
		sum := sha256.Sum256(entry.Data)
		result.Entries[i] = Member{Name: entry.Name, Size: len(entry.Data), SHA256: hex.EncodeToString(sum[:])}
	}

	return result, nil
}

func readExecutable(data []byte) (*Executable, error) {
	if !bytes.HasPrefix(data, []byte("MZ")) {
		return nil, errNotPE
	}

	payload := data[2:]
	exe := &Executable{PayloadSize: len(payload)}

	if len(payload) > 0 && payload[len(payload)-1] == 0x01 {
		exe.Marker = true
		exe.PayloadSize--
	}

	return exe, nil
}
