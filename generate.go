package doppel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/farcloser/doppel/internal/container/archive"
	"github.com/farcloser/doppel/internal/container/pestub"
	"github.com/farcloser/doppel/internal/container/riff"
	"github.com/farcloser/doppel/internal/container/wav"
	"github.com/farcloser/doppel/internal/integration/ffmpeg"
	"github.com/farcloser/doppel/internal/perturb"
	"github.com/farcloser/doppel/internal/synth"
	"github.com/farcloser/doppel/internal/types"
)

/*
Usage:

artifact, err := doppel.Generate(ctx, types.Request{
	Content:       &types.ClassSpec{Class: types.ClassMelody},
	Perturbations: []types.Perturbation{types.AmplitudeScale(0.95)},
	Container:     types.ContainerSpec{Kind: types.ContainerWAV},
}, doppel.DefaultOptions())

// Real H.264, stand-in stub if ffmpeg is missing
artifact, err := doppel.Generate(ctx, types.Request{
	Content:       &types.ClassSpec{Class: types.ClassGradient},
	Perturbations: []types.Perturbation{types.Relabel("mp4")},
	Container:     types.ContainerSpec{Kind: types.ContainerRIFFAVI},
	Encoder:       types.EncoderFFmpeg,
	Fallback:      true,
}, doppel.DefaultOptions())
*/

// Generate produces the bytes of one request: synthesize, perturb in order, then encode.
// Requests share no state and may run concurrently.
func Generate(ctx context.Context, req types.Request, opts Options) (*Artifact, error) {
	applyDefaults(&opts)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	kind := req.Container.Kind

	switch {
	case kind.IsArchive(), kind == types.ContainerPE:
		if req.Content != nil || len(req.Perturbations) > 0 {
			return nil, fmt.Errorf("%w: %q containers carry no signal content", types.ErrUnsupportedContent, kind)
		}

		return generateBinary(req)
	case req.Content == nil:
		return nil, fmt.Errorf("%w: %q containers need content", types.ErrUnsupportedContent, kind)
	case req.Content.Class.Medium() != kind.Medium():
		return nil, fmt.Errorf("%w: %s class %q in a %s container",
			types.ErrUnsupportedContent, req.Content.Class.Medium(), req.Content.Class, kind.Medium())
	}

	buf, err := synth.Synthesize(*req.Content)
	if err != nil {
		return nil, err
	}

	buf, err = perturb.ApplyAll(buf, req.Perturbations)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		Format:   req.Format(),
		Medium:   buf.Medium,
		Units:    buf.Len(),
		Rate:     buf.Rate,
		Width:    buf.Width,
		Height:   buf.Height,
		Duration: buf.Duration(),
	}

	if req.Encoder == types.EncoderFFmpeg {
		artifact.Data, err = encodeReal(ctx, buf, artifact.Format, opts)
		if err == nil {
			artifact.Encoder = types.EncoderFFmpeg

			return artifact, nil
		}

		if !req.Fallback || !errors.Is(err, types.ErrEncoderUnavailable) {
			return nil, err
		}

		slog.Warn("doppel.Generate", "stage", "fallback", "format", artifact.Format, "error", err)

		artifact.FallbackReason = err.Error()
	}

	artifact.Encoder = types.EncoderStandIn

	artifact.Data, artifact.StandIn, err = encodeStandIn(buf, artifact.Format)
	if err != nil {
		return nil, err
	}

	return artifact, nil
}

func generateBinary(req types.Request) (*Artifact, error) {
	spec := req.Container
	artifact := &Artifact{Format: req.Format(), Encoder: types.EncoderStandIn}

	var err error

	if spec.Kind == types.ContainerPE {
		artifact.Data, err = pestub.Encode(spec.PayloadSize, spec.Marker)
		if err != nil {
			return nil, err
		}

		return artifact, nil
	}

	entries, err := archive.Entries(spec)
	if err != nil {
		return nil, err
	}

	artifact.Data, err = archive.Encode(entries)
	if err != nil {
		return nil, err
	}

	return artifact, nil
}

// encodeStandIn writes the structural stand-in and reports whether the bytes differ from what format promises.
func encodeStandIn(buf *types.SignalBuffer, format string) ([]byte, bool, error) {
	if buf.Medium == types.MediumAudio {
		data, err := wav.Encode(buf)

		return data, format != types.ContainerWAV.DefaultExtension(), err
	}

	data, err := riff.Encode(buf, buf.Source.Key())

	return data, format != types.ContainerRIFFAVI.DefaultExtension(), err
}

func encodeReal(ctx context.Context, buf *types.SignalBuffer, format string, opts Options) ([]byte, error) {
	if buf.Medium == types.MediumAudio {
		data, err := wav.Encode(buf)
		if err != nil || format == types.ContainerWAV.DefaultExtension() {
			return data, err
		}

		return ffmpeg.Transcode(ctx, data, format, opts.FFmpegTimeout)
	}

	if buf.Source.Class == types.ClassSolid {
		return ffmpeg.EncodeColor(ctx, *buf.Source.Params.Start, buf.Duration(),
			buf.Width, buf.Height, buf.Rate, format, opts.FFmpegTimeout)
	}

	return ffmpeg.EncodeFrames(ctx, buf, format, opts.FFmpegTimeout)
}
