// Package output provides shared result serialization for doppel console, JSON and markdown output.
package output

import (
	"github.com/farcloser/doppel"
	"github.com/farcloser/doppel/internal/inspect"
)

// ReportToMap converts a run report into the map structure rendered by the formatters.
func ReportToMap(report *doppel.Report) map[string]any {
	groups := make([]any, 0, len(report.Groups))
	for _, group := range report.Groups {
		entry := map[string]any{
			"label": group.Label,
			"files": group.Files,
		}

		if group.ContentKey != "" {
			entry["content_key"] = group.ContentKey
		}

		groups = append(groups, entry)
	}

	files := make([]any, 0, len(report.Files))
	for _, file := range report.Files {
		files = append(files, FileResultToMap(file))
	}

	return map[string]any{
		"summary": map[string]any{
			"plan":    report.Plan,
			"created": report.Created,
			"failed":  report.Failed,
			"groups":  len(report.Groups),
		},
		"groups": groups,
		"files":  files,
	}
}

// FileResultToMap converts the outcome of a single record.
func FileResultToMap(file doppel.FileResult) map[string]any {
	meta := map[string]any{
		"output": file.Output,
		"group":  file.Group,
		"status": string(file.Status),
	}

	if file.Status != doppel.StatusCreated {
		meta["error"] = file.Error

		return meta
	}

	meta["id"] = file.ID
	meta["size"] = file.Size
	meta["sha256"] = file.SHA256
	meta["format"] = file.Format
	meta["encoder"] = file.Encoder
	meta["stand_in"] = file.StandIn

	if file.Duration > 0 {
		meta["duration"] = file.Duration
	}

	if file.Fallback != "" {
		meta["fallback"] = file.Fallback
	}

	return meta
}

// SummaryToMap converts an inspection summary.
func SummaryToMap(summary *inspect.Summary) map[string]any {
	meta := map[string]any{
		"kind":   string(summary.Kind),
		"size":   summary.Size,
		"sha256": summary.SHA256,
	}

	if a := summary.Audio; a != nil {
		meta["audio"] = map[string]any{
			"sample_rate": a.SampleRate,
			"channels":    a.Channels,
			"bit_depth":   a.BitDepth,
			"samples":     a.Samples,
			"duration":    a.Duration,
			"dominant_hz": a.DominantHz,
			"peak":        a.Peak,
			"peak_db":     a.PeakDb,
			"dc_offset":   a.DCOffset,
			"rms":         a.RMS,

			"clip_events":      a.ClipEvents,
			"clipped_samples":  a.ClippedSamples,
			"leading_silence":  a.LeadingSilence,
			"trailing_silence": a.TrailingSilence,
		}
	}

	if v := summary.Video; v != nil {
		meta["video"] = map[string]any{
			"width":      v.Width,
			"height":     v.Height,
			"frames":     v.Frames,
			"frame_rate": v.FrameRate,
			"chunks":     v.Chunks,
			"duration":   v.Duration,
			"label":      v.Label,
		}
	}

	if a := summary.Archive; a != nil {
		entries := make([]any, 0, len(a.Entries))
		for _, member := range a.Entries {
			entries = append(entries, map[string]any{
				"name":   member.Name,
				"size":   member.Size,
				"sha256": member.SHA256,
			})
		}

		meta["entries"] = entries
	}

	if e := summary.Executable; e != nil {
		meta["executable"] = map[string]any{
			"payload_size": e.PayloadSize,
			"marker":       e.Marker,
		}
	}

	if p := summary.Probe; p != nil {
		streams := make([]any, 0, len(p.Streams))
		for _, stream := range p.Streams {
			entry := map[string]any{
				"codec": stream.CodecName,
				"type":  stream.CodecType,
			}

			if stream.CodecType == "video" {
				entry["width"] = stream.Width
				entry["height"] = stream.Height
				entry["frame_rate"] = stream.FrameRate()
			} else {
				entry["sample_rate"] = stream.SampleRate
				entry["channels"] = stream.Channels
			}

			streams = append(streams, entry)
		}

		meta["probe"] = map[string]any{
			"format":   p.Format.FormatName,
			"duration": p.Format.Duration,
			"streams":  streams,
		}
	}

	return meta
}
