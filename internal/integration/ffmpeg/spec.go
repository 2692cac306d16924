package ffmpeg

import "time"

const (
	name = "ffmpeg"
	// DefaultTimeout bounds a single encode. Encodes are short; a stuck process is a failure, not a slow success.
	DefaultTimeout = 60 * time.Second

	videoCodec  = "libx264"
	videoPreset = "ultrafast"
	// libx264 output is only widely playable as 4:2:0.
	outputPixFmt = "yuv420p"
)
