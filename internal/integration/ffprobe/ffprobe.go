package ffprobe

import "time"

const (
	name = "ffprobe"
	// DefaultTimeout applies when the caller passes a zero timeout.
	DefaultTimeout = 60 * time.Second
)
