// Package sink stores generated corpus files, on a local filesystem or in an S3-compatible bucket.
//
// A sink refuses to write the same path twice during its lifetime: create one sink per run.
package sink

import (
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"sync"

	"github.com/farcloser/doppel/internal/types"
)

var errEscapes = errors.New("path escapes the corpus root")

// claims tracks the paths written by one sink.
type claims struct {
	mu      sync.Mutex
	written map[string]bool
}

// claim reserves a path, failing with types.ErrPathReuse if it was already reserved.
func (c *claims) claim(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.written == nil {
		c.written = map[string]bool{}
	}

	if c.written[name] {
		return fmt.Errorf("%w: %s", types.ErrPathReuse, name)
	}

	c.written[name] = true

	return nil
}

func checkName(name string) error {
	if name == "" || path.IsAbs(name) || strings.Contains(name, `\`) ||
		path.Clean(name) != name || name == ".." || strings.HasPrefix(name, "../") {
		return fmt.Errorf("%w: %q", errEscapes, name)
	}

	return nil
}

// ContentType guesses the media type of a corpus file from its extension.
func ContentType(name string) string {
	ext := path.Ext(name)

	switch ext {
	case ".flac":
		return "audio/flac"
	case ".mkv":
		return "video/x-matroska"
	case ".m3u", ".m3u8":
		return "audio/x-mpegurl"
	case ".pls":
		return "audio/x-scpls"
	case ".apk":
		return "application/vnd.android.package-archive"
	case ".jar":
		return "application/java-archive"
	}

	if guessed := mime.TypeByExtension(ext); guessed != "" {
		return guessed
	}

	return "application/octet-stream"
}
