// Package sidecar renders the metadata and playlist files that accompany a corpus.
package sidecar

import (
	"fmt"
	"math"
	"path"
	"strings"
)

const (
	MetadataDir = "metadata"
	PlaylistDir = "playlists"
	// PlaylistName is the stem of the three playlist files.
	PlaylistName = "corpus"
)

// Track is one media file as described by side files.
type Track struct {
	// Path is relative to the corpus root.
	Path     string
	Group    string
	Title    string
	Format   string
	Duration float64
	Width    int
	Height   int
	Rate     int
	Size     int
}

// Files renders every side file for the given tracks, keyed by corpus-relative path.
// Tracks are rendered in the given order. An empty track list renders nothing.
func Files(tracks []Track) map[string][]byte {
	files := map[string][]byte{}
	if len(tracks) == 0 {
		return files
	}

	var groups []string

	byGroup := map[string][]Track{}

	for _, track := range tracks {
		if _, ok := byGroup[track.Group]; !ok {
			groups = append(groups, track.Group)
		}

		byGroup[track.Group] = append(byGroup[track.Group], track)
	}

	for _, group := range groups {
		files[path.Join(MetadataDir, group+".txt")] = Metadata(byGroup[group])
	}

	files[path.Join(PlaylistDir, PlaylistName+".m3u")] = M3U(tracks, false)
	files[path.Join(PlaylistDir, PlaylistName+".m3u8")] = M3U(tracks, true)
	files[path.Join(PlaylistDir, PlaylistName+".pls")] = PLS(tracks)

	return files
}

// Metadata renders one "Key: value" block per track, blocks separated by a blank line.
func Metadata(tracks []Track) []byte {
	blocks := make([]string, 0, len(tracks))

	for _, track := range tracks {
		var sb strings.Builder

		fmt.Fprintf(&sb, "Title: %s\n", track.Title)
		fmt.Fprintf(&sb, "File: %s\n", track.Path)
		fmt.Fprintf(&sb, "Duration: %s\n", clock(track.Duration))

		if track.Width > 0 && track.Height > 0 {
			fmt.Fprintf(&sb, "Resolution: %dx%d\n", track.Width, track.Height)
			fmt.Fprintf(&sb, "FPS: %d\n", track.Rate)
		} else if track.Rate > 0 {
			fmt.Fprintf(&sb, "Sample Rate: %d Hz\n", track.Rate)
		}

		fmt.Fprintf(&sb, "Format: %s\n", strings.ToUpper(track.Format))
		fmt.Fprintf(&sb, "File Size: %d bytes\n", track.Size)

		blocks = append(blocks, sb.String())
	}

	return []byte(strings.Join(blocks, "\n"))
}

// M3U renders an extended M3U playlist. The utf8 variant carries an explicit encoding tag.
func M3U(tracks []Track, utf8 bool) []byte {
	var sb strings.Builder

	sb.WriteString("#EXTM3U\n")

	if utf8 {
		sb.WriteString("#EXTENC:UTF-8\n")
	}

	for _, track := range tracks {
		fmt.Fprintf(&sb, "#EXTINF:%d,%s\n", seconds(track.Duration), track.Title)
		sb.WriteString(entryPath(track) + "\n")
	}

	return []byte(sb.String())
}

// PLS renders a version 2 PLS playlist.
func PLS(tracks []Track) []byte {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")
	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(tracks))

	for i, track := range tracks {
		fmt.Fprintf(&sb, "File%d=%s\n", i+1, entryPath(track))
		fmt.Fprintf(&sb, "Title%d=%s\n", i+1, track.Title)
		fmt.Fprintf(&sb, "Length%d=%d\n", i+1, seconds(track.Duration))
	}

	sb.WriteString("Version=2\n")

	return []byte(sb.String())
}

// Playlists live one level below the corpus root.
func entryPath(track Track) string {
	return "../" + track.Path
}

func seconds(duration float64) int {
	return int(math.Round(duration))
}

func clock(duration float64) string {
	total := seconds(duration)

	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
