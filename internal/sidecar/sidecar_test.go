package sidecar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/doppel/internal/sidecar"
)

func tracks() []sidecar.Track {
	return []sidecar.Track{
		{
			Path: "music/song1.wav", Group: "song1", Title: "My Favorite Song",
			Format: "wav", Duration: 3, Rate: 44100, Size: 264644,
		},
		{
			Path: "video/video1.mp4", Group: "video1", Title: "video1",
			Format: "mp4", Duration: 3725.4, Width: 64, Height: 48, Rate: 10, Size: 9000,
		},
	}
}

func TestFilesLayout(t *testing.T) {
	t.Parallel()

	files := sidecar.Files(tracks())

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	assert.ElementsMatch(t, []string{
		"metadata/song1.txt",
		"metadata/video1.txt",
		"playlists/corpus.m3u",
		"playlists/corpus.m3u8",
		"playlists/corpus.pls",
	}, names)

	assert.Empty(t, sidecar.Files(nil))
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	got := string(sidecar.Metadata(tracks()))
	want := "Title: My Favorite Song\n" +
		"File: music/song1.wav\n" +
		"Duration: 00:00:03\n" +
		"Sample Rate: 44100 Hz\n" +
		"Format: WAV\n" +
		"File Size: 264644 bytes\n" +
		"\n" +
		"Title: video1\n" +
		"File: video/video1.mp4\n" +
		"Duration: 01:02:05\n" +
		"Resolution: 64x48\n" +
		"FPS: 10\n" +
		"Format: MP4\n" +
		"File Size: 9000 bytes\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestM3U(t *testing.T) {
	t.Parallel()

	plain := string(sidecar.M3U(tracks(), false))
	require.Equal(t, "#EXTM3U\n"+
		"#EXTINF:3,My Favorite Song\n../music/song1.wav\n"+
		"#EXTINF:3725,video1\n../video/video1.mp4\n", plain)

	utf8 := string(sidecar.M3U(tracks(), true))
	assert.Contains(t, utf8, "#EXTM3U\n#EXTENC:UTF-8\n")
}

func TestPLS(t *testing.T) {
	t.Parallel()

	got := string(sidecar.PLS(tracks()))
	want := "[playlist]\n" +
		"NumberOfEntries=2\n" +
		"File1=../music/song1.wav\n" +
		"Title1=My Favorite Song\n" +
		"Length1=3\n" +
		"File2=../video/video1.mp4\n" +
		"Title2=video1\n" +
		"Length2=3725\n" +
		"Version=2\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pls mismatch (-want +got):\n%s", diff)
	}
}
