package plan

import "github.com/farcloser/doppel/internal/types"

// DefaultName names the built-in corpus.
const DefaultName = "doppel-default"

// Default returns the built-in corpus: a melody and its variants, a gradient clip and its variants, unrelated
// video negatives, and near-duplicate archives and executables.
// Every record uses the stand-in encoder, so the default corpus needs no external tool.
func Default() *Plan {
	plan := &Plan{Name: DefaultName}

	plan.Records = append(plan.Records, music()...)
	plan.Records = append(plan.Records, video()...)
	plan.Records = append(plan.Records, binaries()...)

	return plan
}

func song() *types.ClassSpec {
	return &types.ClassSpec{Class: types.ClassMelody}
}

func audio(output, group, title string, perts ...types.Perturbation) Record {
	return Record{
		Output: output,
		Group:  group,
		Title:  title,
		Request: types.Request{
			Content:       song(),
			Perturbations: perts,
			Container:     types.ContainerSpec{Kind: types.ContainerWAV},
		},
	}
}

func music() []Record {
	const group = "song1"

	return []Record{
		audio("music/song1.wav", group, "My Favorite Song"),
		audio("music/my_favorite_track.wav", group, "Awesome Track"),
		audio("music/music_file_001.wav", group, ""),
		audio("music/song1.mp3", group, "", types.Relabel("mp3")),
		audio("music/song1.flac", group, "", types.Relabel("flac")),
		audio("music/song1_quiet.wav", group, "", types.AmplitudeScale(0.95)),
		audio("music/song1_extended.wav", group, "", types.DurationScale(2)),
		audio("music/song1_22k.wav", group, "", types.Resample(22050)),
		audio("music/different_song.wav", "different_song", "Different Song", types.Reverse()),
	}
}

func clip(output, group string, content types.ClassSpec, perts ...types.Perturbation) Record {
	return Record{
		Output: output,
		Group:  group,
		Request: types.Request{
			Content:       &content,
			Perturbations: perts,
			Container:     types.ContainerSpec{Kind: types.ContainerRIFFAVI},
		},
	}
}

func gradient(start, end *types.Color) types.ClassSpec {
	return types.ClassSpec{Class: types.ClassGradient, Params: types.Params{Start: start, End: end}}
}

func video() []Record {
	const group = "video1"

	base := gradient(types.RGB(255, 0, 0), types.RGB(0, 0, 255))

	return []Record{
		clip("video/video1.mp4", group, base, types.Relabel("mp4")),
		clip("video/my_movie.mp4", group, base, types.Relabel("mp4")),
		clip("video/movie_001.mp4", group, base, types.Relabel("mp4")),
		clip("video/video1.avi", group, base),
		clip("video/video1.mkv", group, base, types.Relabel("mkv")),
		clip("video/video1.mov", group, base, types.Relabel("mov")),
		clip("video/video1_hd.mp4", group, base, types.QualityScale(1.2), types.Relabel("mp4")),
		clip("video/video1_low.mp4", group, base, types.QualityScale(0.8), types.Relabel("mp4")),
		clip("video/video1_720p.mp4", group, base, types.Resize(1280, 720), types.Relabel("mp4")),
		clip("video/video1_480p.mp4", group, base, types.Resize(854, 480), types.Relabel("mp4")),
		clip("video/video1_extended.mp4", group, base, types.DurationScale(2), types.Relabel("mp4")),
		clip("video/video1_high_bitrate.mp4", group, base, types.QualityScale(1.5), types.Relabel("mp4")),
		clip("video/video1_low_bitrate.mp4", group, base, types.QualityScale(0.6), types.Relabel("mp4")),

		clip("video/different_video.mp4", "stripes", types.ClassSpec{Class: types.ClassStripes}, types.Relabel("mp4")),
		clip("video/another_video.mp4", "circles", types.ClassSpec{Class: types.ClassCircles}, types.Relabel("mp4")),
		clip("video/pattern_video.mp4", "checkerboard",
			types.ClassSpec{Class: types.ClassCheckerboard}, types.Relabel("mp4")),
		clip("video/text_video.mp4", "text", types.ClassSpec{Class: types.ClassText}, types.Relabel("mp4")),
		clip("video/noise_video.mp4", "noise", types.ClassSpec{
			Class:  types.ClassNoise,
			Params: types.Params{Seed: types.Seed(0), Reproducible: true},
		}, types.Relabel("mp4")),
		clip("video/wave_video.mp4", "wave", types.ClassSpec{Class: types.ClassWave}, types.Relabel("mp4")),
		clip("video/green_to_purple.mp4", "green_to_purple",
			gradient(types.RGB(0, 255, 0), types.RGB(128, 0, 255)), types.Relabel("mp4")),
		clip("video/yellow_to_cyan.mp4", "yellow_to_cyan",
			gradient(types.RGB(255, 255, 0), types.RGB(0, 255, 255)), types.Relabel("mp4")),
	}
}

func binary(output, group string, container types.ContainerSpec) Record {
	return Record{Output: output, Group: group, Request: types.Request{Container: container}}
}

func binaries() []Record {
	jar := types.ContainerSpec{Kind: types.ContainerJAR}
	apk := types.ContainerSpec{Kind: types.ContainerAPK}
	exe := types.ContainerSpec{Kind: types.ContainerPE}

	marked := func(spec types.ContainerSpec) types.ContainerSpec {
		spec.Marker = true

		return spec
	}

	return []Record{
		binary("binaries/test1.jar", "jar", jar),
		binary("binaries/test2.jar", "jar", marked(jar)),
		binary("binaries/test3.jar", "jar", jar),
		binary("binaries/test1.apk", "apk", apk),
		binary("binaries/test2.apk", "apk", marked(apk)),
		binary("binaries/test1.exe", "exe", exe),
		binary("binaries/test2.exe", "exe", marked(exe)),
		binary("binaries/test1.zip", "zip", types.ContainerSpec{Kind: types.ContainerZIP}),
		binary("binaries/test2.zip", "zip", types.ContainerSpec{
			Kind: types.ContainerZIP,
			Entries: []types.Entry{
				{Name: "file1.txt", Text: "This is a test file"},
				{Name: "file2.txt", Text: "Another test file with more content"},
			},
		}),
	}
}
