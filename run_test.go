package doppel_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/doppel"
	"github.com/farcloser/doppel/internal/plan"
	"github.com/farcloser/doppel/internal/sink"
	"github.com/farcloser/doppel/internal/synth"
	"github.com/farcloser/doppel/internal/types"
)

func tone() *types.ClassSpec {
	return &types.ClassSpec{Class: types.ClassTone, Params: types.Params{Duration: 0.1}}
}

func smallPlan() *plan.Plan {
	wav := types.ContainerSpec{Kind: types.ContainerWAV}
	avi := types.ContainerSpec{Kind: types.ContainerRIFFAVI}
	clip := &types.ClassSpec{
		Class:  types.ClassGradient,
		Params: types.Params{Duration: 1, Width: 16, Height: 16, FrameRate: 5},
	}

	return &plan.Plan{
		Name: "small",
		Records: []plan.Record{
			{Output: "music/one.wav", Group: "tone", Title: "One", Request: types.Request{Content: tone(), Container: wav}},
			{Output: "music/two.mp3", Group: "tone", Request: types.Request{
				Content: tone(), Container: wav, Perturbations: []types.Perturbation{types.Relabel("mp3")},
			}},
			{Output: "video/clip.avi", Group: "clip", Request: types.Request{Content: clip, Container: avi}},
			{Output: "binaries/a.jar", Group: "jar", Request: types.Request{
				Container: types.ContainerSpec{Kind: types.ContainerJAR},
			}},
			{Output: "binaries/b.jar", Group: "jar", Request: types.Request{
				Container: types.ContainerSpec{Kind: types.ContainerJAR, Marker: true},
			}},
			{Output: "video/noise.avi", Group: "noise", Request: types.Request{
				Content:   &types.ClassSpec{Class: types.ClassNoise, Params: types.Params{Reproducible: true}},
				Container: avi,
			}},
		},
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	store, err := sink.NewDir(root)
	require.NoError(t, err)

	var calls atomic.Int32

	opts := doppel.DefaultOptions()
	opts.Workers = 3

	report, err := doppel.Run(context.Background(), smallPlan(), store, opts, func(doppel.FileResult) {
		calls.Add(1)
	})
	require.NoError(t, err)

	assert.Equal(t, int32(6), calls.Load())
	assert.Equal(t, 5, report.Created)
	assert.Equal(t, 1, report.Failed)

	wantGroups := []doppel.EquivalenceGroup{
		{Label: "tone", ContentKey: synth.Resolve(*tone()).Key(), Files: []string{"music/one.wav", "music/two.mp3"}},
		{Label: "clip", ContentKey: report.Groups[1].ContentKey, Files: []string{"video/clip.avi"}},
		{Label: "jar", Files: []string{"binaries/a.jar", "binaries/b.jar"}},
		{Label: "noise", Files: []string{}},
	}

	if diff := cmp.Diff(wantGroups, report.Groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}

	assert.NotEmpty(t, report.Groups[1].ContentKey)

	// Files keep plan order regardless of completion order.
	require.Len(t, report.Files, 6)
	assert.Equal(t, "music/one.wav", report.Files[0].Output)
	assert.Equal(t, doppel.StatusFailed, report.Files[5].Status)
	assert.Contains(t, report.Files[5].Error, doppel.ErrNonDeterministicContent.Error())

	one, two := report.Files[0], report.Files[1]
	assert.Equal(t, one.SHA256, two.SHA256)
	assert.NotEqual(t, one.ID, two.ID)
	assert.False(t, one.StandIn)
	assert.True(t, two.StandIn)
	assert.Equal(t, "mp3", two.Format)

	onDisk, err := os.ReadFile(filepath.Join(root, doppel.ReportFile))
	require.NoError(t, err)

	var stored doppel.Report
	require.NoError(t, json.Unmarshal(onDisk, &stored))
	assert.Equal(t, *report, stored)

	for _, name := range []string{
		"music/one.wav",
		"binaries/b.jar",
		"metadata/tone.txt",
		"metadata/clip.txt",
		"playlists/corpus.m3u",
		"playlists/corpus.m3u8",
		"playlists/corpus.pls",
	} {
		assert.FileExists(t, filepath.Join(root, filepath.FromSlash(name)))
	}

	assert.NoFileExists(t, filepath.Join(root, "metadata", "jar.txt"))
	assert.NoFileExists(t, filepath.Join(root, "video", "noise.avi"))

	meta, err := os.ReadFile(filepath.Join(root, "metadata", "tone.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), "Title: One\n")
	assert.Contains(t, string(meta), "Title: two\n")
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()

	first, err := sink.NewDir(t.TempDir())
	require.NoError(t, err)

	second, err := sink.NewDir(t.TempDir())
	require.NoError(t, err)

	opts := doppel.DefaultOptions()
	opts.Sidecars = false

	firstReport, err := doppel.Run(context.Background(), smallPlan(), first, opts, nil)
	require.NoError(t, err)

	opts.Workers = 1

	secondReport, err := doppel.Run(context.Background(), smallPlan(), second, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, firstReport, secondReport)
	assert.NoDirExists(t, filepath.Join(first.Root(), "playlists"))
}

func TestRunRejectsInvalidPlan(t *testing.T) {
	t.Parallel()

	store, err := sink.NewDir(t.TempDir())
	require.NoError(t, err)

	corpus := smallPlan()
	corpus.Records[1].Output = corpus.Records[0].Output

	_, err = doppel.Run(context.Background(), corpus, store, doppel.DefaultOptions(), nil)
	require.ErrorIs(t, err, doppel.ErrInvalidPlan)
}

func TestRunAbortsOnPathReuse(t *testing.T) {
	t.Parallel()

	store, err := sink.NewDir(t.TempDir())
	require.NoError(t, err)

	corpus := smallPlan()
	corpus.Records[2].Output = doppel.ReportFile

	_, err = doppel.Run(context.Background(), corpus, store, doppel.DefaultOptions(), nil)
	require.ErrorIs(t, err, doppel.ErrPathReuse)
}

func TestRunDefaultPlan(t *testing.T) {
	t.Parallel()

	store, err := sink.NewDir(t.TempDir())
	require.NoError(t, err)

	report, err := doppel.Run(context.Background(), plan.Default(), store, doppel.DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Zero(t, report.Failed)
	assert.Equal(t, len(plan.Default().Records), report.Created)
	assert.Equal(t, plan.Default().Groups(), labels(report.Groups))
}

func labels(groups []doppel.EquivalenceGroup) []string {
	out := make([]string, len(groups))
	for i, group := range groups {
		out[i] = group.Label
	}

	return out
}
