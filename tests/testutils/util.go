// Package testutils provides test infrastructure for doppel integration tests.
package testutils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"
)

// SmallPlan is a fast plan covering every container kind, with one record that always fails.
const SmallPlan = `{
	// two groups of near duplicates, one failure
	"name": "cli-small",
	"records": [
		{"output": "music/a.wav", "group": "tone", "request": {
			"content": {"class": "tone", "params": {"duration": 0.2}},
			"container": {"kind": "wav"}}},
		{"output": "music/a.mp3", "group": "tone", "request": {
			"content": {"class": "tone", "params": {"duration": 0.2}},
			"perturbations": [{"kind": "container_relabel", "format": "mp3"}],
			"container": {"kind": "wav"}}},
		{"output": "video/a.avi", "group": "clip", "request": {
			"content": {"class": "stripes", "params": {"duration": 1, "width": 16, "height": 16}},
			"container": {"kind": "riff_avi"}}},
		{"output": "binaries/a.exe", "group": "exe", "request": {"container": {"kind": "pe"}}},
		{"output": "binaries/b.exe", "group": "exe", "request": {"container": {"kind": "pe", "marker": true}}},
		{"output": "video/noise.avi", "group": "noise", "request": {
			"content": {"class": "noise", "params": {"reproducible": true}},
			"container": {"kind": "riff_avi"}}},
	],
}
`

// Setup creates a test case configured to run the doppel binary.
func Setup() *test.Case {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", "doppel")

	return agar.Setup(binaryPath)
}

// WritePlan saves SmallPlan in the test temp directory and returns its path.
func WritePlan(data test.Data, helpers test.Helpers) string {
	path := data.Temp().Path("plan.hujson")

	if err := os.WriteFile(path, []byte(SmallPlan), 0o600); err != nil {
		helpers.T().Log("writing plan: " + err.Error())
		helpers.T().FailNow()
	}

	return path
}
