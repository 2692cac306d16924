package tests_test

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"

	"github.com/farcloser/doppel"
)

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectFiles returns a comparator verifying that the corpus directory holds every given file.
func expectFiles(dir string, names ...string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		for _, name := range names {
			if _, err := os.Stat(dir + "/" + name); err != nil {
				testing.Log(fmt.Sprintf("expected %s in corpus: %v", name, err))
				testing.Fail()
			}
		}
	}
}

// expectNoFiles returns a comparator verifying that none of the given files exist in the corpus directory.
func expectNoFiles(dir string, names ...string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		for _, name := range names {
			if _, err := os.Stat(dir + "/" + name); err == nil {
				testing.Log(fmt.Sprintf("unexpected %s in corpus", name))
				testing.Fail()
			}
		}
	}
}

// expectReport returns a comparator reading the equivalence report of a corpus directory.
func expectReport(dir string, created, failed int) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		raw, err := os.ReadFile(dir + "/" + doppel.ReportFile)
		if err != nil {
			testing.Log("reading report: " + err.Error())
			testing.Fail()

			return
		}

		var report doppel.Report
		if err = json.Unmarshal(raw, &report); err != nil {
			testing.Log("parsing report: " + err.Error())
			testing.Fail()

			return
		}

		if report.Created != created || report.Failed != failed {
			testing.Log(fmt.Sprintf("expected %d created and %d failed, got %d and %d",
				created, failed, report.Created, report.Failed))
			testing.Fail()
		}
	}
}
