// Package plan describes a corpus as data: an ordered list of output records, each bound to an equivalence group.
//
//nolint:tagliatelle
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/farcloser/doppel/internal/types"
)

// Record is one output file of the corpus.
type Record struct {
	// Output is the corpus-relative, slash separated path of the file.
	Output string `json:"output"`
	// Group labels the equivalence class the file belongs to.
	Group string `json:"group"`
	// Title is a human name used by side files. Defaults to the output stem.
	Title   string        `json:"title,omitempty"`
	Request types.Request `json:"request"`
}

// DisplayTitle returns the title, or the output file name without extension.
func (r Record) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}

	base := path.Base(r.Output)

	return strings.TrimSuffix(base, path.Ext(base))
}

// Plan is a named, ordered list of records.
type Plan struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}

// Groups returns the group labels in order of first appearance.
func (p *Plan) Groups() []string {
	seen := map[string]bool{}

	var groups []string

	for _, record := range p.Records {
		if !seen[record.Group] {
			seen[record.Group] = true
			groups = append(groups, record.Group)
		}
	}

	return groups
}

// Validate checks the structural rules of a plan. Every violation is fatal and wraps types.ErrInvalidPlan.
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty plan name", types.ErrInvalidPlan)
	}

	if len(p.Records) == 0 {
		return fmt.Errorf("%w: no records", types.ErrInvalidPlan)
	}

	outputs := map[string]int{}
	members := map[string]int{}

	for i, record := range p.Records {
		if err := validOutput(record.Output); err != nil {
			return fmt.Errorf("%w: record %d: %w", types.ErrInvalidPlan, i, err)
		}

		if previous, ok := outputs[record.Output]; ok {
			return fmt.Errorf("%w: records %d and %d both write %q", types.ErrInvalidPlan, previous, i, record.Output)
		}

		outputs[record.Output] = i

		if strings.TrimSpace(record.Group) == "" {
			return fmt.Errorf("%w: record %d (%s): empty group", types.ErrInvalidPlan, i, record.Output)
		}

		if strings.ContainsAny(record.Group, `/\`) {
			return fmt.Errorf("%w: record %d (%s): group %q contains a path separator",
				types.ErrInvalidPlan, i, record.Output, record.Group)
		}

		if err := record.Request.Validate(); err != nil {
			return fmt.Errorf("%w: record %d (%s): %w", types.ErrInvalidPlan, i, record.Output, err)
		}

		members[record.Group]++
	}

	if len(members) < 2 {
		return fmt.Errorf("%w: at least two groups are needed for negative coverage", types.ErrInvalidPlan)
	}

	for _, count := range members {
		if count >= 2 {
			return nil
		}
	}

	return fmt.Errorf("%w: no group has two or more members", types.ErrInvalidPlan)
}

func validOutput(output string) error {
	switch {
	case output == "":
		return errEmptyOutput
	case strings.Contains(output, `\`):
		return fmt.Errorf("%w: %q", errBackslash, output)
	case path.IsAbs(output):
		return fmt.Errorf("%w: %q", errAbsolute, output)
	case path.Clean(output) != output || output == "." || output == ".." || strings.HasPrefix(output, "../"):
		return fmt.Errorf("%w: %q", errUnclean, output)
	}

	return nil
}

// Parse decodes a plan from JSON, comments and trailing commas allowed. Unknown fields are rejected.
func Parse(data []byte) (*Plan, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONC: %w", types.ErrInvalidPlan, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(standardized))
	decoder.DisallowUnknownFields()

	var plan Plan
	if err = decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", types.ErrInvalidPlan, err)
	}

	return &plan, nil
}

// Load reads and parses a plan file.
func Load(filePath string) (*Plan, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // plan path is user-provided by design
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	return Parse(data)
}
