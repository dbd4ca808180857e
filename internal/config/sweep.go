/*
PURPOSE:
  Defines the sweep plan: a YAML file describing a grid of benchmark
  configurations (build types x precisions x variants) to run back to back
  on one host.

REQUIREMENTS:
  User-specified:
  - Mirror the historic sweep scripts: a build-dir parent, a list of build
    types, a list of precisions, and per-variant thread/block settings,
    with shared num_cols/num_runs and a host alias.
  - Results of each build type land in
    <output_dir_parent>/<build_type>/performance.csv.

  Implementation-discovered:
  - Needs YAML parsing; flag overrides stay in the CLI layer.
  - A default-file search keeps `cloudsc-bench sweep` usable without -f.
  - yaml decodes maps by merging into pre-populated entries; the template's
    variants must be cleared before decoding or they leak into every plan.
  - run_timeout accepts the same "5m" strings as the --run-timeout flag.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli/sweep.go, internal/engine (Sweep loop)
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if the plan file is invalid.
  - A missing default file falls back to the built-in example plan.

IMPLEMENTATION RULES:
  - Plan struct tags support yaml.
  - Expand() is the only place that turns the grid into RunConfigs, so the
    combination order (build type, then precision, then variant) is fixed
    in one spot.

USAGE:
  plan, err := config.LoadSweep("sweep.yaml")
  for _, job := range plan.Expand() { ... }

SELF-HEALING INSTRUCTIONS:
  - If new per-variant knobs are needed, extend VariantOptions and
    Expand() together.

RELATED FILES:
  - internal/cli/sweep.go

MAINTENANCE:
  - Update when adding new sweep dimensions.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so plans accept both "5m"-style strings
// (what the --run-timeout flag accepts) and plain integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// VariantOptions are the per-variant settings of a sweep plan entry.
type VariantOptions struct {
	NumThreads int `yaml:"num_threads"`
	Nproma     int `yaml:"nproma"`
}

// SweepPlan is the full grid of configurations to benchmark.
type SweepPlan struct {
	BuildDirParent  string                    `yaml:"build_dir_parent"`
	BuildTypes      []string                  `yaml:"build_types"`
	Precisions      []string                  `yaml:"precisions"`
	HostAlias       string                    `yaml:"host_alias"`
	NumCols         int                       `yaml:"num_cols"`
	NumRuns         int                       `yaml:"num_runs"`
	RunTimeout      Duration                  `yaml:"run_timeout"`
	OutputDirParent string                    `yaml:"output_dir_parent"`
	Variants        map[string]VariantOptions `yaml:"variants"`
}

// DefaultSweep returns a small single-machine plan, mostly useful as a
// template to copy from.
func DefaultSweep() *SweepPlan {
	return &SweepPlan{
		BuildDirParent:  "build",
		BuildTypes:      []string{"release"},
		Precisions:      []string{PrecisionDouble},
		NumCols:         16384,
		NumRuns:         10,
		OutputDirParent: "data",
		Variants: map[string]VariantOptions{
			"fortran": {NumThreads: 24, Nproma: 32},
		},
	}
}

// LoadSweep reads a sweep plan from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns the default plan.
func LoadSweep(path string) (*SweepPlan, error) {
	plan := DefaultSweep()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		defaults := []string{"sweep.yaml", "cloudsc_sweep.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			return plan, nil
		}
	}

	// yaml merges into a pre-populated map rather than replacing it, which
	// would leak the template's variants into an explicit plan. Decode into
	// an empty map; the template's variants apply only when the document
	// defines none at all.
	plan.Variants = nil
	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("failed to parse sweep plan %s: %w", path, err)
	}
	if plan.Variants == nil {
		plan.Variants = DefaultSweep().Variants
	}

	return plan, nil
}

// SweepJob is one expanded grid point: the run configuration plus the
// output it should append to.
type SweepJob struct {
	Run    RunConfig
	Output OutputConfig
	// Label identifies the grid point in logs.
	Label string
}

// Expand turns the grid into concrete jobs: build type, then precision,
// then variant, in stable order for the string-keyed dimensions.
func (p *SweepPlan) Expand() []SweepJob {
	var jobs []SweepJob
	for _, buildType := range p.BuildTypes {
		outputCSV := ""
		if p.OutputDirParent != "" {
			outputCSV = filepath.Join(p.OutputDirParent, buildType, "performance.csv")
		}
		for _, precision := range p.Precisions {
			buildDir := filepath.Join(p.BuildDirParent, buildType, precision)
			for _, variant := range sortedKeys(p.Variants) {
				opts := p.Variants[variant]
				run := DefaultRun().
					WithBuildDir(buildDir).
					WithPrecision(precision).
					WithVariant(variant).
					WithNproma(opts.Nproma).
					WithNumCols(p.NumCols).
					WithNumRuns(p.NumRuns).
					WithNumThreads(opts.NumThreads).
					WithRunTimeout(time.Duration(p.RunTimeout))
				out := DefaultOutput().
					WithOutputCSVFile(outputCSV).
					WithHostName(p.HostAlias)
				jobs = append(jobs, SweepJob{
					Run:    run,
					Output: out,
					Label:  fmt.Sprintf("%s/%s/%s", buildType, precision, variant),
				})
			}
		}
	}
	return jobs
}

func sortedKeys(m map[string]VariantOptions) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
