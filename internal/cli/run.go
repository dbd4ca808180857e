/*
PURPOSE:
  Defines the 'run' subcommand: one benchmark invocation of one variant.

REQUIREMENTS:
  User-specified:
  - Flags mirror the historic driver: --build-dir, --precision, --variant,
    --nproma, --num-cols, --num-runs, --num-threads, --host-alias,
    --output-csv-file.
  - Omitting the output file is valid: the summary is printed, nothing is
    persisted.

  Implementation-discovered:
  - --run-timeout bounds each child run; 0 keeps the historic unbounded
    behavior.
  - --output-json-file mirrors the CSV sink for structured consumers.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner.Core
  - Uses: internal/config

ERROR HANDLING:
  - Returns the engine error unwrapped; main prints it and exits 1.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: build configs via With* chain -> Core.

USAGE:
  cloudsc-bench run --variant cuda --num-cols 16384 --num-runs 20

SELF-HEALING INSTRUCTIONS:
  - Check flag names match the RunConfig fields generally.

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/config"
	"github.com/gvollenweider/dwarf-p-cloudsc/internal/engine"
)

var (
	buildDir       string
	precision      string
	variant        string
	nproma         int
	numCols        int
	numRuns        int
	numThreads     int
	runTimeout     time.Duration
	hostAlias      string
	outputCSVFile  string
	outputJSONFile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one benchmark invocation",
	Long: `Executes one full benchmark invocation of a single variant:
1. Locate <build-dir>/bin/dwarf-cloudsc-<variant>.
2. Warm-up run (output discarded; primes device/JIT caches).
3. N measured runs, each parsed for runtime and MFLOP/s.
4. Aggregation into mean/stddev, printed as a summary.
5. Optional append of one record to the CSV (and/or JSONL) table.

Any failed run aborts the invocation; nothing partial is persisted.`,
	Example: `  # One measured run of the default fortran variant
  cloudsc-bench run

  # A realistic CPU measurement
  cloudsc-bench run --variant fortran --num-cols 16384 --nproma 32 \
      --num-threads 24 --num-runs 20

  # GPU variant with persistence for cross-host comparison
  cloudsc-bench run --variant cuda --num-cols 65536 --nproma 128 \
      --num-runs 50 --host-alias daint --output-csv-file performance.csv

  # Guard against hung binaries
  cloudsc-bench run --variant gpu-scc --run-timeout 5m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run := config.DefaultRun().
			WithBuildDir(buildDir).
			WithPrecision(precision).
			WithVariant(variant).
			WithNproma(nproma).
			WithNumCols(numCols).
			WithNumRuns(numRuns).
			WithNumThreads(numThreads).
			WithRunTimeout(runTimeout)
		out := config.DefaultOutput().
			WithOutputCSVFile(outputCSVFile).
			WithOutputJSONFile(outputJSONFile).
			WithHostName(hostAlias)

		_, err := engine.NewRunner().Core(cmd.Context(), run, out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&buildDir, "build-dir", "fortran", "Path to the build directory of the dwarf")
	runCmd.Flags().StringVar(&precision, "precision", config.PrecisionDouble, "Either `double` or `single` precision")
	runCmd.Flags().StringVar(&variant, "variant", "fortran", "Code variant")
	runCmd.Flags().IntVar(&nproma, "nproma", 32, "Block size (recommended: 32 on CPUs, 128 on GPUs)")
	runCmd.Flags().IntVar(&numCols, "num-cols", 1, "Number of domain columns")
	runCmd.Flags().IntVar(&numRuns, "num-runs", 1, "Number of measured executions")
	runCmd.Flags().IntVar(&numThreads, "num-threads", 1, "Number of threads (recommended: 1 on GPUs)")
	runCmd.Flags().DurationVar(&runTimeout, "run-timeout", 0, "Bound for each child run (0 = unbounded)")
	runCmd.Flags().StringVar(&hostAlias, "host-alias", "", "Name of the host machine (optional)")
	runCmd.Flags().StringVar(&outputCSVFile, "output-csv-file", "", "CSV file to append the performance record to (optional)")
	runCmd.Flags().StringVar(&outputJSONFile, "output-json-file", "", "JSON Lines file to append the performance record to (optional)")
}
