/*
PURPOSE:
  Defines the 'sweep' subcommand: run a YAML-described grid of benchmark
  configurations back to back on one host.

REQUIREMENTS:
  User-specified:
  - Grid dimensions: build types x precisions x variants, with shared
    num_cols/num_runs and per-variant thread/block settings.
  - A failed configuration is logged and the sweep continues with the next
    one; the exit code still reports that something failed.

  Implementation-discovered:
  - Output directories are derived per build type and created up front,
    matching the historic sweep scripts.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner.Sweep
  - Uses: internal/config (sweep plan)

ERROR HANDLING:
  - Plan load/parse errors abort before anything runs.

IMPLEMENTATION RULES:
  - Logic: LoadSweep -> overrides -> Expand -> Runner.Sweep.

USAGE:
  cloudsc-bench sweep -f lumi_sweep.yaml

SELF-HEALING INSTRUCTIONS:
  - If a grid dimension is missing, extend config.SweepPlan, not this file.

RELATED FILES:
  - internal/config/sweep.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update when adding new sweep overrides.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/config"
	"github.com/gvollenweider/dwarf-p-cloudsc/internal/engine"
)

var (
	sweepFile         string
	sweepHostOverride string
	sweepRunsOverride int
	sweepColsOverride int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a grid of benchmark configurations",
	Long: `Expands a YAML sweep plan into concrete invocations (build type x
precision x variant) and runs them sequentially. Each build type appends to
its own <output_dir_parent>/<build_type>/performance.csv. A failing
configuration does not stop the sweep; it is logged and the remaining grid
still runs.`,
	Example: `  # Use ./sweep.yaml (or the built-in template plan)
  cloudsc-bench sweep

  # Explicit plan with overrides
  cloudsc-bench sweep -f lumi_sweep.yaml --host-alias lumi --num-runs 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := config.LoadSweep(sweepFile)
		if err != nil {
			return err
		}

		if sweepHostOverride != "" {
			plan.HostAlias = sweepHostOverride
		}
		if sweepRunsOverride > 0 {
			plan.NumRuns = sweepRunsOverride
		}
		if sweepColsOverride > 0 {
			plan.NumCols = sweepColsOverride
		}

		jobs := plan.Expand()
		if len(jobs) == 0 {
			return fmt.Errorf("sweep plan expands to no configurations")
		}

		return engine.NewRunner().Sweep(cmd.Context(), jobs)
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&sweepFile, "plan", "f", "", "Sweep plan file (default: ./sweep.yaml)")
	sweepCmd.Flags().StringVar(&sweepHostOverride, "host-alias", "", "Override the plan's host alias")
	sweepCmd.Flags().IntVar(&sweepRunsOverride, "num-runs", 0, "Override the plan's number of runs")
	sweepCmd.Flags().IntVar(&sweepColsOverride, "num-cols", 0, "Override the plan's number of columns")
}
