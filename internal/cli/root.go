/*
PURPOSE:
  Defines the root Cobra command for the CLOUDSC benchmark driver CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --verbose.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/cloudsc-bench/main.go
  - Calls: Child commands (run, sweep, list-variants)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/cloudsc-bench/main.go

MAINTENANCE:
  - Update when adding new global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/output"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "cloudsc-bench",
		Short: "Benchmark driver for the CLOUDSC dwarf binaries",
		Long: `Drives repeated executions of externally built dwarf-cloudsc binaries,
extracts runtime and MFLOP/s from each variant's output, aggregates them
into mean/stddev summaries and optionally appends one record per invocation
to a CSV table for cross-host comparison. Use 'run --help' for the single
invocation driver and 'sweep --help' for configuration grids.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each measured run's sample")
}
