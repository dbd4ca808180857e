/*
PURPOSE:
  Defines the 'list-variants' subcommand.
  Shows which variants have an explicit output layout and which binaries
  are actually present in a build directory.

REQUIREMENTS:
  User-specified:
  - Help operators see what can be benchmarked before starting a sweep.

  Implementation-discovered:
  - Unlisted binaries are still runnable (default layout); mark them so.

ARCHITECTURE INTEGRATION:
  - Uses: internal/engine (layout table)

ERROR HANDLING:
  - A missing bin directory is reported, not fatal: the layout table is
    still printed.

IMPLEMENTATION RULES:
  - Pure inspection; never spawns a binary.

USAGE:
  cloudsc-bench list-variants --build-dir build/release/double

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/parser.go

MAINTENANCE:
  - Nothing to do here when variants change; the layout table drives it.
*/

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/engine"
)

var listBuildDir string

var listVariantsCmd = &cobra.Command{
	Use:   "list-variants",
	Short: "List known variant layouts and available binaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := engine.KnownVariants()
		sort.Strings(names)

		fmt.Println("Variants with an explicit output layout:")
		for _, name := range names {
			fmt.Printf("- %s\n", name)
		}
		fmt.Println("Any other variant is parsed with the default (fortran) layout.")

		if listBuildDir == "" {
			return nil
		}

		binDir := filepath.Join(listBuildDir, "bin")
		entries, err := os.ReadDir(binDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot read %s: %v\n", binDir, err)
			return nil
		}

		fmt.Printf("\nBinaries under %s:\n", binDir)
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			variant, ok := strings.CutPrefix(entry.Name(), "dwarf-cloudsc-")
			if !ok {
				continue
			}
			note := "default layout"
			if containsSorted(names, variant) {
				note = "explicit layout"
			}
			fmt.Printf("- %s (%s)\n", variant, note)
		}

		return nil
	},
}

func containsSorted(sorted []string, name string) bool {
	i := sort.SearchStrings(sorted, name)
	return i < len(sorted) && sorted[i] == name
}

func init() {
	rootCmd.AddCommand(listVariantsCmd)
	listVariantsCmd.Flags().StringVar(&listBuildDir, "build-dir", "", "Build directory to scan for dwarf-cloudsc-* binaries")
}
