/*
PURPOSE:
  Extracts (runtime, MFLOP/s) from the captured output of one benchmark
  run. Each variant family prints its profiling banner at a different fixed
  position in a different stream; this file owns those layout rules.

REQUIREMENTS:
  User-specified:
  - cuda family (cuda, cuda-hoist, cuda-k-caching): stdout, line 2,
    4th-from-last token = runtime, 3rd-from-last = MFLOP/s.
  - scc family (gpu-omp-scc-hoist, gpu-scc, gpu-scc-cuf,
    gpu-scc-cuf-k-caching, gpu-scc-hoist, gpu-scc-k-caching,
    loki-scc-cuf-hoist, loki-scc-hoist): stderr, line 3, 5th-from-last =
    runtime, 4th-from-last = MFLOP/s.
  - everything else (fortran and unlisted variants): stderr,
    second-to-last line, 5th-from-last = runtime, 4th-from-last = MFLOP/s.
  - Malformed output fails loudly; silently substituting a default would
    corrupt benchmark data, which is strictly worse than a visible crash.

  Implementation-discovered:
  - One layout descriptor per family, dispatched through a map, so a new
    variant is a one-line data addition rather than new control flow.
  - These offsets are fragile by construction: they track the banner
    formats of the upstream toolchains. Any upstream banner change shows up
    here as a ParseError, never as a wrong number.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go (once per measured run)
  - Consumes: Invocation from executor.go

ERROR HANDLING:
  - Missing line or token -> ParseError{Kind: ParseStructural}.
  - Non-numeric token -> ParseError{Kind: ParseNumeric}.

IMPLEMENTATION RULES:
  - Line split on "\n"; token split on any whitespace discarding empties
    (strings.Fields), matching how the binaries pad their columns.
  - Token offsets count from the END of the line; leading columns differ
    across compilers, trailing ones do not.
  - Negative line index counts from the end of the line-split output.

USAGE:
  sample, err := engine.ParseVariantOutput("cuda", inv)

SELF-HEALING INSTRUCTIONS:
  - New variant with a known family: add its name to the family's list.
  - New banner format: add a layout and a family entry, plus a fixture in
    parser_test.go.

RELATED FILES:
  - internal/engine/runner.go
  - internal/cli/list_variants.go

MAINTENANCE:
  - Review whenever the dwarf's upstream toolchains are upgraded.
*/

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/model"
)

// streamSelector picks which captured stream a family's banner lives in.
type streamSelector int

const (
	streamStdout streamSelector = iota
	streamStderr
)

func (s streamSelector) String() string {
	if s == streamStdout {
		return "stdout"
	}
	return "stderr"
}

// VariantLayout locates the two numeric fields inside a family's banner.
// LineIndex counts from the start of the line-split output when >= 0 and
// from its end when negative (-1 is the last line). Token offsets count
// backwards from the end of the whitespace-split line (1 is the last
// token).
type VariantLayout struct {
	Stream         streamSelector
	LineIndex      int
	RuntimeFromEnd int
	MFlopsFromEnd  int
}

// Layout families. The variant set is closed and controlled by the same
// project that ships the binaries, so hard-coded offsets beat a general
// parser here.
var (
	cudaLayout = VariantLayout{Stream: streamStdout, LineIndex: 2, RuntimeFromEnd: 4, MFlopsFromEnd: 3}
	sccLayout  = VariantLayout{Stream: streamStderr, LineIndex: 3, RuntimeFromEnd: 5, MFlopsFromEnd: 4}
	// defaultLayout covers fortran and every unlisted variant.
	defaultLayout = VariantLayout{Stream: streamStderr, LineIndex: -2, RuntimeFromEnd: 5, MFlopsFromEnd: 4}
)

var variantLayouts = map[string]VariantLayout{
	"cuda":           cudaLayout,
	"cuda-hoist":     cudaLayout,
	"cuda-k-caching": cudaLayout,

	"gpu-omp-scc-hoist":     sccLayout,
	"gpu-scc":               sccLayout,
	"gpu-scc-cuf":           sccLayout,
	"gpu-scc-cuf-k-caching": sccLayout,
	"gpu-scc-hoist":         sccLayout,
	"gpu-scc-k-caching":     sccLayout,
	"loki-scc-cuf-hoist":    sccLayout,
	"loki-scc-hoist":        sccLayout,
}

// LayoutFor returns the layout rule applied to a variant's output.
func LayoutFor(variant string) VariantLayout {
	if layout, ok := variantLayouts[variant]; ok {
		return layout
	}
	return defaultLayout
}

// KnownVariants lists the variants with an explicit (non-default) layout.
func KnownVariants() []string {
	names := make([]string, 0, len(variantLayouts))
	for name := range variantLayouts {
		names = append(names, name)
	}
	return names
}

// ParseVariantOutput extracts the (runtime, MFLOP/s) sample from one
// successful run's captured output.
func ParseVariantOutput(variant string, inv Invocation) (model.Sample, error) {
	layout := LayoutFor(variant)

	raw := inv.Stderr
	if layout.Stream == streamStdout {
		raw = inv.Stdout
	}

	lines := strings.Split(string(raw), "\n")
	idx := layout.LineIndex
	if idx < 0 {
		idx += len(lines)
	}
	if idx < 0 || idx >= len(lines) {
		return model.Sample{}, ParseError{
			Variant: variant,
			Kind:    ParseStructural,
			Detail: fmt.Sprintf("expected line %d of %s, got %d line(s)",
				layout.LineIndex, layout.Stream, len(lines)),
		}
	}

	tokens := strings.Fields(lines[idx])

	runtime, err := tokenFromEnd(variant, tokens, layout.RuntimeFromEnd, "runtime")
	if err != nil {
		return model.Sample{}, err
	}
	mflops, err := tokenFromEnd(variant, tokens, layout.MFlopsFromEnd, "mflops")
	if err != nil {
		return model.Sample{}, err
	}

	return model.Sample{RuntimeMS: runtime, MFlops: mflops}, nil
}

// tokenFromEnd parses the offset-th token counted from the end of the line.
func tokenFromEnd(variant string, tokens []string, offset int, field string) (float64, error) {
	pos := len(tokens) - offset
	if pos < 0 || pos >= len(tokens) {
		return 0, ParseError{
			Variant: variant,
			Kind:    ParseStructural,
			Detail: fmt.Sprintf("%s field expected at %d-from-last, line has %d token(s)",
				field, offset, len(tokens)),
		}
	}
	v, err := strconv.ParseFloat(tokens[pos], 64)
	if err != nil {
		return 0, ParseError{
			Variant: variant,
			Kind:    ParseNumeric,
			Detail:  fmt.Sprintf("%s field %q is not a number", field, tokens[pos]),
		}
	}
	return v, nil
}
