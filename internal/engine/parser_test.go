package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/engine"
)

// TestParse_CudaFamily pins the cuda-family rule: stdout, line 2,
// 4th-from-last token is runtime, 3rd-from-last is MFLOP/s.
func TestParse_CudaFamily(t *testing.T) {
	inv := engine.Invocation{
		Stdout: []byte("\n\n x 5.0 100.0 y z\n"),
	}

	for _, variant := range []string{"cuda", "cuda-hoist", "cuda-k-caching"} {
		sample, err := engine.ParseVariantOutput(variant, inv)
		require.NoError(t, err, variant)
		assert.Equal(t, 5.0, sample.RuntimeMS, variant)
		assert.Equal(t, 100.0, sample.MFlops, variant)
	}
}

// TestParse_SCCFamily pins the scc-family rule: stderr, line 3,
// 5th-from-last token is runtime, 4th-from-last is MFLOP/s.
func TestParse_SCCFamily(t *testing.T) {
	inv := engine.Invocation{
		Stdout: []byte("unrelated stdout noise\n"),
		Stderr: []byte("\n\n\n a 7.5 250.0 b c d\n"),
	}

	variants := []string{
		"gpu-omp-scc-hoist",
		"gpu-scc",
		"gpu-scc-cuf",
		"gpu-scc-cuf-k-caching",
		"gpu-scc-hoist",
		"gpu-scc-k-caching",
		"loki-scc-cuf-hoist",
		"loki-scc-hoist",
	}
	for _, variant := range variants {
		sample, err := engine.ParseVariantOutput(variant, inv)
		require.NoError(t, err, variant)
		assert.Equal(t, 7.5, sample.RuntimeMS, variant)
		assert.Equal(t, 250.0, sample.MFlops, variant)
	}
}

// TestParse_DefaultFamily pins the fallback rule used by fortran and any
// unlisted variant: stderr, second-to-last line, 5th/4th-from-last tokens.
func TestParse_DefaultFamily(t *testing.T) {
	inv := engine.Invocation{
		Stderr: []byte("banner\ncolumns 16384\nTOTAL 12 1.25 4096.0 56 78 99\n"),
	}

	for _, variant := range []string{"fortran", "gpu-omp", "something-new"} {
		sample, err := engine.ParseVariantOutput(variant, inv)
		require.NoError(t, err, variant)
		assert.Equal(t, 1.25, sample.RuntimeMS, variant)
		assert.Equal(t, 4096.0, sample.MFlops, variant)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		inv     engine.Invocation
		kind    engine.ParseKind
	}{
		{
			name:    "cuda too few lines",
			variant: "cuda",
			inv:     engine.Invocation{Stdout: []byte("only one line")},
			kind:    engine.ParseStructural,
		},
		{
			name:    "scc too few lines",
			variant: "gpu-scc",
			inv:     engine.Invocation{Stderr: []byte("a\nb\n")},
			kind:    engine.ParseStructural,
		},
		{
			name:    "default empty output",
			variant: "fortran",
			inv:     engine.Invocation{},
			kind:    engine.ParseStructural,
		},
		{
			name:    "too few tokens on the profiling line",
			variant: "cuda",
			inv:     engine.Invocation{Stdout: []byte("\n\n1.0 2.0\n")},
			kind:    engine.ParseStructural,
		},
		{
			name:    "non-numeric runtime token",
			variant: "cuda",
			inv:     engine.Invocation{Stdout: []byte("\n\n x oops 100.0 y z\n")},
			kind:    engine.ParseNumeric,
		},
		{
			name:    "non-numeric throughput token",
			variant: "fortran",
			inv:     engine.Invocation{Stderr: []byte("x 1.25 NOPE a b c\n")},
			kind:    engine.ParseNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ParseVariantOutput(tt.variant, tt.inv)
			var perr engine.ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %v", err)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.variant, perr.Variant)
		})
	}
}

// The parser never substitutes defaults: a malformed buffer must never
// yield a zero-valued sample without an error.
func TestParse_NeverSilentlyZero(t *testing.T) {
	sample, err := engine.ParseVariantOutput("cuda", engine.Invocation{})
	require.Error(t, err)
	assert.Zero(t, sample)
}

func TestKnownVariants(t *testing.T) {
	names := engine.KnownVariants()
	assert.Len(t, names, 11)
	assert.Contains(t, names, "cuda-k-caching")
	assert.Contains(t, names, "loki-scc-hoist")
	assert.NotContains(t, names, "fortran")
}
