package output_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/output"
)

func TestJSONAppender_OneObjectPerInvocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "performance.jsonl")

	for _, variant := range []string{"fortran", "cuda"} {
		w, err := output.NewJSONAppender(path)
		require.NoError(t, err)
		require.NoError(t, w.Append(sampleRecord(variant)))
		require.NoError(t, w.Close())
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var variants []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &decoded))
		variants = append(variants, decoded["variant"].(string))
		assert.Equal(t, float64(16384), decoded["num_cols"])
		assert.Equal(t, "daint", decoded["host"])
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"fortran", "cuda"}, variants)
}
