/*
PURPOSE:
  Appends performance records to a JSON Lines file. Optional companion to
  the CSV sink for consumers that prefer structured records.

REQUIREMENTS:
  User-specified:
  - Same append-only semantics as the CSV sink; one object per invocation.

  Implementation-discovered:
  - JSON Lines needs no header, so append mode alone is enough.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.PerformanceRecord

ERROR HANDLING:
  - Returns plain errors; the engine classifies them as PersistenceError.

IMPLEMENTATION RULES:
  - One json.Encoder, one line per Encode call.

USAGE:
  w, err := output.NewJSONAppender("performance.jsonl")
  w.Append(record)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/csv.go

MAINTENANCE:
  - Update field tags alongside model.PerformanceRecord.
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/model"
)

// JSONAppender appends records to a JSON Lines file.
type JSONAppender struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONAppender opens (or creates) the file in append mode.
func NewJSONAppender(path string) (*JSONAppender, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &JSONAppender{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Append writes a single record as a JSON line. It is thread-safe.
func (ja *JSONAppender) Append(r model.PerformanceRecord) error {
	ja.mu.Lock()
	defer ja.mu.Unlock()

	return ja.encoder.Encode(jsonRecord{
		Host:          r.Host,
		Precision:     r.Precision,
		Variant:       r.Variant,
		NumCols:       r.NumCols,
		NumThreads:    r.NumThreads,
		Nproma:        r.Nproma,
		NumRuns:       r.NumRuns,
		RuntimeMean:   r.RuntimeMean,
		RuntimeStddev: r.RuntimeStddev,
		MFlopsMean:    r.MFlopsMean,
		MFlopsStddev:  r.MFlopsStddev,
	})
}

// Close closes the underlying file.
func (ja *JSONAppender) Close() error {
	return ja.file.Close()
}

// jsonRecord pins the wire field names independently of the model struct.
type jsonRecord struct {
	Host          string  `json:"host"`
	Precision     string  `json:"precision"`
	Variant       string  `json:"variant"`
	NumCols       int     `json:"num_cols"`
	NumThreads    int     `json:"num_threads"`
	Nproma        int     `json:"nproma"`
	NumRuns       int     `json:"num_runs"`
	RuntimeMean   float64 `json:"runtime_mean"`
	RuntimeStddev float64 `json:"runtime_stddev"`
	MFlopsMean    float64 `json:"mflops_mean"`
	MFlopsStddev  float64 `json:"mflops_stddev"`
}
