/*
PURPOSE:
  Appends performance records to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Append-only: never overwrite prior rows; the same performance.csv
    accumulates invocations across runs and hosts.
  - Write the header exactly once, when the file is created (or empty).

  Implementation-discovered:
  - O_APPEND|O_CREATE plus a size check covers "new file" and "existing
    empty file" with one rule.
  - Concurrent multi-process sweeps appending to one file can race on
    creation; known limitation, single-writer is assumed.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.PerformanceRecord

ERROR HANDLING:
  - Returns plain errors; the engine classifies them as PersistenceError.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Mutex guards the writer; sweeps are sequential today but the writer
    should not care.

USAGE:
  w, err := output.NewCSVAppender("performance.csv")
  w.Append(record)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If the CSV format changes, update model.Header()/Record(), not this
    file.

RELATED FILES:
  - internal/model/types.go
  - internal/output/json.go

MAINTENANCE:
  - Update if a file-locking scheme ever addresses the multi-writer race.
*/

package output

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/gvollenweider/dwarf-p-cloudsc/internal/model"
)

// CSVAppender appends performance records to a CSV file.
type CSVAppender struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVAppender opens (or creates) the file in append mode. The header is
// written only when the file is new or empty.
func NewCSVAppender(path string) (*CSVAppender, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)

	if info.Size() == 0 {
		if err := w.Write(model.Header()); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSVAppender{
		file:   f,
		writer: w,
	}, nil
}

// Append writes a single record. It is thread-safe.
func (ca *CSVAppender) Append(r model.PerformanceRecord) error {
	ca.mu.Lock()
	defer ca.mu.Unlock()

	if err := ca.writer.Write(r.Record()); err != nil {
		return err
	}
	ca.writer.Flush()
	return ca.writer.Error()
}

// Close closes the underlying file.
func (ca *CSVAppender) Close() error {
	ca.writer.Flush()
	return ca.file.Close()
}
