package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// resultHeader is the external tabular interface; column order is fixed.
// Mount option strings may contain commas, so rows go through encoding/csv,
// which quotes the field instead of leaving the row ambiguous.
var resultHeader = []string{"filesystem", "mount_options", "direct_write_speed", "buffered_write_speed", "read_speed"}

// Store is the append-only CSV persistence for benchmark records. Each
// append is flushed and fsynced before it returns: rows are expensive,
// hard-to-reproduce measurements and must survive a crash mid-matrix.
type Store struct {
	path string
}

// NewStore returns a store backed by the CSV file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Initialize prepares the backing file. With truncate, the store is
// recreated empty with only the header (a full matrix run always starts
// clean). Without it, an existing store is left alone and a missing one is
// created with the header, so single manual tests append to prior results.
func (s *Store) Initialize(truncate bool) error {
	if !truncate {
		if _, err := os.Stat(s.path); err == nil {
			return nil
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return &StoreError{Op: "initialize", Path: s.path, Err: err}
	}
	w := csv.NewWriter(f)
	if err := w.Write(resultHeader); err != nil {
		f.Close()
		return &StoreError{Op: "initialize", Path: s.path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &StoreError{Op: "initialize", Path: s.path, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return &StoreError{Op: "initialize", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &StoreError{Op: "initialize", Path: s.path, Err: err}
	}
	return nil
}

// Append durably writes one record as a CSV row, creating the store with a
// header first when it does not exist yet.
func (s *Store) Append(rec BenchmarkRecord) error {
	if err := s.Initialize(false); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &StoreError{Op: "append", Path: s.path, Err: err}
	}
	w := csv.NewWriter(f)
	row := []string{
		rec.Filesystem,
		rec.MountOptions,
		formatSpeed(rec.DirectWriteMBs),
		formatSpeed(rec.BufferedWriteMBs),
		formatSpeed(rec.ReadMBs),
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return &StoreError{Op: "append", Path: s.path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &StoreError{Op: "append", Path: s.path, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return &StoreError{Op: "append", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &StoreError{Op: "append", Path: s.path, Err: err}
	}
	return nil
}

// ReadAll returns every record in insertion order, header excluded.
// Malformed rows (wrong column count, non-numeric or negative speeds) are
// skipped with a warning rather than failing the whole read.
func (s *Store) ReadAll() ([]BenchmarkRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &StoreError{Op: "read", Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row length checked below so bad rows skip, not fail

	var records []BenchmarkRecord
	rowIdx := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		rowIdx++
		if err != nil {
			logrus.Warnf("skipping malformed row %d in %s: %v", rowIdx, s.path, err)
			continue
		}
		if rowIdx == 1 && len(row) > 0 && row[0] == resultHeader[0] {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			logrus.Warnf("skipping malformed row %d in %s: %v", rowIdx, s.path, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (BenchmarkRecord, error) {
	if len(row) != len(resultHeader) {
		return BenchmarkRecord{}, fmt.Errorf("expected %d columns, got %d", len(resultHeader), len(row))
	}
	rec := BenchmarkRecord{Filesystem: row[0], MountOptions: row[1]}
	speeds := []struct {
		name  string
		value string
		dst   *float64
	}{
		{"direct_write_speed", row[2], &rec.DirectWriteMBs},
		{"buffered_write_speed", row[3], &rec.BufferedWriteMBs},
		{"read_speed", row[4], &rec.ReadMBs},
	}
	for _, s := range speeds {
		v, err := strconv.ParseFloat(s.value, 64)
		if err != nil {
			return BenchmarkRecord{}, fmt.Errorf("invalid %s %q: %w", s.name, s.value, err)
		}
		if v < 0 {
			return BenchmarkRecord{}, fmt.Errorf("negative %s %q", s.name, s.value)
		}
		*s.dst = v
	}
	return rec, nil
}

func formatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
