// Package seriesio reads and writes float64 series as timestamp,value CSV.
// Files ending in .sz are wrapped in the snappy framing format.
package seriesio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/soltixdb/soltix-resample/internal/series"
)

// SnappyExt marks files that use snappy framing
const SnappyExt = ".sz"

var header = []string{"timestamp", "value"}

// ReadCSV parses timestamp,value rows into a series.
// A leading header row is skipped; repeated timestamps are summed.
func ReadCSV(r io.Reader) (*series.Series[float64], error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	s := series.New[float64]()
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		ts, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("line %d: invalid timestamp %q: %w", line, record[0], err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q: %w", line, record[1], err)
		}

		series.Add(s, ts, value)
	}

	return s, nil
}

// WriteCSV writes the series as a header followed by rows in ascending timestamp order
func WriteCSV(w io.Writer, s *series.Series[float64]) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, ts := range s.Timestamps() {
		value, _ := s.Get(ts)
		row := []string{
			strconv.FormatInt(ts, 10),
			strconv.FormatFloat(value, 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", ts, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Open opens path for reading, decoding snappy framing for .sz files
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if filepath.Ext(path) != SnappyExt {
		return file, nil
	}

	return &readCloser{Reader: snappy.NewReader(file), closer: file}, nil
}

// Create creates path for writing, encoding snappy framing for .sz files.
// Close must be called to flush buffered output.
func Create(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if filepath.Ext(path) != SnappyExt {
		return file, nil
	}

	return &writeCloser{Writer: snappy.NewBufferedWriter(file), file: file}, nil
}

type readCloser struct {
	io.Reader
	closer io.Closer
}

func (r *readCloser) Close() error {
	return r.closer.Close()
}

type writeCloser struct {
	*snappy.Writer
	file *os.File
}

func (w *writeCloser) Close() error {
	if err := w.Writer.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to flush snappy stream: %w", err)
	}
	return w.file.Close()
}
