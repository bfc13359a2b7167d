package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("missing required column")

// RowError describes a data row whose field could not be parsed.
type RowError struct {
	Path   string
	Row    int64
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: column %s: invalid value %q: %v", e.Path, e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// CSVReader streams a headered, comma-separated file one data row at a time.
// Column lookup is by trimmed, lowercase header name; unknown columns are
// ignored.
type CSVReader struct {
	path   string
	file   *os.File
	csv    *csv.Reader
	rowNum int64
	colIdx map[string]int
}

func NewCSVReader(path string) (*CSVReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.FieldsPerRecord = -1

	r := &CSVReader{
		path:   path,
		file:   file,
		csv:    reader,
		colIdx: make(map[string]int),
	}

	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *CSVReader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", r.path, err)
	}
	r.rowNum++

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := r.colIdx[key]; !dup {
			r.colIdx[key] = i
		}
	}
	return nil
}

// Columns resolves the indices of the named columns, failing with
// ErrMissingColumn if any is absent.
func (r *CSVReader) Columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		j, ok := r.colIdx[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w %q", r.path, ErrMissingColumn, name)
		}
		idx[i] = j
	}
	return idx, nil
}

// Next returns the next non-empty data row. Returns nil, io.EOF when done.
func (r *CSVReader) Next() ([]string, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return nil, err
		}
		r.rowNum++

		// Skip empty rows
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		return row, nil
	}
}

// Path returns the file being read.
func (r *CSVReader) Path() string {
	return r.path
}

// RowNum returns the current row number (1-based, header included).
func (r *CSVReader) RowNum() int64 {
	return r.rowNum
}

// Close closes the underlying file.
func (r *CSVReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// field returns row[idx] trimmed, or "" when the row is short.
func field(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
