package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"slcsp/rates"
)

// PlanRow is the Parquet layout of one plan catalog row. Rate is kept as
// decimal text so the value round-trips exactly.
type PlanRow struct {
	MetalLevel string `parquet:"metal_level,dict"`
	Rate       string `parquet:"rate"`
	RateArea   int64  `parquet:"rate_area"`
}

// ZipRow is the Parquet layout of one ZIP to rate area row.
type ZipRow struct {
	Zipcode  string `parquet:"zipcode"`
	RateArea int64  `parquet:"rate_area"`
}

// ParquetWriter writes rows of T to a zstd-compressed Parquet file.
type ParquetWriter[T any] struct {
	file   *os.File
	writer *parquet.GenericWriter[T]
	count  int
}

// NewParquetWriter creates filename and prepares it for rows of T.
func NewParquetWriter[T any](filename string) (*ParquetWriter[T], error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[T](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.PageBufferSize(8*1024),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("slcsp", "1.0", ""),
	)

	return &ParquetWriter[T]{
		file:   file,
		writer: writer,
	}, nil
}

// Write writes a batch of rows.
func (w *ParquetWriter[T]) Write(rows []T) (int, error) {
	n, err := w.writer.Write(rows)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Close flushes the final row group and closes the file.
func (w *ParquetWriter[T]) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the total number of rows written.
func (w *ParquetWriter[T]) Count() int {
	return w.count
}

// readParquet reads every row of T from path.
func readParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[T](f)
	defer reader.Close()

	const readBatch = 8192
	buf := make([]T, readBatch)
	out := make([]T, 0, reader.NumRows())

	for {
		n, readErr := reader.Read(buf)
		out = append(out, buf[:n]...)
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
	}
	return out, nil
}

func readPlansParquet(path string) ([]rates.PlanRecord, error) {
	rows, err := readParquet[PlanRow](path)
	if err != nil {
		return nil, err
	}

	plans := make([]rates.PlanRecord, 0, len(rows))
	for i, row := range rows {
		rate, err := parseRate(row.Rate)
		if err != nil {
			return nil, &RowError{Path: path, Row: int64(i + 1), Column: colRate, Value: row.Rate, Err: err}
		}
		plans = append(plans, rates.PlanRecord{
			MetalLevel: row.MetalLevel,
			Rate:       rate,
			RateArea:   int(row.RateArea),
		})
	}
	return plans, nil
}

func readZipsParquet(path string) ([]rates.ZipRecord, error) {
	rows, err := readParquet[ZipRow](path)
	if err != nil {
		return nil, err
	}

	zips := make([]rates.ZipRecord, len(rows))
	for i, row := range rows {
		zips[i] = rates.ZipRecord{Zipcode: row.Zipcode, RateArea: int(row.RateArea)}
	}
	return zips, nil
}

func planRows(plans []rates.PlanRecord) []PlanRow {
	rows := make([]PlanRow, len(plans))
	for i, p := range plans {
		rows[i] = PlanRow{MetalLevel: p.MetalLevel, Rate: p.Rate.String(), RateArea: int64(p.RateArea)}
	}
	return rows
}

func zipRows(zips []rates.ZipRecord) []ZipRow {
	rows := make([]ZipRow, len(zips))
	for i, z := range zips {
		rows[i] = ZipRow{Zipcode: z.Zipcode, RateArea: int64(z.RateArea)}
	}
	return rows
}

// Kind names a reference dataset.
type Kind string

const (
	KindPlans Kind = "plans"
	KindZips  Kind = "zips"
)

// ConvertToParquet reads a plans or zips CSV, validating every row, and
// writes it to outputPath in the Parquet layout. Returns the rows written.
func ConvertToParquet(kind Kind, inputPath, outputPath string) (int, error) {
	switch kind {
	case KindPlans:
		plans, err := readPlansCSV(inputPath)
		if err != nil {
			return 0, err
		}
		return writeParquet(outputPath, planRows(plans))
	case KindZips:
		zips, err := readZipsCSV(inputPath)
		if err != nil {
			return 0, err
		}
		return writeParquet(outputPath, zipRows(zips))
	default:
		return 0, fmt.Errorf("unknown dataset kind %q", kind)
	}
}

func writeParquet[T any](path string, rows []T) (int, error) {
	w, err := NewParquetWriter[T](path)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(rows); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return w.Count(), nil
}
