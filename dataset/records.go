package dataset

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"slcsp/rates"
)

// Column names shared by the CSV, Parquet and PostgreSQL layouts.
const (
	colMetalLevel = "metal_level"
	colRate       = "rate"
	colRateArea   = "rate_area"
	colZipcode    = "zipcode"
)

// IsParquet reports whether path names a Parquet file.
func IsParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}

// ReadPlans loads the full plan catalog from a CSV or Parquet file.
// Any unparseable rate or rate_area fails the whole read.
func ReadPlans(path string) ([]rates.PlanRecord, error) {
	if IsParquet(path) {
		return readPlansParquet(path)
	}
	return readPlansCSV(path)
}

// ReadZips loads the full ZIP to rate area mapping from a CSV or Parquet file.
func ReadZips(path string) ([]rates.ZipRecord, error) {
	if IsParquet(path) {
		return readZipsParquet(path)
	}
	return readZipsCSV(path)
}

// ReadRequest loads the ordered list of ZIP codes to resolve. Duplicates are
// kept. Any other columns, including a blank rate column, are ignored.
func ReadRequest(path string) ([]string, error) {
	r, err := NewCSVReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cols, err := r.Columns(colZipcode)
	if err != nil {
		return nil, err
	}

	var zips []string
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", path, r.RowNum()+1, err)
		}
		zips = append(zips, field(row, cols[0]))
	}
	return zips, nil
}

func readPlansCSV(path string) ([]rates.PlanRecord, error) {
	r, err := NewCSVReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cols, err := r.Columns(colMetalLevel, colRate, colRateArea)
	if err != nil {
		return nil, err
	}

	var plans []rates.PlanRecord
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", path, r.RowNum()+1, err)
		}

		rate, err := parseRate(field(row, cols[1]))
		if err != nil {
			return nil, rowError(r, colRate, field(row, cols[1]), err)
		}
		area, err := parseRateArea(field(row, cols[2]))
		if err != nil {
			return nil, rowError(r, colRateArea, field(row, cols[2]), err)
		}

		plans = append(plans, rates.PlanRecord{
			MetalLevel: field(row, cols[0]),
			Rate:       rate,
			RateArea:   area,
		})
	}
	return plans, nil
}

func readZipsCSV(path string) ([]rates.ZipRecord, error) {
	r, err := NewCSVReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cols, err := r.Columns(colZipcode, colRateArea)
	if err != nil {
		return nil, err
	}

	var zips []rates.ZipRecord
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", path, r.RowNum()+1, err)
		}

		area, err := parseRateArea(field(row, cols[1]))
		if err != nil {
			return nil, rowError(r, colRateArea, field(row, cols[1]), err)
		}
		zips = append(zips, rates.ZipRecord{
			Zipcode:  field(row, cols[0]),
			RateArea: area,
		})
	}
	return zips, nil
}

func rowError(r *CSVReader, column, value string, err error) *RowError {
	return &RowError{Path: r.Path(), Row: r.RowNum(), Column: column, Value: value, Err: err}
}

// parseRate parses a monetary amount exactly. Thousands separators are
// tolerated; anything else non-numeric is rejected.
func parseRate(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Decimal{}, errors.New("empty rate")
	}
	return decimal.NewFromString(s)
}

func parseRateArea(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
