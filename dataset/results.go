package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"slcsp/rates"
)

// EncodeResults writes the zipcode,rate table for results to w.
func EncodeResults(w io.Writer, results []rates.ResolvedRate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{colZipcode, colRate}); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Zipcode, r.RateString()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResults writes the results table to path. The table is written to a
// temporary file next to path and renamed into place, so path is either the
// complete table or untouched.
func WriteResults(path string, results []rates.ResolvedRate) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err := EncodeResults(bw, results); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
