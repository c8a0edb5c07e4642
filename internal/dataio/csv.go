// Package dataio ingests tabular files into domain datasets. Every cell is
// normalized at this boundary into the tri-state value type, so no later
// component ever re-parses raw strings.
package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olstudio/olstudio/pkg/domain"
)

// ReadCSV parses CSV content into a Dataset. The first record is the
// header; short rows are padded with missing values.
func ReadCSV(r io.Reader, delimiter rune) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if delimiter != 0 {
		cr.Comma = delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ValidationError{Reason: "empty file"}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	ds, err := domain.NewDataset(columns)
	if err != nil {
		return nil, err
	}

	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		record := make(map[string]domain.Value, len(columns))
		for i, name := range columns {
			if i < len(rec) {
				record[name] = domain.FromString(rec[i])
			}
		}
		if err := ds.AppendRow(record); err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
	}
	return ds, nil
}

// LoadCSVFile reads a dataset from disk, picking the delimiter from the
// file extension (.tsv means tab-separated).
func LoadCSVFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := ','
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		delim = '\t'
	}
	return ReadCSV(f, delim)
}
