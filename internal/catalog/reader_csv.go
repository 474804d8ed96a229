// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVReader reads a delimited catalog file with a header row.
// Files ending in .tsv are read tab-separated.
type CSVReader struct {
	Path string
}

func (r *CSVReader) String() string {
	return r.Path
}

// Read implements Reader.
func (r *CSVReader) Read(ctx context.Context) ([]Record, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, loadError(r.Path, "cannot open catalog", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(r.Path), ".tsv") {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	return readDelimited(ctx, r.Path, cr)
}

func readDelimited(ctx context.Context, path string, cr *csv.Reader) ([]Record, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, loadError(path, "catalog has no header row", nil)
	}
	if err != nil {
		return nil, loadError(path, "cannot parse header", err)
	}

	idx, err := columnIndex(path, header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, loadError(path, "read canceled", err)
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadError(path, "malformed row", err)
		}
		records = append(records, recordFromValues(idx, row))
	}
	return records, nil
}
