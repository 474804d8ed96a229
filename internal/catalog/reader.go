// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Record is one raw catalog row with every field already coerced to a string.
type Record struct {
	Title       string
	Description string
	Genres      string
	Extra       string
	Source      string
}

// Reader produces raw catalog records from a backing data source.
type Reader interface {
	Read(ctx context.Context) ([]Record, error)
	String() string
}

// Supported catalog formats.
const (
	FormatAuto   = "auto"
	FormatCSV    = "csv"
	FormatJSONL  = "jsonl"
	FormatDuckDB = "duckdb"
)

// Column names recognized in catalog input. Matching is case-insensitive.
const (
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnGenres      = "genres"
	ColumnExtra       = "extra"
	ColumnSource      = "source"
)

var requiredColumns = []string{ColumnTitle, ColumnDescription, ColumnGenres, ColumnSource}

// Open returns a Reader for path. Format "auto" (or "") picks a reader by extension.
// Table is only used by the DuckDB reader.
func Open(format, path, table string) (Reader, error) {
	if strings.TrimSpace(path) == "" {
		return nil, loadError("", "no catalog path configured", nil)
	}

	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" || f == FormatAuto {
		f = formatFromExtension(path)
	}

	switch f {
	case FormatCSV:
		return &CSVReader{Path: path}, nil
	case FormatJSONL:
		return &JSONLReader{Path: path}, nil
	case FormatDuckDB:
		table = strings.TrimSpace(table)
		if table == "" && isDatabaseFile(path) {
			return nil, loadError(path, "table is required for .duckdb/.db catalogs", nil)
		}
		return &DuckDBReader{Path: path, Table: table}, nil
	default:
		return nil, loadError(path, fmt.Sprintf("unsupported catalog format %q", format), nil)
	}
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".parquet", ".duckdb", ".db":
		return FormatDuckDB
	default:
		return ""
	}
}

func isDatabaseFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".db":
		return true
	default:
		return false
	}
}

// columnIndex maps recognized column names to their positions in header.
// Missing optional columns map to -1.
func columnIndex(path string, header []string) (map[string]int, error) {
	idx := map[string]int{
		ColumnTitle:       -1,
		ColumnDescription: -1,
		ColumnGenres:      -1,
		ColumnExtra:       -1,
		ColumnSource:      -1,
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if pos, ok := idx[name]; ok && pos == -1 {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if idx[col] == -1 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, loadError(path, "missing required columns: "+strings.Join(missing, ", "), nil)
	}
	return idx, nil
}

// recordFromValues builds a Record from a positional row using idx.
func recordFromValues(idx map[string]int, values []string) Record {
	get := func(col string) string {
		i := idx[col]
		if i < 0 || i >= len(values) {
			return ""
		}
		return values[i]
	}
	return Record{
		Title:       get(ColumnTitle),
		Description: get(ColumnDescription),
		Genres:      get(ColumnGenres),
		Extra:       get(ColumnExtra),
		Source:      get(ColumnSource),
	}
}

// coerce converts a scalar cell value into a string.
// NULL becomes "". Composite values (lists, maps, structs) cannot be coerced.
func coerce(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case time.Time:
		return t.Format(time.RFC3339), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("cannot coerce %T to string", v)
	}
}
