// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBReader loads a catalog through DuckDB.
//
// With Table empty, Path is scanned directly (read_parquet for .parquet files,
// read_csv_auto otherwise) using an in-memory database. With Table set, Path is
// opened as a DuckDB database file and the named table is read.
type DuckDBReader struct {
	Path  string
	Table string
}

func (r *DuckDBReader) String() string {
	if r.Table != "" {
		return r.Path + "#" + r.Table
	}
	return r.Path
}

// Read implements Reader.
func (r *DuckDBReader) Read(ctx context.Context) ([]Record, error) {
	connStr := ""
	if r.Table != "" {
		connStr = r.Path + "?access_mode=READ_ONLY"
	}

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, loadError(r.String(), "cannot open duckdb", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+r.relation())
	if err != nil {
		return nil, loadError(r.String(), "catalog query failed", err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, loadError(r.String(), "cannot read columns", err)
	}
	idx, err := columnIndex(r.String(), header)
	if err != nil {
		return nil, err
	}

	var records []Record
	dest := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	values := make([]string, len(header))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, loadError(r.String(), "cannot scan row", err)
		}
		for i, v := range dest {
			s, err := coerce(v)
			if err != nil {
				return nil, loadError(r.String(), fmt.Sprintf("row %d column %q", len(records)+1, header[i]), err)
			}
			values[i] = s
		}
		records = append(records, recordFromValues(idx, values))
	}
	if err := rows.Err(); err != nil {
		return nil, loadError(r.String(), "catalog query failed", err)
	}
	return records, nil
}

// relation returns the FROM clause target.
func (r *DuckDBReader) relation() string {
	if r.Table != "" {
		return quoteIdent(r.Table)
	}
	if strings.EqualFold(filepath.Ext(r.Path), ".parquet") {
		return "read_parquet(" + quoteLiteral(r.Path) + ")"
	}
	return "read_csv_auto(" + quoteLiteral(r.Path) + ", header = true, all_varchar = true)"
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
