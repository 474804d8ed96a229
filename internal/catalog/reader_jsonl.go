// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// maxJSONLLine bounds a single catalog line.
const maxJSONLLine = 4 * 1024 * 1024

// JSONLReader reads one JSON object per line. Blank lines are skipped.
type JSONLReader struct {
	Path string
}

func (r *JSONLReader) String() string {
	return r.Path
}

// Read implements Reader.
func (r *JSONLReader) Read(ctx context.Context) ([]Record, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, loadError(r.Path, "cannot open catalog", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)

	var records []Record
	sawRequired := map[string]bool{}
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, loadError(r.Path, "read canceled", err)
		}
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, loadError(r.Path, fmt.Sprintf("line %d: invalid JSON", line), err)
		}

		fields := make(map[string]string, len(obj))
		for k, v := range obj {
			s, err := coerce(v)
			if err != nil {
				return nil, loadError(r.Path, fmt.Sprintf("line %d: field %q", line, k), err)
			}
			key := strings.ToLower(strings.TrimSpace(k))
			fields[key] = s
			sawRequired[key] = true
		}
		records = append(records, Record{
			Title:       fields[ColumnTitle],
			Description: fields[ColumnDescription],
			Genres:      fields[ColumnGenres],
			Extra:       fields[ColumnExtra],
			Source:      fields[ColumnSource],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, loadError(r.Path, "cannot read catalog", err)
	}

	if len(records) > 0 {
		var missing []string
		for _, col := range requiredColumns {
			if !sawRequired[col] {
				missing = append(missing, col)
			}
		}
		if len(missing) > 0 {
			return nil, loadError(r.Path, "missing required columns: "+strings.Join(missing, ", "), nil)
		}
	}
	return records, nil
}
