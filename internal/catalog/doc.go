// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog holds the normalized film records that Marquee recommends from.

A catalog is produced offline by merging several raw datasets into one table with
the columns title, description, genres, source and an optional extra column. This
package reads that table, normalizes every field to a trimmed string, drops rows
without a title and derives the searchable text for each item.

# Search Text

SearchText is built once at load time and never mutated afterward. Fields are
concatenated in a fixed order:

	title, genres, description, extra

joined by a single space, with empty fields skipped. The same function must be used
anywhere search text is computed so that catalog and query embeddings stay comparable.

# Readers

Three readers are available:

  - CSVReader: comma or tab separated file with a header row
  - JSONLReader: one JSON object per line
  - DuckDBReader: any file DuckDB can scan (CSV, Parquet) or a table in a DuckDB database

Open selects a reader from an explicit format or from the file extension.

# Errors

Every failure to read or parse the backing data wraps ErrDataLoad. Rows with a
missing title are not errors; they are counted in Catalog.Dropped.
*/
package catalog
