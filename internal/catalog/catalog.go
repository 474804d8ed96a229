// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
)

// Catalog is the loaded, normalized item table. It is read-only after Load.
type Catalog struct {
	items   []Item
	sources []Source
	counts  map[Source]int

	// Dropped is the number of input rows discarded for having no title.
	Dropped int

	// Origin describes where the catalog was read from.
	Origin string
}

// Load reads every record from r, normalizes them and derives search text.
// Rows with a blank title are dropped. An empty result is a DataLoadError.
func Load(ctx context.Context, r Reader) (*Catalog, error) {
	records, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		items:  make([]Item, 0, len(records)),
		counts: make(map[Source]int),
		Origin: r.String(),
	}
	for i := range records {
		it := newItem(records[i])
		if it.Title == "" {
			c.Dropped++
			continue
		}
		if _, seen := c.counts[it.Source]; !seen {
			c.sources = append(c.sources, it.Source)
		}
		c.counts[it.Source]++
		c.items = append(c.items, it)
	}

	if len(c.items) == 0 {
		return nil, loadError(r.String(), fmt.Sprintf("catalog is empty (%d rows dropped)", c.Dropped), nil)
	}
	return c, nil
}

// New builds a catalog directly from items, deriving SearchText for each.
// Blank titles are dropped, as with Load.
func New(items ...Item) (*Catalog, error) {
	records := make([]Record, len(items))
	for i := range items {
		records[i] = Record{
			Title:       items[i].Title,
			Description: items[i].Description,
			Genres:      items[i].Genres,
			Extra:       items[i].Extra,
			Source:      string(items[i].Source),
		}
	}
	return Load(context.Background(), recordReader(records))
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the items in catalog order. Callers must not modify the slice.
func (c *Catalog) Items() []Item {
	return c.items
}

// Item returns the item at index i.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// SearchTexts returns the SearchText of every item, in catalog order.
func (c *Catalog) SearchTexts() []string {
	out := make([]string, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].SearchText
	}
	return out
}

// Sources returns the distinct sources in first-seen order.
func (c *Catalog) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// CountBySource returns the number of items per source.
func (c *Catalog) CountBySource() map[Source]int {
	out := make(map[Source]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

type recordReader []Record

func (r recordReader) Read(context.Context) ([]Record, error) { return r, nil }
func (r recordReader) String() string                         { return "memory" }
