package core

import "sort"

// Row is a single tabular record keyed by column name. All cell values are
// strings; typed interpretation (dates, numbers) is up to the consumer.
type Row = map[string]string

// Rows is an ordered tabular row set as consumed by the filter pipeline.
type Rows []Row

// HasColumn reports whether any row carries the named column.
func (rs Rows) HasColumn(name string) bool {
	for _, r := range rs {
		if _, ok := r[name]; ok {
			return true
		}
	}
	return false
}

// Columns returns the sorted union of column names across all rows.
func (rs Rows) Columns() []string {
	seen := make(map[string]bool)
	for _, r := range rs {
		for col := range r {
			seen[col] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for col := range seen {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Clone returns a new slice sharing the underlying row maps. Filters only
// select rows, never rewrite cells, so sharing the maps is safe while the
// slice itself stays independent of the caller's.
func (rs Rows) Clone() Rows {
	if rs == nil {
		return nil
	}
	out := make(Rows, len(rs))
	copy(out, rs)
	return out
}
