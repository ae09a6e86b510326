// Package schema defines the expected column layout of the two
// inventory export formats and resolves real-world spreadsheet headers
// against it. Exports from both systems vary in header casing, spacing,
// and punctuation, so matching is tolerant of all three, but no fuzzy
// inference is done: a header either resolves to a known alias or it
// does not.
package schema

import (
	"strings"
	"unicode"
)

// Canonical column keys shared by both sources.
const (
	ColVIN    = "vin"
	ColStock  = "stock_number"
	ColStore  = "store"
	ColType   = "type"
	ColStatus = "status"
)

// ColumnSpec describes one expected spreadsheet column.
type ColumnSpec struct {
	Key      string   // canonical key, e.g. "stock_number"
	Label    string   // display name used in errors and exports, e.g. "Stock #"
	Aliases  []string // header spellings accepted for this column
	Required bool     // missing column is a schema error when true
}

// SourceSpec describes the expected column set of one export format.
type SourceSpec struct {
	Name    string // display name of the source system
	Columns []ColumnSpec
}

// Column returns the spec for a canonical key.
func (s SourceSpec) Column(key string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// HasColumn reports whether the spec declares the given canonical key.
func (s SourceSpec) HasColumn(key string) bool {
	_, ok := s.Column(key)
	return ok
}

// Resolve matches a spreadsheet header row against the spec.
// It returns a canonical key to column index map and the display labels of
// any required columns that could not be resolved.
func (s SourceSpec) Resolve(header []string) (map[string]int, []string) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeHeader(h)
	}

	idx := make(map[string]int, len(s.Columns))
	var missing []string

	for _, col := range s.Columns {
		pos := -1
		for _, alias := range col.Aliases {
			want := NormalizeHeader(alias)
			for i, h := range normalized {
				if h == want {
					pos = i
					break
				}
			}
			if pos >= 0 {
				break
			}
		}

		if pos >= 0 {
			idx[col.Key] = pos
		} else if col.Required {
			missing = append(missing, col.Label)
		}
	}

	return idx, missing
}

// NormalizeHeader canonicalizes a header cell for alias matching:
// lowercase, punctuation replaced by spaces, runs of whitespace
// collapsed to a single space.
func NormalizeHeader(h string) string {
	var b strings.Builder
	b.Grow(len(h))

	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		// Punctuation and whitespace both act as separators
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimRight(b.String(), " ")
}
