package core

import "strings"

// normalize.go holds the value canonicalization rules used for
// matching. Raw values stay untouched on the records; these functions
// only produce the keys records are compared under.

// NormalizeVIN canonicalizes a VIN for matching: uppercase with all
// non-alphanumeric characters removed. Returns "" for blank cells.
func NormalizeVIN(vin string) string {
	var b strings.Builder
	b.Grow(len(vin))

	for _, r := range strings.ToUpper(strings.TrimSpace(vin)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// NormalizeStock canonicalizes a stock number: trimmed, uppercased,
// and with leading zeros stripped from all-digit values so "0042" and
// "42" match across systems.
func NormalizeStock(stock string) string {
	s := strings.ToUpper(strings.TrimSpace(stock))
	if s == "" {
		return ""
	}

	allDigits := true
	for _, r := range s {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}

	if allDigits {
		trimmed := strings.TrimLeft(s, "0")
		if trimmed == "" {
			return "0"
		}
		return trimmed
	}

	return s
}

// statusEqual compares two status values after trimming and case
// folding, so "Sold" and " SOLD " are the same status.
func statusEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// storeEqual compares a record's store against the selected store,
// case-insensitively on trimmed values.
func storeEqual(recordStore, selected string) bool {
	return strings.EqualFold(strings.TrimSpace(recordStore), strings.TrimSpace(selected))
}

// typeMatches reports whether a raw type cell denotes the selected
// inventory type. Exports write "New", "NEW", "N", "Used", "U", etc.
func typeMatches(raw string, invType InventoryType) bool {
	parsed, err := ParseInventoryType(raw)
	if err != nil {
		return false
	}
	return parsed == invType
}

// cleanCell trims surrounding whitespace, including the non-breaking
// spaces some exports pad cells with.
func cleanCell(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\u00a0'
	})
}
