package core

import (
	"fmt"
	"sort"
	"strings"
)

// Source identifies which inventory system a table came from.
type Source string

const (
	SourceVauto    Source = "vAuto"
	SourceReynolds Source = "Reynolds"
)

// InventoryType partitions inventory into new and used vehicles.
type InventoryType string

const (
	TypeNew  InventoryType = "NEW"
	TypeUsed InventoryType = "USED"
)

// ParseInventoryType parses a user-supplied inventory type selector.
// Accepts the single-letter forms some exports use ("N"/"U").
func ParseInventoryType(s string) (InventoryType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NEW", "N":
		return TypeNew, nil
	case "USED", "U":
		return TypeUsed, nil
	default:
		return "", fmt.Errorf("invalid inventory type %q (want NEW or USED)", s)
	}
}

// VehicleRecord is one vehicle row from an inventory export.
// Field values are kept exactly as they appeared in the file; the
// normalized forms used for matching are computed on demand.
type VehicleRecord struct {
	VIN         string `json:"vin"`
	StockNumber string `json:"stockNumber"`
	Store       string `json:"store"`
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`

	// Row is the 1-based spreadsheet row the record came from.
	Row int `json:"row"`
}

// InventoryTable is the parsed contents of one upload. Tables are
// immutable once built: comparisons read them, never modify them.
type InventoryTable struct {
	Source   Source          `json:"source"`
	FileName string          `json:"fileName"`
	Records  []VehicleRecord `json:"records"`

	// HasStatus is false when the export carried no status column,
	// in which case status comparison against this side is skipped.
	HasStatus bool `json:"hasStatus"`

	// SkippedRows counts data rows dropped for having no VIN.
	SkippedRows int `json:"skippedRows"`
}

// Stores returns the distinct trimmed store names in the table, sorted,
// preserving the casing of each store's first occurrence.
func (t *InventoryTable) Stores() []string {
	seen := make(map[string]string)
	var order []string

	for _, rec := range t.Records {
		store := strings.TrimSpace(rec.Store)
		if store == "" {
			continue
		}
		key := strings.ToUpper(store)
		if _, ok := seen[key]; !ok {
			seen[key] = store
			order = append(order, key)
		}
	}

	names := make([]string, 0, len(order))
	for _, key := range order {
		names = append(names, seen[key])
	}
	sort.Strings(names)
	return names
}

// RecordPair holds the two sides of a vehicle matched by VIN, for
// side-by-side display of disagreeing fields.
type RecordPair struct {
	Vauto    VehicleRecord `json:"vauto"`
	Reynolds VehicleRecord `json:"reynolds"`
}

// Summary holds the headline counts for one comparison.
type Summary struct {
	Store         string        `json:"store"`
	InventoryType InventoryType `json:"inventoryType"`

	VautoRows    int `json:"vautoRows"`    // filtered vAuto row count
	ReynoldsRows int `json:"reynoldsRows"` // filtered Reynolds row count

	Matched             int `json:"matched"`
	MissingFromReynolds int `json:"missingFromReynolds"`
	MissingFromVauto    int `json:"missingFromVauto"`
	StatusMismatches    int `json:"statusMismatches"`
	StockMismatches     int `json:"stockMismatches"`

	// Duplicate VINs collapse last-write-wins; the counts make the
	// collapse visible instead of silent.
	DuplicateVautoVINs    int `json:"duplicateVautoVins"`
	DuplicateReynoldsVINs int `json:"duplicateReynoldsVins"`

	// StatusCompared is false when one side had no status column and
	// status mismatch detection was skipped for the whole run.
	StatusCompared bool `json:"statusCompared"`

	// MatchRate is Matched over the larger filtered side, 0-100.
	MatchRate float64 `json:"matchRate"`
}

// ComparisonResult is the outcome of diffing one (store, type) slice of
// the two tables. It is built fresh on every request and never mutated.
type ComparisonResult struct {
	Store         string        `json:"store"`
	InventoryType InventoryType `json:"inventoryType"`

	// MissingFromReynolds are vAuto vehicles with no Reynolds match,
	// in original vAuto row order.
	MissingFromReynolds []VehicleRecord `json:"missingFromReynolds"`

	// MissingFromVauto are Reynolds vehicles with no vAuto match,
	// in original Reynolds row order.
	MissingFromVauto []VehicleRecord `json:"missingFromVauto"`

	// StatusMismatches are matched vehicles whose statuses disagree
	// after trimming and case folding.
	StatusMismatches []RecordPair `json:"statusMismatches"`

	// StockMismatches are matched vehicles whose normalized stock
	// numbers disagree.
	StockMismatches []RecordPair `json:"stockMismatches"`

	// Matched are all VIN matches, kept for the full audit export.
	Matched []RecordPair `json:"matched"`

	Summary Summary `json:"summary"`
}
