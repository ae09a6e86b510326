package core

// compare.go implements the inventory diff. Both tables are filtered to
// the selected (store, type) slice, keyed by normalized VIN, and walked
// in original row order so results are stable and deterministic.

// Compare diffs the two inventory tables for one store and inventory
// type. It returns a ValidationError when neither side has any rows for
// the selection; a one-sided selection is valid and reports everything
// as missing from the empty side.
func Compare(vauto, reynolds *InventoryTable, store string, invType InventoryType) (*ComparisonResult, error) {
	vautoRows := filterRecords(vauto.Records, store, invType)
	reynoldsRows := filterRecords(reynolds.Records, store, invType)

	if len(vautoRows) == 0 && len(reynoldsRows) == 0 {
		return nil, &ValidationError{Store: store, InventoryType: invType}
	}

	vautoByVIN, dupVauto := indexByVIN(vautoRows)
	reynoldsByVIN, dupReynolds := indexByVIN(reynoldsRows)

	statusCompared := vauto.HasStatus && reynolds.HasStatus

	result := &ComparisonResult{
		Store:         store,
		InventoryType: invType,
	}

	// vAuto side drives MissingFromReynolds and all pair sets, so
	// every paired output inherits vAuto row order.
	seen := make(map[string]bool, len(vautoRows))
	for _, rec := range vautoRows {
		vin := NormalizeVIN(rec.VIN)
		if seen[vin] {
			continue // duplicate collapsed by indexByVIN
		}
		seen[vin] = true

		other, ok := reynoldsByVIN[vin]
		if !ok {
			result.MissingFromReynolds = append(result.MissingFromReynolds, vautoByVIN[vin])
			continue
		}

		pair := RecordPair{Vauto: vautoByVIN[vin], Reynolds: other}
		result.Matched = append(result.Matched, pair)

		if statusCompared && !statusEqual(pair.Vauto.Status, pair.Reynolds.Status) {
			result.StatusMismatches = append(result.StatusMismatches, pair)
		}
		if NormalizeStock(pair.Vauto.StockNumber) != NormalizeStock(pair.Reynolds.StockNumber) {
			result.StockMismatches = append(result.StockMismatches, pair)
		}
	}

	seen = make(map[string]bool, len(reynoldsRows))
	for _, rec := range reynoldsRows {
		vin := NormalizeVIN(rec.VIN)
		if seen[vin] {
			continue
		}
		seen[vin] = true

		if _, ok := vautoByVIN[vin]; !ok {
			result.MissingFromVauto = append(result.MissingFromVauto, reynoldsByVIN[vin])
		}
	}

	result.Summary = Summary{
		Store:                 store,
		InventoryType:         invType,
		VautoRows:             len(vautoRows),
		ReynoldsRows:          len(reynoldsRows),
		Matched:               len(result.Matched),
		MissingFromReynolds:   len(result.MissingFromReynolds),
		MissingFromVauto:      len(result.MissingFromVauto),
		StatusMismatches:      len(result.StatusMismatches),
		StockMismatches:       len(result.StockMismatches),
		DuplicateVautoVINs:    dupVauto,
		DuplicateReynoldsVINs: dupReynolds,
		StatusCompared:        statusCompared,
		MatchRate:             matchRate(len(result.Matched), len(vautoRows), len(reynoldsRows)),
	}

	return result, nil
}

// filterRecords returns the rows of one side matching the selected
// store and inventory type, preserving row order.
func filterRecords(records []VehicleRecord, store string, invType InventoryType) []VehicleRecord {
	var out []VehicleRecord
	for _, rec := range records {
		if storeEqual(rec.Store, store) && typeMatches(rec.Type, invType) {
			out = append(out, rec)
		}
	}
	return out
}

// indexByVIN builds a normalized VIN to record map. Duplicate VINs within
// a filtered slice collapse last-write-wins; the duplicate count is
// returned so the collapse shows up in the Summary.
func indexByVIN(records []VehicleRecord) (map[string]VehicleRecord, int) {
	idx := make(map[string]VehicleRecord, len(records))
	duplicates := 0

	for _, rec := range records {
		vin := NormalizeVIN(rec.VIN)
		if _, ok := idx[vin]; ok {
			duplicates++
		}
		idx[vin] = rec
	}

	return idx, duplicates
}

// matchRate is matched vehicles over the larger side, as a percentage.
func matchRate(matched, a, b int) float64 {
	larger := a
	if b > larger {
		larger = b
	}
	if larger == 0 {
		return 0
	}
	return float64(matched) * 100 / float64(larger)
}
