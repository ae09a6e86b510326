package core

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Report sheet names, in workbook order.
const (
	sheetMissingReynolds = "Missing in Reynolds"
	sheetMissingVauto    = "Missing in vAuto"
	sheetStatusMismatch  = "Status Mismatches"
	sheetStockMismatch   = "Stock Mismatches"
	sheetMatched         = "Matched"
	sheetSummary         = "Summary"
)

var recordHeader = []interface{}{"VIN", "Stock #", "Store", "Type", "Status"}

var pairHeader = []interface{}{
	"VIN", "vAuto Stock #", "Reynolds Stock #", "Store", "Type", "vAuto Status", "Reynolds Status",
}

// WriteReport serializes a comparison result as a multi-sheet xlsx
// workbook. Every sheet is always present; an empty section becomes a
// header-only sheet rather than being omitted. Field values are written
// exactly as they appeared in the uploads.
func WriteReport(w io.Writer, result *ComparisonResult) error {
	f := excelize.NewFile()
	defer f.Close()

	// Reuse the default sheet for the first section
	if err := f.SetSheetName("Sheet1", sheetMissingReynolds); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetMissingVauto, sheetStatusMismatch, sheetStockMismatch, sheetMatched, sheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	if err := writeRecordSheet(f, sheetMissingReynolds, result.MissingFromReynolds); err != nil {
		return err
	}
	if err := writeRecordSheet(f, sheetMissingVauto, result.MissingFromVauto); err != nil {
		return err
	}
	if err := writePairSheet(f, sheetStatusMismatch, result.StatusMismatches); err != nil {
		return err
	}
	if err := writePairSheet(f, sheetStockMismatch, result.StockMismatches); err != nil {
		return err
	}
	if err := writePairSheet(f, sheetMatched, result.Matched); err != nil {
		return err
	}
	if err := writeSummarySheet(f, result.Summary); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ReportFileName builds the download name for a comparison report.
func ReportFileName(store string, invType InventoryType) string {
	return fmt.Sprintf("inventory_comparison_%s_%s.xlsx", sanitizeFileName(store), invType)
}

func writeRecordSheet(f *excelize.File, sheet string, records []VehicleRecord) error {
	if err := setRow(f, sheet, 1, recordHeader); err != nil {
		return err
	}

	for i, rec := range records {
		row := []interface{}{rec.VIN, rec.StockNumber, rec.Store, rec.Type, rec.Status}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writePairSheet(f *excelize.File, sheet string, pairs []RecordPair) error {
	if err := setRow(f, sheet, 1, pairHeader); err != nil {
		return err
	}

	for i, pair := range pairs {
		row := []interface{}{
			pair.Vauto.VIN,
			pair.Vauto.StockNumber,
			pair.Reynolds.StockNumber,
			pair.Vauto.Store,
			pair.Vauto.Type,
			pair.Vauto.Status,
			pair.Reynolds.Status,
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s Summary) error {
	statusNote := "yes"
	if !s.StatusCompared {
		statusNote = "skipped: one file has no Status column"
	}

	rows := [][]interface{}{
		{"Store", s.Store},
		{"Inventory Type", string(s.InventoryType)},
		{"vAuto Vehicles", s.VautoRows},
		{"Reynolds Vehicles", s.ReynoldsRows},
		{"Matched", s.Matched},
		{"Match Rate (%)", s.MatchRate},
		{"Missing in Reynolds", s.MissingFromReynolds},
		{"Missing in vAuto", s.MissingFromVauto},
		{"Status Mismatches", s.StatusMismatches},
		{"Stock Mismatches", s.StockMismatches},
		{"Duplicate VINs (vAuto)", s.DuplicateVautoVINs},
		{"Duplicate VINs (Reynolds)", s.DuplicateReynoldsVINs},
		{"Status Compared", statusNote},
	}

	for i, row := range rows {
		if err := setRow(f, sheetSummary, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %q: %w", rowNum, sheet, err)
	}
	return nil
}

// sanitizeFileName keeps download names shell- and filesystem-safe.
func sanitizeFileName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "report"
	}
	return string(out)
}
