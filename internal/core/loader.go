package core

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/dealerops/invcompare/internal/schema"
)

// maxHeaderSearchRows is the number of leading rows scanned for the
// header. Dealer exports often have title and report-date rows above it.
const maxHeaderSearchRows = 20

// fileFormat is the detected container format of an upload.
type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatXLS                // legacy binary OLE workbook
	formatXLSX               // zip-based workbook
)

// LoadVauto parses a vAuto inventory export (.xls or .xlsx).
func LoadVauto(r io.Reader, fileName string, maxRows int) (*InventoryTable, error) {
	return loadTable(SourceVauto, schema.Vauto, r, fileName, maxRows)
}

// LoadReynolds parses a Reynolds inventory export (.xlsx).
func LoadReynolds(r io.Reader, fileName string, maxRows int) (*InventoryTable, error) {
	return loadTable(SourceReynolds, schema.Reynolds, r, fileName, maxRows)
}

// loadTable reads an upload into an InventoryTable: sniff the workbook
// format, extract the first sheet as string rows, locate the header,
// and materialize one VehicleRecord per data row.
func loadTable(src Source, spec schema.SourceSpec, r io.Reader, fileName string, maxRows int) (*InventoryTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Source: src, Err: err}
	}
	if len(data) == 0 {
		return nil, &ParseError{Source: src, Err: fmt.Errorf("empty file")}
	}

	rows, err := readWorkbook(data, fileName, maxRows)
	if err != nil {
		return nil, &ParseError{Source: src, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Source: src, Err: fmt.Errorf("workbook has no rows")}
	}

	headerRow, colIdx, missing := findHeader(spec, rows)
	if len(missing) > 0 {
		return nil, &SchemaError{Source: src, Column: missing[0]}
	}

	table := &InventoryTable{
		Source:    src,
		FileName:  fileName,
		HasStatus: hasKey(colIdx, schema.ColStatus),
	}

	for i, row := range rows[headerRow+1:] {
		if isEmptyRow(row) {
			continue
		}

		rec := VehicleRecord{
			VIN:         cell(row, colIdx, schema.ColVIN),
			StockNumber: cell(row, colIdx, schema.ColStock),
			Store:       cell(row, colIdx, schema.ColStore),
			Type:        cell(row, colIdx, schema.ColType),
			Status:      cell(row, colIdx, schema.ColStatus),
			Row:         headerRow + i + 2, // 1-based, after header
		}

		// A row with no VIN cannot participate in the comparison.
		if NormalizeVIN(rec.VIN) == "" {
			table.SkippedRows++
			continue
		}

		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// readWorkbook extracts the first sheet of a workbook as string rows,
// choosing the parser from the file's magic bytes. The filename
// extension only breaks the tie when the content is unrecognizable.
func readWorkbook(data []byte, fileName string, maxRows int) ([][]string, error) {
	switch sniffFormat(data, fileName) {
	case formatXLSX:
		return readXLSX(data, maxRows)
	case formatXLS:
		return readXLS(data, maxRows)
	default:
		return nil, fmt.Errorf("unrecognized file format (expected .xls or .xlsx)")
	}
}

// xlsMagic is the OLE2 compound document signature that opens every
// legacy binary workbook.
var xlsMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}

// zipMagic opens every zip container, including .xlsx workbooks.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

func sniffFormat(data []byte, fileName string) fileFormat {
	if bytes.HasPrefix(data, xlsMagic) {
		return formatXLS
	}
	if bytes.HasPrefix(data, zipMagic) {
		return formatXLSX
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xls":
		return formatXLS
	case ".xlsx":
		return formatXLSX
	}
	return formatUnknown
}

func readXLSX(data []byte, maxRows int) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if maxRows > 0 && len(rows) > maxRows {
		return nil, fmt.Errorf("sheet %q has %d rows, limit is %d", sheets[0], len(rows), maxRows)
	}

	return rows, nil
}

func readXLS(data []byte, maxRows int) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("xls has no sheets")
	}
	if maxRows > 0 && int(sheet.MaxRow)+1 > maxRows {
		return nil, fmt.Errorf("sheet %q has %d rows, limit is %d", sheet.Name, int(sheet.MaxRow)+1, maxRows)
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		// LastCol is exclusive
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// findHeader scans the leading rows for the one that resolves the most
// required columns. It returns that row's index, the resolved column
// map, and the labels of required columns still missing from the best
// candidate (empty when the header is complete).
func findHeader(spec schema.SourceSpec, rows [][]string) (int, map[string]int, []string) {
	limit := maxHeaderSearchRows
	if len(rows) < limit {
		limit = len(rows)
	}

	bestRow := 0
	var bestIdx map[string]int
	bestMissing := requiredLabels(spec)

	for i := 0; i < limit; i++ {
		idx, missing := spec.Resolve(rows[i])
		if len(missing) < len(bestMissing) {
			bestRow, bestIdx, bestMissing = i, idx, missing
			if len(missing) == 0 {
				break
			}
		}
	}

	return bestRow, bestIdx, bestMissing
}

func requiredLabels(spec schema.SourceSpec) []string {
	var labels []string
	for _, col := range spec.Columns {
		if col.Required {
			labels = append(labels, col.Label)
		}
	}
	return labels
}

func cell(row []string, colIdx map[string]int, key string) string {
	pos, ok := colIdx[key]
	if !ok || pos >= len(row) {
		return ""
	}
	return cleanCell(row[pos])
}

func hasKey(colIdx map[string]int, key string) bool {
	_, ok := colIdx[key]
	return ok
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
