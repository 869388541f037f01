package directory

import (
	"context"
	"fmt"
	"github.com/xuri/excelize/v2"
	"strings"
)

// Workbook reads the directory from a local .xlsx file. The file is opened on every read, so edits to the workbook
// are picked up immediately.
type Workbook struct {
	path      string
	sheet     string
	readRange string
}

// NewWorkbook returns a Workbook store that reads readRange from sheet in the workbook at path. readRange uses A1
// notation and may name its own sheet ("Contacts!B2:G33"), which takes precedence over sheet.
func NewWorkbook(path, sheet, readRange string) *Workbook {
	return &Workbook{path: path, sheet: sheet, readRange: readRange}
}

// Rows returns all rows in the range. Rows and cells outside the range are dropped.
func (w *Workbook) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, r, err := parseRange(w.sheet, w.readRange)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return r.slice(rows), nil
}

type cellRange struct {
	firstCol, firstRow int
	lastCol, lastRow   int
}

// slice returns the cells of rows that fall inside the range. Rows and columns are 1-based.
func (r cellRange) slice(rows [][]string) [][]string {
	var out [][]string
	for i := r.firstRow - 1; i < r.lastRow && i < len(rows); i++ {
		row := rows[i]
		if len(row) < r.firstCol {
			out = append(out, []string{})
			continue
		}
		out = append(out, row[r.firstCol-1:min(r.lastCol, len(row))])
	}
	// trailing empty rows are not data
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func parseRange(defaultSheet, a1 string) (string, cellRange, error) {
	sheet := defaultSheet
	if name, cells, ok := strings.Cut(a1, "!"); ok {
		sheet, a1 = strings.Trim(name, "'"), cells
	}
	first, last, ok := strings.Cut(a1, ":")
	if !ok {
		return "", cellRange{}, fmt.Errorf("invalid range %q", a1)
	}
	var r cellRange
	var err error
	if r.firstCol, r.firstRow, err = excelize.CellNameToCoordinates(first); err != nil {
		return "", cellRange{}, fmt.Errorf("invalid range %q: %w", a1, err)
	}
	if r.lastCol, r.lastRow, err = excelize.CellNameToCoordinates(last); err != nil {
		return "", cellRange{}, fmt.Errorf("invalid range %q: %w", a1, err)
	}
	if r.lastCol < r.firstCol || r.lastRow < r.firstRow {
		return "", cellRange{}, fmt.Errorf("invalid range %q", a1)
	}
	return sheet, r, nil
}
