// Package excel extracts spreadsheet text, one line per row.
// XLSX workbooks are read with excelize; legacy binary XLS workbooks
// are read with xlsReader and fed through the same row renderer.
package excel

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/xuri/excelize/v2"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Excel workbooks.
type Extractor struct{}

// New creates a new Excel extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports returns the file types this extractor handles.
func (e *Extractor) Supports() []domain.FileType {
	return []domain.FileType{domain.FileTypeExcel}
}

// Extract renders each sheet as a "Sheet: <name>" header followed by
// one line per row, cell values joined by " | ". Blank rows are skipped.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return extractXLS(path)
	}
	return extractXLSX(path)
}

func extractXLSX(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var sheets []string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("reading sheet %s: %w", name, err)
		}

		lines := [][]string{}
		for _, row := range rows {
			lines = append(lines, row)
		}
		sheets = append(sheets, renderSheet(name, lines))
	}

	return strings.Join(sheets, "\n\n"), nil
}

func extractXLS(path string) (string, error) {
	wb, err := xls.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("opening legacy workbook: %w", err)
	}

	var sheets []string
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}

		lines := [][]string{}
		for _, row := range sheet.GetRows() {
			lines = append(lines, xlsRowValues(row.GetCols()))
		}
		sheets = append(sheets, renderSheet(sheet.GetName(), lines))
	}

	return strings.Join(sheets, "\n\n"), nil
}

// renderSheet emits the sheet header and its non-blank rows.
func renderSheet(name string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("Sheet: ")
	b.WriteString(name)

	for _, row := range rows {
		line := strings.Join(row, " | ")
		if strings.TrimSpace(strings.ReplaceAll(line, "|", "")) == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	return b.String()
}

// xlsRowValues converts legacy cell data to strings, falling back to
// numeric representations for non-text cells.
func xlsRowValues(cols []structure.CellData) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		val := col.GetString()
		if val == "" {
			if num := col.GetFloat64(); num != 0 {
				val = strconv.FormatFloat(num, 'f', -1, 64)
			} else if n := col.GetInt64(); n != 0 {
				val = strconv.FormatInt(n, 10)
			}
		}
		out = append(out, val)
	}
	return out
}
