// Package export writes a set of named tables to a timestamped .xlsx
// workbook, one sheet per table, creating intermediate directories as
// needed. I/O failures wrap types.ErrWriteFailure so the orchestrator can
// abort the affected game's backup without touching its ledger entry.
// See docs/ARCHITECTURE.md § Exporter.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/speedarch/speedarch/internal/table"
	"github.com/speedarch/speedarch/pkg/types"
)

// timestampLayout names workbook files so successive backups of the same
// game never overwrite each other.
const timestampLayout = "2006-01-02__15-04-05"

// sheetNameLimit is the xlsx worksheet name length cap.
const sheetNameLimit = 31

// Writer persists ordered tables to a workbook under dir and returns the
// path written.
type Writer interface {
	WriteWorkbook(dir string, sheets []table.Sheet) (string, error)
}

// ExcelWriter is the xlsx-backed Writer.
type ExcelWriter struct {
	// now is replaced in tests to pin the file name.
	now func() time.Time
}

// NewExcelWriter returns a Writer producing .xlsx workbooks.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{now: time.Now}
}

// WriteWorkbook writes one sheet per table under dir, named by the current
// time. Sheets keep their given order; the first becomes the active sheet.
func (w *ExcelWriter) WriteWorkbook(dir string, sheets []table.Sheet) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: no tables to write", types.ErrWriteFailure)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", types.ErrWriteFailure, dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]bool)
	for i, sheet := range sheets {
		name := sheetName(sheet.Name, used)
		used[name] = true

		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return "", fmt.Errorf("%w: naming sheet %q: %v", types.ErrWriteFailure, name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return "", fmt.Errorf("%w: adding sheet %q: %v", types.ErrWriteFailure, name, err)
			}
		}

		if err := writeSheet(f, name, sheet); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, w.now().Format(timestampLayout)+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%w: saving %s: %v", types.ErrWriteFailure, path, err)
	}
	return path, nil
}

// writeSheet emits the header row followed by the data rows.
func writeSheet(f *excelize.File, name string, sheet table.Sheet) error {
	header := make([]interface{}, len(sheet.Columns))
	for i, c := range sheet.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("%w: writing header of %q: %v", types.ErrWriteFailure, name, err)
	}

	for r, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("%w: addressing row %d of %q: %v", types.ErrWriteFailure, r+2, name, err)
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("%w: writing row %d of %q: %v", types.ErrWriteFailure, r+2, name, err)
		}
	}
	return nil
}

// sheetName sanitizes a category name into a legal, unused worksheet name:
// the characters xlsx forbids become spaces, the result is capped at 31
// runes, and collisions get a numeric suffix.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, name)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = "Sheet"
	}
	clean = truncate(clean, sheetNameLimit)

	if !used[clean] {
		return clean
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate := truncate(clean, sheetNameLimit-len(suffix)) + suffix
		if !used[candidate] {
			return candidate
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
