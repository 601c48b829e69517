// Package roster parses taxpayer rosters out of Excel workbooks. Import files
// are operator-produced spreadsheets with cedula, nombres and celular columns.
package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Entry is one parsed roster row, prior to any registry-level validation.
type Entry struct {
	Cedula  string
	Nombres string
	Celular string
	Row     int // 1-based row in the source sheet, for error reporting
}

// column aliases accepted in the header row, lower-cased and accent-stripped
var (
	cedulaHeaders  = []string{"cedula", "cédula", "id", "documento"}
	nombresHeaders = []string{"nombres", "nombre", "name"}
	celularHeaders = []string{"celular", "telefono", "teléfono", "phone", "movil", "móvil"}
)

// ParseReader reads the first sheet of an .xlsx workbook into roster entries.
// A header row is detected by a cedula-like column name; without one the first
// three columns are taken as cedula, nombres, celular. Blank rows are skipped.
func ParseReader(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return entriesFromRows(rows), nil
}

// ParseFile is ParseReader over a file on disk (used by the import watcher).
func ParseFile(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return entriesFromRows(rows), nil
}

func entriesFromRows(rows [][]string) []Entry {
	cedCol, nomCol, celCol := 0, 1, 2
	start := 0
	if len(rows) > 0 {
		if c, n, p, ok := detectHeader(rows[0]); ok {
			cedCol, nomCol, celCol = c, n, p
			start = 1
		}
	}
	var entries []Entry
	for i := start; i < len(rows); i++ {
		row := rows[i]
		e := Entry{
			Cedula:  cellAt(row, cedCol),
			Nombres: cellAt(row, nomCol),
			Celular: cellAt(row, celCol),
			Row:     i + 1,
		}
		if e.Cedula == "" && e.Nombres == "" && e.Celular == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func detectHeader(row []string) (ced, nom, cel int, ok bool) {
	ced, nom, cel = -1, -1, -1
	for i, c := range row {
		name := strings.ToLower(strings.TrimSpace(c))
		switch {
		case matchesAny(name, cedulaHeaders):
			ced = i
		case matchesAny(name, nombresHeaders):
			nom = i
		case matchesAny(name, celularHeaders):
			cel = i
		}
	}
	if ced < 0 || nom < 0 || cel < 0 {
		return 0, 0, 0, false
	}
	return ced, nom, cel, true
}

func matchesAny(name string, aliases []string) bool {
	for _, a := range aliases {
		if name == a {
			return true
		}
	}
	return false
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
