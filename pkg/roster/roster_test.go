package roster

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseReaderWithHeader(t *testing.T) {
	buf := workbookBytes(t, [][]string{
		{"Cedula", "Nombres", "Celular"},
		{"12345678", "MARIA GONZALEZ LOPEZ", "3001234567"},
		{"87654321", "CARLOS RODRIGUEZ MARTINEZ", "3109876543"},
	})
	entries, err := ParseReader(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Cedula != "12345678" || entries[0].Nombres != "MARIA GONZALEZ LOPEZ" || entries[0].Celular != "3001234567" {
		t.Fatalf("first entry mismatch: %+v", entries[0])
	}
	if entries[1].Row != 3 {
		t.Fatalf("row numbers should be 1-based sheet rows, got %d", entries[1].Row)
	}
}

func TestParseReaderHeaderColumnsReordered(t *testing.T) {
	buf := workbookBytes(t, [][]string{
		{"Nombres", "Celular", "Cédula"},
		{"ANA PATRICIA SILVA", "3201122334", "11223344"},
	})
	entries, err := ParseReader(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Cedula != "11223344" || entries[0].Celular != "3201122334" {
		t.Fatalf("reordered columns mismapped: %+v", entries[0])
	}
}

func TestParseReaderWithoutHeader(t *testing.T) {
	buf := workbookBytes(t, [][]string{
		{"99887766", "JORGE LUIS HERRERA", "3159988776"},
	})
	entries, err := ParseReader(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Cedula != "99887766" {
		t.Fatalf("headerless sheet should use positional columns: %+v", entries)
	}
}

func TestParseReaderSkipsBlankRows(t *testing.T) {
	buf := workbookBytes(t, [][]string{
		{"cedula", "nombres", "celular"},
		{"", "", ""},
		{"55443322", "LUCIA FERNANDA CASTRO", "3125544332"},
	})
	entries, err := ParseReader(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("blank row should be skipped: %+v", entries)
	}
}
