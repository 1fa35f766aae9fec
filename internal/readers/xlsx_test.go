package readers

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestExcelSourceRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.xlsx")
	writeWorkbook(t, path, [][]string{
		{"NOPEG", "NAMA", "LAMA", "CICIL"},
		{"E1", "Budi", "10", "100000"},
		{"E2", "Siti", "5", "50000"},
	})

	records := NewExcelSource(slog.Default()).Read(path)
	require.Len(t, records, 2)

	assert.Equal(t, "E1", records[0]["NOPEG"])
	assert.Equal(t, "Budi", records[0]["NAMA"])
	// Every spreadsheet cell arrives as text.
	assert.Equal(t, "10", records[0]["LAMA"])
	assert.Equal(t, "50000", records[1]["CICIL"])
}

func TestExcelSourceReadSkipsLeadingEmptyRowsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padded.xlsx")
	writeWorkbook(t, path, [][]string{
		{"", ""},
		{" NOPEG ", "NAMA"},
		{"E1", "Budi"},
		{"", ""},
		{"E2", "Siti"},
	})

	records := NewExcelSource(nil).Read(path)
	require.Len(t, records, 2)
	// Header cells are trimmed before use as keys.
	assert.Equal(t, "E1", records[0]["NOPEG"])
	assert.Equal(t, "E2", records[1]["NOPEG"])
}

func TestExcelSourceReadShortRowsPadWithEmptyText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.xlsx")
	writeWorkbook(t, path, [][]string{
		{"NOPEG", "NAMA", "BAGIAN"},
		{"E1"},
	})

	records := NewExcelSource(nil).Read(path)
	require.Len(t, records, 1)
	assert.Equal(t, "E1", records[0]["NOPEG"])
	assert.Equal(t, "", records[0]["NAMA"])
	assert.Equal(t, "", records[0]["BAGIAN"])
}

func TestExcelSourceReadCorruptFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))
	assert.Empty(t, NewExcelSource(nil).Read(path))
}

func TestExcelSourceReadMissingFileReturnsEmpty(t *testing.T) {
	assert.Empty(t, NewExcelSource(nil).Read(filepath.Join(t.TempDir(), "missing.xlsx")))
}

func TestForPath(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"uploads/loans.dbf", &DBFSource{}, true},
		{"uploads/LOANS.DBF", &DBFSource{}, true},
		{"uploads/loans.xlsx", &ExcelSource{}, true},
		{"uploads/loans.XLSX", &ExcelSource{}, true},
		{"uploads/readme.txt", nil, false},
		{"uploads/loans.csv", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			source, ok := ForPath(logger, tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.IsType(t, tt.want, source)
			}
		})
	}
}
