package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kopkar/pkg/contracts/domain"
)

func sampleSummaries() []domain.EmployeeSummary {
	return []domain.EmployeeSummary{
		{
			EmployeeID:   "E1",
			EmployeeName: "Budi Santoso",
			Division:     "Marketing",
			Totals: domain.LoanTotals{
				PrincipalAmount:       1000000,
				TermCount:             10,
				PaymentsMade:          3,
				InstallmentsRemaining: 7,
				AmountRemaining:       700000,
				AmountPaid:            300000,
				AmountBilledTotal:     1000000,
			},
			Status:    domain.StatusBerjalan,
			LoanCount: 2,
		},
		{
			EmployeeID:   "E2",
			EmployeeName: "Siti Aminah",
			Division:     "Produksi",
			Totals: domain.LoanTotals{
				PrincipalAmount:   500000,
				TermCount:         5,
				PaymentsMade:      5,
				AmountPaid:        500000,
				AmountBilledTotal: 500000,
			},
			Status:    domain.StatusLunas,
			LoanCount: 1,
		},
	}
}

func TestReportRow(t *testing.T) {
	rows := sampleSummaries()
	got := ReportRow(rows[0])

	require.Len(t, got, len(ReportHeaders))
	assert.Equal(t, "E1", got[0])
	assert.Equal(t, "Budi Santoso", got[1])
	assert.Equal(t, "Marketing", got[2])
	assert.Equal(t, "1000000", got[3])
	assert.Equal(t, "10", got[5])
	assert.Equal(t, "700000", got[9])
	assert.Equal(t, "Berjalan", got[10])
}

func TestMoneyGrouped(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-2500000, "-2,500,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, moneyGrouped(tt.in), "moneyGrouped(%v)", tt.in)
	}
}

func TestCSVWriterWriteEmployeeReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "koperasi.csv")

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteEmployeeReport(path, sampleSummaries()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "\xef\xbb\xbf"), "file must start with a UTF-8 BOM")

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xef\xbb\xbf"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ReportHeaders, records[0])
	assert.Equal(t, "E2", records[2][0])
	assert.Equal(t, "Lunas", records[2][10])
}

func TestExcelWriterWriteEmployeeReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "koperasi.xlsx")

	w := NewExcelWriter(nil)
	require.NoError(t, w.WriteEmployeeReport(path, sampleSummaries()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reportSheet}, f.GetSheetList())

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ReportHeaders, rows[0])
	assert.Equal(t, "E1", rows[1][0])
	assert.Equal(t, "1000000", rows[1][3])

	// Money cells are numeric, not text.
	typ, err := f.GetCellType(reportSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeNumber, typ)
}

func TestPDFWriterWriteEmployeeReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "koperasi.pdf")

	w := NewPDFWriter(nil)
	require.NoError(t, w.WriteEmployeeReport(path, sampleSummaries()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"), "output must be a PDF document")
	assert.Greater(t, len(raw), 1000)
}

func TestPDFWriterEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	w := NewPDFWriter(nil)
	require.NoError(t, w.WriteEmployeeReport(path, nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
