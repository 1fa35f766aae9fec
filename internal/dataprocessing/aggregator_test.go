package dataprocessing

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kopkar/pkg/contracts/domain"
)

// writeXLSXFixture writes a one-sheet workbook with a header row and the
// given data rows.
func writeXLSXFixture(t *testing.T, path string, headers []string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestAggregatorLoad(t *testing.T) {
	dir := t.TempDir()

	// Two loans for E1 split across two files plus one for E2; file names
	// chosen so discovery order is a_..., b_... .
	writeXLSXFixture(t, filepath.Join(dir, "a_motor 10.xlsx"),
		[]string{"NOPEG", "NAMA", "BAGIAN", "JML", "LAMA", "CICIL", "ANG1", "ANG2", "ANG3"},
		[][]string{
			{"E1", "Budi", "logistik", "1000000", "10", "100000", "x", "x", "x"},
			{"E2", "Siti", "prod", "400000", "4", "100000", "", "", ""},
			{"", "Hantu", "teknik", "100", "1", "100", "x", "", ""}, // no NOPEG: dropped
		})
	writeXLSXFixture(t, filepath.Join(dir, "b_pinjaman uang.xlsx"),
		[]string{"NOPEG", "NAMA", "BAGIAN", "JML", "LAMA", "CICIL", "ANG1", "ANG2", "ANG3", "ANG4", "ANG5"},
		[][]string{
			{"E1", "Budi S.", "teknik", "250000", "5", "50000", "x", "x", "x", "x", "x"},
		})

	agg := NewAggregator(dir, slog.Default())
	summaries := agg.Load(context.Background())

	require.Len(t, summaries, 2)

	e1 := summaries[0]
	assert.Equal(t, "E1", e1.EmployeeID)
	// Name and division come from the last-processed record.
	assert.Equal(t, "Budi S.", e1.EmployeeName)
	assert.Equal(t, "Teknik", e1.Division)
	assert.Equal(t, 2, e1.LoanCount)
	require.Len(t, e1.Loans, 2)
	assert.Equal(t, LoanTypeMotor10, e1.Loans[0].LoanType)
	assert.Equal(t, LoanTypePinjamanUang, e1.Loans[1].LoanType)

	// Totals are field-wise sums: 7*100000 remaining from loan A, 0 from B.
	assert.Equal(t, 700000.0, e1.Totals.AmountRemaining)
	assert.Equal(t, 1250000.0, e1.Totals.PrincipalAmount)
	assert.Equal(t, 15, e1.Totals.TermCount)
	assert.Equal(t, 8, e1.Totals.PaymentsMade)
	// Berjalan dominates Lunas.
	assert.Equal(t, domain.StatusBerjalan, e1.Status)

	e2 := summaries[1]
	assert.Equal(t, "E2", e2.EmployeeID)
	assert.Equal(t, domain.StatusBelumBayar, e2.Status)
	assert.Equal(t, 400000.0, e2.Totals.AmountRemaining)
}

func TestAggregatorLoadCorruptFileDoesNotAbortRun(t *testing.T) {
	dir := t.TempDir()

	writeXLSXFixture(t, filepath.Join(dir, "good.xlsx"),
		[]string{"NOPEG", "NAMA", "LAMA", "CICIL", "ANG1"},
		[][]string{{"E1", "Budi", "2", "1000", "x"}})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.dbf"), []byte("not a dbf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("skip me"), 0o644))

	agg := NewAggregator(dir, slog.Default())
	summaries := agg.Load(context.Background())

	require.Len(t, summaries, 1)
	assert.Equal(t, "E1", summaries[0].EmployeeID)
}

func TestAggregatorLoadEmptyDirectory(t *testing.T) {
	agg := NewAggregator(t.TempDir(), slog.Default())
	assert.Empty(t, agg.Load(context.Background()))
}

func TestAggregatorLoadMissingDirectory(t *testing.T) {
	agg := NewAggregator(filepath.Join(t.TempDir(), "nope"), slog.Default())
	assert.Empty(t, agg.Load(context.Background()))
}

// Every run re-reads the directory: files added between runs show up, and
// no state leaks across runs.
func TestAggregatorLoadStatelessAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	agg := NewAggregator(dir, slog.Default())

	assert.Empty(t, agg.Load(context.Background()))

	writeXLSXFixture(t, filepath.Join(dir, "late.xlsx"),
		[]string{"NOPEG", "NAMA", "LAMA", "CICIL", "ANG1"},
		[][]string{{"E7", "Andi", "3", "500", ""}})

	summaries := agg.Load(context.Background())
	require.Len(t, summaries, 1)
	assert.Equal(t, "E7", summaries[0].EmployeeID)

	again := agg.Load(context.Background())
	require.Len(t, again, 1)
	assert.Equal(t, summaries, again)
}

func TestAggregateStatusPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.LoanStatus
		want     domain.LoanStatus
	}{
		{"berjalan dominates all", []domain.LoanStatus{domain.StatusLunas, domain.StatusBerjalan, domain.StatusBelumBayar}, domain.StatusBerjalan},
		{"belum bayar dominates lunas", []domain.LoanStatus{domain.StatusLunas, domain.StatusBelumBayar}, domain.StatusBelumBayar},
		{"all lunas", []domain.LoanStatus{domain.StatusLunas, domain.StatusLunas}, domain.StatusLunas},
		{"single berjalan", []domain.LoanStatus{domain.StatusBerjalan}, domain.StatusBerjalan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loans := make([]domain.LoanRecord, len(tt.statuses))
			for i, s := range tt.statuses {
				loans[i] = domain.LoanRecord{Status: s}
			}
			assert.Equal(t, tt.want, aggregateStatus(loans))
		})
	}
}
