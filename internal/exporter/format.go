package exporter

import (
	"strconv"
	"strings"

	"kopkar/pkg/contracts/domain"
)

// ReportHeaders is the fixed, ordered set of report columns used uniformly
// across every export format. Order and captions are part of the report
// contract with downstream consumers.
var ReportHeaders = []string{
	"No. Pegawai",
	"Nama Karyawan",
	"Divisi",
	"Total Pinjaman",
	"Total + Bunga",
	"Total Tenor",
	"Pembayaran",
	"Sisa Tenor",
	"Total Terbayar",
	"Sisa Pinjaman",
	"Status",
}

// ReportRow flattens one employee summary into the eleven report columns.
// Money amounts render as whole numbers.
func ReportRow(s domain.EmployeeSummary) []string {
	return []string{
		s.EmployeeID,
		s.EmployeeName,
		s.Division,
		money(s.Totals.PrincipalAmount),
		money(s.Totals.AmountBilledTotal),
		strconv.Itoa(s.Totals.TermCount),
		strconv.Itoa(s.Totals.PaymentsMade),
		strconv.Itoa(s.Totals.InstallmentsRemaining),
		money(s.Totals.AmountPaid),
		money(s.Totals.AmountRemaining),
		string(s.Status),
	}
}

// reportCells flattens one summary into typed cells so spreadsheet exports
// keep numeric columns numeric.
func reportCells(s domain.EmployeeSummary) []any {
	return []any{
		s.EmployeeID,
		s.EmployeeName,
		s.Division,
		s.Totals.PrincipalAmount,
		s.Totals.AmountBilledTotal,
		s.Totals.TermCount,
		s.Totals.PaymentsMade,
		s.Totals.InstallmentsRemaining,
		s.Totals.AmountPaid,
		s.Totals.AmountRemaining,
		string(s.Status),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// moneyGrouped renders an amount with thousands separators for the PDF
// table, where the raw digits are hard to scan.
func moneyGrouped(v float64) string {
	plain := money(v)
	neg := strings.HasPrefix(plain, "-")
	digits := strings.TrimPrefix(plain, "-")

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
