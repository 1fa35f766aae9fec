package dataprocessing

import (
	"strings"

	"kopkar/pkg/contracts/domain"
)

// paymentMarkerPrefix identifies installment slot columns: any field whose
// upper-cased name starts with this prefix holds one payment marker.
const paymentMarkerPrefix = "ANG"

// Source field names, with the alternative spellings that appear across the
// legacy table exports. The first present, non-empty candidate wins.
var (
	principalFields   = []string{"JML", "JML_DDL", "JUMLAH"}
	installmentFields = []string{"CICIL", "BUNGA1", "CICILAN"}
)

// NormalizeRecord turns one raw row into a LoanRecord. It is pure and
// total: every raw record yields exactly one loan record, garbage rows come
// out with zero/empty fields rather than an error. The record is stamped
// with the originating file's base name and the loan type classified from
// that same name.
func NormalizeRecord(raw domain.RawRecord, sourceFile string) domain.LoanRecord {
	paymentsMade := countPayments(raw)

	termCount := ToInt(raw["LAMA"], 0)
	installment := ToFloat(firstPresent(raw, installmentFields), 0)

	// Derived fields; the remaining installment count is clamped at zero
	// but the payment count itself is kept as counted, even when the
	// source data says more installments were paid than contracted.
	remaining := termCount - paymentsMade
	if remaining < 0 {
		remaining = 0
	}

	return domain.LoanRecord{
		EmployeeID:            trimmedString(raw["NOPEG"]),
		EmployeeName:          trimmedString(raw["NAMA"]),
		Division:              CanonicalDivision(trimmedString(raw["BAGIAN"])),
		PrincipalAmount:       ToFloat(firstPresent(raw, principalFields), 0),
		TermCount:             termCount,
		InstallmentAmount:     installment,
		PaymentsMade:          paymentsMade,
		InstallmentsRemaining: remaining,
		AmountRemaining:       float64(remaining) * installment,
		AmountBilledTotal:     float64(termCount) * installment,
		AmountPaid:            float64(paymentsMade) * installment,
		Status:                loanStatus(paymentsMade, remaining, termCount),
		SourceFile:            sourceFile,
		LoanType:              ClassifyLoanType(sourceFile),
	}
}

// loanStatus derives the per-loan status. A zero-term loan is always
// Berjalan: neither guard below can fire without contracted installments.
func loanStatus(paymentsMade, remaining, termCount int) domain.LoanStatus {
	switch {
	case paymentsMade == 0 && termCount > 0:
		return domain.StatusBelumBayar
	case remaining <= 0 && termCount > 0:
		return domain.StatusLunas
	default:
		return domain.StatusBerjalan
	}
}

// countPayments counts the filled payment marker columns. Each non-empty,
// non-zero marker is one installment paid regardless of the stored value;
// this is a counting heuristic, not a sum.
func countPayments(raw domain.RawRecord) int {
	count := 0
	for name, value := range raw {
		if !strings.HasPrefix(strings.ToUpper(name), paymentMarkerPrefix) {
			continue
		}
		if markerFilled(value) {
			count++
		}
	}
	return count
}

// markerFilled reports whether a payment marker cell counts as paid. Absent
// cells, empty text, empty byte slices and numeric zeros do not; any other
// value, including textual "0", does.
func markerFilled(v any) bool {
	switch m := v.(type) {
	case nil:
		return false
	case string:
		return m != ""
	case []byte:
		return len(m) > 0
	case int:
		return m != 0
	case int64:
		return m != 0
	case float64:
		return m != 0
	case float32:
		return m != 0
	default:
		return true
	}
}

// firstPresent returns the first candidate field whose value is present and
// neither empty text nor numeric zero, mirroring how the alternative column
// spellings shadow each other in the source exports.
func firstPresent(raw domain.RawRecord, names []string) any {
	for _, name := range names {
		v, ok := raw[name]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) == "" {
				continue
			}
		case []byte:
			if len(t) == 0 {
				continue
			}
		case int:
			if t == 0 {
				continue
			}
		case int64:
			if t == 0 {
				continue
			}
		case float64:
			if t == 0 {
				continue
			}
		}
		return v
	}
	return nil
}

func trimmedString(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}
