package domain

// RawRecord is one row read from an input file before normalization: a
// mapping from source field name to the raw cell value. Values may be
// strings, numbers, byte slices, or nil depending on the source format.
// A RawRecord is consumed by the normalizer and discarded.
type RawRecord map[string]any

// LoanStatus is the repayment state of a single loan or of an employee's
// aggregated position.
type LoanStatus string

const (
	// StatusBelumBayar marks a loan with installments contracted but no
	// payment recorded yet.
	StatusBelumBayar LoanStatus = "BelumBayar"
	// StatusBerjalan marks a loan that is being repaid. A loan with a zero
	// term count is always Berjalan.
	StatusBerjalan LoanStatus = "Berjalan"
	// StatusLunas marks a fully repaid loan.
	StatusLunas LoanStatus = "Lunas"
)

// LoanRecord is one loan after normalization. Instances are immutable once
// produced; derived fields are computed exactly once by the normalizer.
//
// PaymentsMade may legitimately exceed TermCount when the source data is
// inconsistent; only InstallmentsRemaining is clamped at zero. Callers must
// tolerate that.
type LoanRecord struct {
	EmployeeID            string     `json:"employee_id"`
	EmployeeName          string     `json:"employee_name"`
	Division              string     `json:"division"`
	PrincipalAmount       float64    `json:"principal_amount"`
	TermCount             int        `json:"term_count"`
	InstallmentAmount     float64    `json:"installment_amount"`
	PaymentsMade          int        `json:"payments_made"`
	InstallmentsRemaining int        `json:"installments_remaining"`
	AmountRemaining       float64    `json:"amount_remaining"`
	AmountBilledTotal     float64    `json:"amount_billed_total"`
	AmountPaid            float64    `json:"amount_paid"`
	Status                LoanStatus `json:"status"`
	SourceFile            string     `json:"source_file"`
	LoanType              string     `json:"loan_type"`
}

// LoanTotals holds field-wise sums over a set of loan records.
type LoanTotals struct {
	PrincipalAmount       float64 `json:"principal_amount"`
	TermCount             int     `json:"term_count"`
	PaymentsMade          int     `json:"payments_made"`
	InstallmentsRemaining int     `json:"installments_remaining"`
	AmountRemaining       float64 `json:"amount_remaining"`
	AmountPaid            float64 `json:"amount_paid"`
	AmountBilledTotal     float64 `json:"amount_billed_total"`
}

// Add accumulates one loan record into the totals.
func (t *LoanTotals) Add(l LoanRecord) {
	t.PrincipalAmount += l.PrincipalAmount
	t.TermCount += l.TermCount
	t.PaymentsMade += l.PaymentsMade
	t.InstallmentsRemaining += l.InstallmentsRemaining
	t.AmountRemaining += l.AmountRemaining
	t.AmountPaid += l.AmountPaid
	t.AmountBilledTotal += l.AmountBilledTotal
}

// EmployeeSummary is one employee's aggregated loan position for a single
// aggregation run. EmployeeName and Division come from the last loan record
// discovered for the employee: later files are assumed more current.
type EmployeeSummary struct {
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Division     string       `json:"division"`
	Totals       LoanTotals   `json:"aggregate_totals"`
	Status       LoanStatus   `json:"aggregate_status"`
	Loans        []LoanRecord `json:"loans"`
	LoanCount    int          `json:"loan_count"`
}
