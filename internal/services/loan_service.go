package services

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"strings"

	"kopkar/internal/dataprocessing"
	"kopkar/pkg/contracts/domain"
)

// ErrEmployeeNotFound is returned when a statement is requested for an
// employee id that does not appear in the current data set.
var ErrEmployeeNotFound = errors.New("employee not found")

// DefaultPageSize is the number of employee rows per result page.
const DefaultPageSize = 20

// noDivisionLabel stands in for employees whose records carry no division.
const noDivisionLabel = "Tidak Ada Divisi"

// EmployeeFilter narrows the employee listing. Zero values mean "no filter".
type EmployeeFilter struct {
	// Search matches as a case-insensitive substring of the employee name
	// or employee id.
	Search string
	// Division matches the canonical division name, case-insensitively.
	Division string
	// Status matches the aggregate status, case-insensitively.
	Status string
	// LoanType keeps employees holding at least one loan of this type.
	LoanType string
}

// EmployeePage is one page of the filtered employee listing.
type EmployeePage struct {
	Employees     []domain.EmployeeSummary `json:"employees"`
	Page          int                      `json:"page"`
	TotalPages    int                      `json:"total_pages"`
	TotalFiltered int                      `json:"total_filtered"`
	Divisions     []string                 `json:"divisions"`
}

// Statement is the per-loan view for a single employee: open loans only,
// with a synthesized totals row when more than one loan remains.
type Statement struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	Division     string              `json:"division"`
	Loans        []domain.LoanRecord `json:"loans"`
	Totals       *domain.LoanTotals  `json:"totals,omitempty"`
}

// StatusBreakdown is the per-status slice of the dashboard: one entry per
// status label with headcount, outstanding amount, and headcount share.
type StatusBreakdown struct {
	Status     domain.LoanStatus `json:"status"`
	Count      int               `json:"count"`
	Amount     float64           `json:"amount"`
	Percentage float64           `json:"percentage"`
}

// DivisionBreakdown is one division's aggregate position.
type DivisionBreakdown struct {
	Division      string  `json:"division"`
	Employees     int     `json:"employees"`
	ContractTotal float64 `json:"contract_total"`
	Paid          float64 `json:"paid"`
	Remaining     float64 `json:"remaining"`
}

// Borrower is one entry in the largest-borrowers ranking.
type Borrower struct {
	Name          string  `json:"name"`
	ContractTotal float64 `json:"contract_total"`
	Paid          float64 `json:"paid"`
	Remaining     float64 `json:"remaining"`
}

// Dashboard carries all chart and KPI data for the summary view.
type Dashboard struct {
	TotalEmployees      int                 `json:"total_employees"`
	TotalPrincipal      float64             `json:"total_principal"`
	TotalBilled         float64             `json:"total_billed"`
	TotalRemaining      float64             `json:"total_remaining"`
	Statuses            []StatusBreakdown   `json:"statuses"`
	TopDivisionsByValue []DivisionBreakdown `json:"top_divisions_by_value"`
	TopDivisionsByCount []DivisionBreakdown `json:"top_divisions_by_count"`
	TopBorrowers        []Borrower          `json:"top_borrowers"`
}

// LoanService is the read-side facade over the aggregation pipeline: it
// shapes the per-run employee summaries into filtered listings, statements
// and dashboard figures. It holds no state of its own; every call triggers
// a fresh aggregation pass.
type LoanService struct {
	aggregator *dataprocessing.Aggregator
	logger     *slog.Logger
}

// NewLoanService creates a loan service over the given aggregator.
func NewLoanService(aggregator *dataprocessing.Aggregator, logger *slog.Logger) *LoanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoanService{
		aggregator: aggregator,
		logger:     logger.With(slog.String("component", "loan_service")),
	}
}

// Report returns the full, unfiltered summary sequence for export.
func (s *LoanService) Report(ctx context.Context) []domain.EmployeeSummary {
	return s.aggregator.Load(ctx)
}

// Employees returns one page of the filtered employee listing. Pages are
// 1-based; a page past the end yields an empty slice, not an error. The
// division list covers the whole data set, not just the filtered rows, so
// filter dropdowns stay stable while a filter is active.
func (s *LoanService) Employees(ctx context.Context, filter EmployeeFilter, page int) EmployeePage {
	all := s.aggregator.Load(ctx)
	filtered := applyFilter(all, filter)

	if page < 1 {
		page = 1
	}
	total := len(filtered)
	totalPages := (total + DefaultPageSize - 1) / DefaultPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * DefaultPageSize
	if start > total {
		start = total
	}
	end := start + DefaultPageSize
	if end > total {
		end = total
	}

	s.logger.DebugContext(ctx, "employee listing",
		slog.Int("total", len(all)),
		slog.Int("filtered", total),
		slog.Int("page", page))

	return EmployeePage{
		Employees:     filtered[start:end],
		Page:          page,
		TotalPages:    totalPages,
		TotalFiltered: total,
		Divisions:     divisionList(all),
	}
}

// Statement returns the open-loan statement for one employee, optionally
// narrowed to a single loan type. Loans with nothing left to pay are
// excluded; when more than one loan remains a totals row is synthesized.
func (s *LoanService) Statement(ctx context.Context, employeeID, loanType string) (Statement, error) {
	for _, emp := range s.aggregator.Load(ctx) {
		if emp.EmployeeID != employeeID {
			continue
		}

		open := make([]domain.LoanRecord, 0, len(emp.Loans))
		for _, loan := range emp.Loans {
			if loanType != "" && loan.LoanType != loanType {
				continue
			}
			if loan.AmountRemaining <= 0 {
				continue
			}
			open = append(open, loan)
		}

		stmt := Statement{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.EmployeeName,
			Division:     emp.Division,
			Loans:        open,
		}
		if len(open) > 1 {
			var totals domain.LoanTotals
			for _, loan := range open {
				totals.Add(loan)
			}
			stmt.Totals = &totals
		}
		return stmt, nil
	}
	return Statement{}, ErrEmployeeNotFound
}

// Dashboard computes the KPI and chart figures over the current data set.
func (s *LoanService) Dashboard(ctx context.Context) Dashboard {
	all := s.aggregator.Load(ctx)

	dash := Dashboard{
		TotalEmployees:      len(all),
		Statuses:            statusBreakdown(all),
		TopDivisionsByValue: topDivisions(all, byContractTotal),
		TopDivisionsByCount: topDivisions(all, byHeadcount),
		TopBorrowers:        topBorrowers(all),
	}
	for _, emp := range all {
		dash.TotalPrincipal += emp.Totals.PrincipalAmount
		dash.TotalBilled += emp.Totals.AmountBilledTotal
		dash.TotalRemaining += emp.Totals.AmountRemaining
	}

	s.logger.DebugContext(ctx, "dashboard computed",
		slog.Int("employees", dash.TotalEmployees))
	return dash
}

func applyFilter(all []domain.EmployeeSummary, filter EmployeeFilter) []domain.EmployeeSummary {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]domain.EmployeeSummary, 0, len(all))
	for _, emp := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(emp.EmployeeName), search) &&
			!strings.Contains(strings.ToLower(emp.EmployeeID), search) {
			continue
		}
		if filter.Division != "" && !strings.EqualFold(emp.Division, filter.Division) {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(string(emp.Status), filter.Status) {
			continue
		}
		if filter.LoanType != "" && !hasLoanType(emp, filter.LoanType) {
			continue
		}
		filtered = append(filtered, emp)
	}
	return filtered
}

func hasLoanType(emp domain.EmployeeSummary, loanType string) bool {
	for _, loan := range emp.Loans {
		if loan.LoanType == loanType {
			return true
		}
	}
	return false
}

// divisionList returns the distinct non-empty divisions, sorted.
func divisionList(all []domain.EmployeeSummary) []string {
	seen := make(map[string]struct{})
	for _, emp := range all {
		if emp.Division != "" {
			seen[emp.Division] = struct{}{}
		}
	}
	divisions := make([]string, 0, len(seen))
	for d := range seen {
		divisions = append(divisions, d)
	}
	sort.Strings(divisions)
	return divisions
}

// statusBreakdown counts employees per aggregate status and sums the
// outstanding balance of the non-settled ones. Percentages are headcount
// shares rounded to one decimal place.
func statusBreakdown(all []domain.EmployeeSummary) []StatusBreakdown {
	order := []domain.LoanStatus{domain.StatusLunas, domain.StatusBerjalan, domain.StatusBelumBayar}

	counts := make(map[domain.LoanStatus]int)
	amounts := make(map[domain.LoanStatus]float64)
	for _, emp := range all {
		counts[emp.Status]++
		if emp.Status != domain.StatusLunas {
			amounts[emp.Status] += emp.Totals.AmountRemaining
		}
	}

	breakdown := make([]StatusBreakdown, 0, len(order))
	for _, status := range order {
		pct := 0.0
		if len(all) > 0 {
			pct = math.Round(float64(counts[status])/float64(len(all))*1000) / 10
		}
		breakdown = append(breakdown, StatusBreakdown{
			Status:     status,
			Count:      counts[status],
			Amount:     amounts[status],
			Percentage: pct,
		})
	}
	return breakdown
}

func byContractTotal(d DivisionBreakdown) float64 { return d.ContractTotal }
func byHeadcount(d DivisionBreakdown) float64     { return float64(d.Employees) }

// topDivisions folds the summaries per division and returns the ten
// largest by the given measure.
func topDivisions(all []domain.EmployeeSummary, measure func(DivisionBreakdown) float64) []DivisionBreakdown {
	order := make([]string, 0)
	byName := make(map[string]*DivisionBreakdown)
	for _, emp := range all {
		division := emp.Division
		if division == "" {
			division = noDivisionLabel
		}
		entry, ok := byName[division]
		if !ok {
			entry = &DivisionBreakdown{Division: division}
			byName[division] = entry
			order = append(order, division)
		}
		entry.Employees++
		entry.ContractTotal += emp.Totals.AmountBilledTotal
		entry.Remaining += emp.Totals.AmountRemaining
	}

	divisions := make([]DivisionBreakdown, 0, len(order))
	for _, name := range order {
		entry := *byName[name]
		entry.Paid = math.Max(entry.ContractTotal-entry.Remaining, 0)
		divisions = append(divisions, entry)
	}
	sort.SliceStable(divisions, func(i, j int) bool {
		return measure(divisions[i]) > measure(divisions[j])
	})
	if len(divisions) > 10 {
		divisions = divisions[:10]
	}
	return divisions
}

// topBorrowers ranks employees by total contract value and keeps the top
// ten.
func topBorrowers(all []domain.EmployeeSummary) []Borrower {
	ranked := make([]domain.EmployeeSummary, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Totals.AmountBilledTotal > ranked[j].Totals.AmountBilledTotal
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	borrowers := make([]Borrower, 0, len(ranked))
	for _, emp := range ranked {
		contract := emp.Totals.AmountBilledTotal
		remaining := emp.Totals.AmountRemaining
		borrowers = append(borrowers, Borrower{
			Name:          emp.EmployeeName,
			ContractTotal: contract,
			Paid:          math.Max(contract-remaining, 0),
			Remaining:     remaining,
		})
	}
	return borrowers
}
