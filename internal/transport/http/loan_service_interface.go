package http

import (
	"context"

	"kopkar/internal/services"
	"kopkar/pkg/contracts/domain"
)

// LoanReader is the read-side surface the handlers need from the loan
// service. Defined here so handler tests can substitute a stub.
type LoanReader interface {
	Report(ctx context.Context) []domain.EmployeeSummary
	Employees(ctx context.Context, filter services.EmployeeFilter, page int) services.EmployeePage
	Statement(ctx context.Context, employeeID, loanType string) (services.Statement, error)
	Dashboard(ctx context.Context) services.Dashboard
}
