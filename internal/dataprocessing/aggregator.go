package dataprocessing

import (
	"context"
	"log/slog"

	"kopkar/internal/files"
	"kopkar/internal/readers"
	"kopkar/pkg/contracts/domain"
)

// Aggregator is the pipeline orchestrator: it discovers input files, reads
// them through the source adapters, normalizes every row and folds the
// rows into per-employee summaries. Each Load call is a complete pass over
// the current directory contents; nothing is cached between runs.
type Aggregator struct {
	discovery *files.Discovery
	logger    *slog.Logger
}

// NewAggregator creates an aggregator over the given upload directory.
func NewAggregator(uploadDir string, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		discovery: files.NewDiscovery(uploadDir, readers.SupportedExtensions()),
		logger:    logger.With(slog.String("component", "aggregator")),
	}
}

// Load runs one aggregation pass and returns one summary per distinct
// employee, in first-seen order. Per-file read failures cost only that
// file's rows; an unexpected failure inside the run itself is recovered,
// logged, and surfaced as an empty result. Callers therefore cannot tell
// "no data" from "run failed" without the logs, which is deliberate.
func (a *Aggregator) Load(ctx context.Context) (summaries []domain.EmployeeSummary) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "aggregation run failed",
				slog.Any("panic", r))
			summaries = []domain.EmployeeSummary{}
		}
	}()

	found, err := a.discovery.FindDataFiles()
	if err != nil {
		a.logger.ErrorContext(ctx, "file discovery failed",
			slog.String("error", err.Error()))
		return []domain.EmployeeSummary{}
	}
	if len(found) == 0 {
		return []domain.EmployeeSummary{}
	}

	loans := a.readAll(ctx, found)
	return a.summarize(ctx, loans)
}

// readAll reads and normalizes every row of every discovered file, dropping
// rows that normalize to an empty employee id. Row order follows file
// discovery order, then row order within each file.
func (a *Aggregator) readAll(ctx context.Context, found []files.FileInfo) []domain.LoanRecord {
	var loans []domain.LoanRecord
	for _, f := range found {
		source, ok := readers.ForPath(a.logger, f.Path)
		if !ok {
			continue
		}
		rows := source.Read(f.Path)
		kept := 0
		for _, raw := range rows {
			loan := NormalizeRecord(raw, f.Name)
			if loan.EmployeeID == "" {
				// Unassignable rows are dropped silently, not reported.
				continue
			}
			loans = append(loans, loan)
			kept++
		}
		a.logger.InfoContext(ctx, "file processed",
			slog.String("file", f.Name),
			slog.Int("rows", len(rows)),
			slog.Int("kept", kept))
	}
	return loans
}

// summarize groups loans by employee id, preserving first-seen order of
// both groups and members, and folds each group into one summary.
func (a *Aggregator) summarize(ctx context.Context, loans []domain.LoanRecord) []domain.EmployeeSummary {
	order := make([]string, 0)
	grouped := make(map[string][]domain.LoanRecord)
	for _, loan := range loans {
		if _, seen := grouped[loan.EmployeeID]; !seen {
			order = append(order, loan.EmployeeID)
		}
		grouped[loan.EmployeeID] = append(grouped[loan.EmployeeID], loan)
	}

	summaries := make([]domain.EmployeeSummary, 0, len(order))
	for _, id := range order {
		group := grouped[id]
		var totals domain.LoanTotals
		for _, loan := range group {
			totals.Add(loan)
		}

		last := group[len(group)-1]
		summaries = append(summaries, domain.EmployeeSummary{
			EmployeeID:   id,
			EmployeeName: last.EmployeeName,
			Division:     last.Division,
			Totals:       totals,
			Status:       aggregateStatus(group),
			Loans:        group,
			LoanCount:    len(group),
		})
	}

	a.logger.InfoContext(ctx, "aggregation complete",
		slog.Int("loans", len(loans)),
		slog.Int("employees", len(summaries)))
	return summaries
}

// aggregateStatus summarizes one employee's loan statuses: an in-progress
// loan dominates a not-started one, which dominates fully paid.
func aggregateStatus(loans []domain.LoanRecord) domain.LoanStatus {
	hasBelumBayar := false
	for _, loan := range loans {
		switch loan.Status {
		case domain.StatusBerjalan:
			return domain.StatusBerjalan
		case domain.StatusBelumBayar:
			hasBelumBayar = true
		}
	}
	if hasBelumBayar {
		return domain.StatusBelumBayar
	}
	return domain.StatusLunas
}
