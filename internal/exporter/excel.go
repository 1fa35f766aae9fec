package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"kopkar/pkg/contracts/domain"
)

const reportSheet = "Data Koperasi"

// ExcelWriter writes employee loan reports as XLSX workbooks.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an XLSX report writer.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger.With(slog.String("component", "excel_writer"))}
}

// WriteEmployeeReport writes the full report to path. Numeric columns stay
// numeric so the workbook can be filtered and summed directly.
func (w *ExcelWriter) WriteEmployeeReport(path string, summaries []domain.EmployeeSummary) error {
	w.logger.Info("writing XLSX report",
		slog.String("path", path),
		slog.Int("employees", len(summaries)))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	headers := make([]any, len(ReportHeaders))
	for i, h := range ReportHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row coordinate %d: %w", i, err)
		}
		row := reportCells(s)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
