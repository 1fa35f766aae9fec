package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kopkar/pkg/contracts/domain"
)

// CSVWriter writes employee loan reports as CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV report writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteEmployeeReport writes the full report to path. The file starts with
// a UTF-8 BOM so spreadsheet applications decode it correctly.
func (w *CSVWriter) WriteEmployeeReport(path string, summaries []domain.EmployeeSummary) error {
	w.logger.Info("writing CSV report",
		slog.String("path", path),
		slog.Int("employees", len(summaries)))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(ReportHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, s := range summaries {
		if err := writer.Write(ReportRow(s)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return writer.Error()
}
