package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"kopkar/pkg/contracts/domain"
)

// Column widths in millimetres, tuned for landscape A4 (277mm printable).
var pdfColWidths = []float64{22, 48, 30, 26, 26, 16, 20, 16, 26, 26, 21}

// PDFWriter writes employee loan reports as printable PDF tables.
type PDFWriter struct {
	logger *slog.Logger
}

// NewPDFWriter creates a PDF report writer.
func NewPDFWriter(logger *slog.Logger) *PDFWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFWriter{logger: logger.With(slog.String("component", "pdf_writer"))}
}

// WriteEmployeeReport writes the full report to path as a landscape A4
// table. Money columns use thousands separators; long tables paginate with
// the header row repeated on every page.
func (w *PDFWriter) WriteEmployeeReport(path string, summaries []domain.EmployeeSummary) error {
	w.logger.Info("writing PDF report",
		slog.String("path", path),
		slog.Int("employees", len(summaries)))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, "Data Koperasi Karyawan", "", 1, "C", false, 0, "")
		pdf.Ln(2)
		writePDFHeaderRow(pdf)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 245)
	for i, s := range summaries {
		cells := pdfRow(s)
		fill := i%2 == 1
		for col, cell := range cells {
			align := "L"
			if col >= 3 && col <= 9 {
				align = "R"
			}
			pdf.CellFormat(pdfColWidths[col], 6, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	return nil
}

func writePDFHeaderRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(52, 58, 64)
	pdf.SetTextColor(255, 255, 255)
	for col, h := range ReportHeaders {
		pdf.CellFormat(pdfColWidths[col], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
}

func pdfRow(s domain.EmployeeSummary) []string {
	return []string{
		s.EmployeeID,
		s.EmployeeName,
		s.Division,
		moneyGrouped(s.Totals.PrincipalAmount),
		moneyGrouped(s.Totals.AmountBilledTotal),
		fmt.Sprintf("%d", s.Totals.TermCount),
		fmt.Sprintf("%d", s.Totals.PaymentsMade),
		fmt.Sprintf("%d", s.Totals.InstallmentsRemaining),
		moneyGrouped(s.Totals.AmountPaid),
		moneyGrouped(s.Totals.AmountRemaining),
		string(s.Status),
	}
}
