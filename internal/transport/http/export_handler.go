package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	apierrors "kopkar/internal/errors"
	"kopkar/internal/exporter"
	"kopkar/pkg/contracts/domain"
)

const exportBaseName = "export_data_koperasi"

// reportWriter renders one full employee report to a file.
type reportWriter interface {
	WriteEmployeeReport(path string, summaries []domain.EmployeeSummary) error
}

// ExportHandler renders the aggregated report into a downloadable file.
type ExportHandler struct {
	service      LoanReader
	exportDir    string
	writers      map[string]reportWriter
	contentTypes map[string]string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates an export handler writing into exportDir.
func NewExportHandler(service LoanReader, exportDir string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:   service,
		exportDir: exportDir,
		writers: map[string]reportWriter{
			"csv":  exporter.NewCSVWriter(logger),
			"xlsx": exporter.NewExcelWriter(logger),
			"pdf":  exporter.NewPDFWriter(logger),
		},
		contentTypes: map[string]string{
			"csv":  "text/csv; charset=utf-8",
			"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"pdf":  "application/pdf",
		},
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{format}", h.ExportReport)
	return r
}

// ExportReport handles GET /api/exports/{format}: the full aggregated
// report is rendered server-side and served as an attachment.
func (h *ExportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	writer, ok := h.writers[format]
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format",
			fmt.Sprintf("unsupported export format: %s (want csv, xlsx or pdf)", format)))
		return
	}

	summaries := h.service.Report(r.Context())

	filename := exportBaseName + "." + format
	path := filepath.Join(h.exportDir, filename)
	if err := writer.WriteEmployeeReport(path, summaries); err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("format", format),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
		return
	}

	h.logger.InfoContext(r.Context(), "report exported",
		slog.String("format", format),
		slog.Int("employees", len(summaries)))

	w.Header().Set("Content-Type", h.contentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}
