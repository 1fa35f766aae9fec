package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "kopkar/internal/errors"
	"kopkar/internal/services"
)

// EmployeeHandler serves the aggregated employee listing and per-employee
// loan statements.
type EmployeeHandler struct {
	service      LoanReader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewEmployeeHandler creates an employee handler.
func NewEmployeeHandler(service LoanReader, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *EmployeeHandler {
	return &EmployeeHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "employee_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the employee routes.
func (h *EmployeeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.ListEmployees)
	r.Get("/{id}/statement", h.GetStatement)
	return r
}

// ListEmployees handles GET /api/employees with search, division, status,
// loan_type and page query parameters.
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.EmployeeFilter{
		Search:   q.Get("search"),
		Division: q.Get("division"),
		Status:   q.Get("status"),
		LoanType: q.Get("loan_type"),
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("page", "page must be a positive integer"))
			return
		}
		page = parsed
	}

	result := h.service.Employees(r.Context(), filter, page)

	h.logger.InfoContext(r.Context(), "employee listing served",
		slog.Int("page", result.Page),
		slog.Int("total_filtered", result.TotalFiltered))

	render.JSON(w, r, result)
}

// GetStatement handles GET /api/employees/{id}/statement with an optional
// loan_type query parameter.
func (h *EmployeeHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "employee id is required"))
		return
	}

	stmt, err := h.service.Statement(r.Context(), employeeID, r.URL.Query().Get("loan_type"))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrEmployeeNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, stmt)
}
