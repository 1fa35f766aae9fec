package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "kopkar/internal/errors"
	"kopkar/internal/files"
)

// FileHandler manages the uploaded data files: listing, multipart upload
// and reset.
type FileHandler struct {
	manager        *files.Manager
	discovery      *files.Discovery
	maxUploadBytes int64
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewFileHandler creates a file handler.
func NewFileHandler(manager *files.Manager, discovery *files.Discovery, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FileHandler {
	return &FileHandler{
		manager:        manager,
		discovery:      discovery,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "file_handler")),
		errorHandler:   errorHandler,
	}
}

// Routes returns the file management routes.
func (h *FileHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.ListFiles)
	r.Post("/", h.UploadFiles)
	r.Delete("/", h.ResetFiles)
	return r
}

// ListFiles handles GET /api/files.
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	found, err := h.discovery.FindDataFiles()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrFileSystem)
		return
	}
	if found == nil {
		found = []files.FileInfo{}
	}
	render.JSON(w, r, map[string]any{
		"files": found,
		"count": len(found),
	})
}

// uploadResult reports the outcome of one multipart upload request.
type uploadResult struct {
	Saved  []string `json:"saved"`
	Errors []string `json:"errors,omitempty"`
}

// UploadFiles handles POST /api/files. The request carries one or more
// files in the "file" multipart field; files with unsupported extensions
// are reported per-name without failing the whole request.
func (h *FileHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	uploads := r.MultipartForm.File["file"]
	if len(uploads) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "no files selected for upload"))
		return
	}

	var result uploadResult
	for _, header := range uploads {
		if header.Filename == "" {
			continue
		}
		if !h.manager.Allowed(header.Filename) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: unsupported file type (only .dbf and .xlsx)", header.Filename))
			continue
		}

		file, err := header.Open()
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: failed to read upload", header.Filename))
			continue
		}
		name, err := h.manager.Save(header.Filename, file)
		file.Close()
		if err != nil {
			h.logger.ErrorContext(r.Context(), "upload failed",
				slog.String("file", header.Filename),
				slog.String("error", err.Error()))
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: failed to store file", header.Filename))
			continue
		}
		result.Saved = append(result.Saved, name)
	}

	h.logger.InfoContext(r.Context(), "upload processed",
		slog.Int("saved", len(result.Saved)),
		slog.Int("failed", len(result.Errors)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// ResetFiles handles DELETE /api/files: every data file is removed.
func (h *FileHandler) ResetFiles(w http.ResponseWriter, r *http.Request) {
	removed, err := h.manager.Reset()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrFileSystem)
		return
	}
	render.JSON(w, r, map[string]any{"removed": removed})
}
