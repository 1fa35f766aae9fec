package readers

import (
	"log/slog"
	"path/filepath"
	"strings"

	"kopkar/pkg/contracts/domain"
)

// Source reads every row of one input file as raw records. Read never
// returns an error: failures are logged and yield an empty slice.
type Source interface {
	Read(path string) []domain.RawRecord
}

// ForPath selects the source adapter for a file path by extension. The
// second return value is false for unsupported extensions.
func ForPath(logger *slog.Logger, path string) (Source, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dbf":
		return NewDBFSource(logger), true
	case ".xlsx":
		return NewExcelSource(logger), true
	default:
		return nil, false
	}
}

// SupportedExtensions lists the file extensions the adapters understand,
// lower-cased with leading dot.
func SupportedExtensions() []string {
	return []string{".dbf", ".xlsx"}
}
