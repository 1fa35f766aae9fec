package readers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"kopkar/pkg/contracts/domain"
)

// ExcelSource reads spreadsheet exports. Every cell is treated as text so
// the downstream normalizer applies one uniform parsing path.
type ExcelSource struct {
	logger *slog.Logger
}

// NewExcelSource creates a spreadsheet source adapter.
func NewExcelSource(logger *slog.Logger) *ExcelSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelSource{logger: logger.With(slog.String("component", "excel_source"))}
}

// Read returns all data rows of the first sheet at path. The first
// non-empty row is taken as the header row. A corrupt file yields an empty
// slice and a log entry, never an error.
func (s *ExcelSource) Read(path string) []domain.RawRecord {
	records, err := s.read(path)
	if err != nil {
		s.logger.Error("failed to read spreadsheet",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}
	return records
}

func (s *ExcelSource) read(path string) ([]domain.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	headerIdx, headers := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("no header row found in sheet %q", sheets[0])
	}

	var records []domain.RawRecord
	for _, row := range rows[headerIdx+1:] {
		if rowEmpty(row) {
			continue
		}
		record := make(domain.RawRecord, len(headers))
		for i, name := range headers {
			if name == "" {
				continue
			}
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// findHeaderRow locates the first non-empty row and returns its trimmed
// cell values as column names.
func findHeaderRow(rows [][]string) (int, []string) {
	for i, row := range rows {
		if rowEmpty(row) {
			continue
		}
		headers := make([]string, len(row))
		for j, cell := range row {
			headers[j] = strings.TrimSpace(cell)
		}
		return i, headers
	}
	return -1, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
