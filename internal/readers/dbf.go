package readers

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"kopkar/pkg/contracts/domain"
)

// DBF layout constants (dBASE III+). The header is a fixed 32-byte block
// followed by 32-byte field descriptors terminated by 0x0D; records follow
// at the offset the header declares.
const (
	dbfHeaderSize          = 32
	dbfFieldDescriptorSize = 32
	dbfFieldTerminator     = 0x0D
	dbfEOF                 = 0x1A
	dbfDeletedFlag         = '*'
)

// DBFSource reads legacy dBASE tables. Character cells are decoded as
// Latin-1; numeric cells tolerate null bytes, padding and comma decimal
// separators, degrading to zero when unparsable.
type DBFSource struct {
	logger *slog.Logger
}

// NewDBFSource creates a DBF source adapter.
func NewDBFSource(logger *slog.Logger) *DBFSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &DBFSource{logger: logger.With(slog.String("component", "dbf_source"))}
}

// Read returns all undeleted rows of the table at path. A corrupt file
// yields an empty slice and a log entry, never an error.
func (s *DBFSource) Read(path string) []domain.RawRecord {
	records, err := s.read(path)
	if err != nil {
		s.logger.Error("failed to read DBF file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}
	return records
}

type dbfField struct {
	name     string
	kind     byte
	length   int
	decimals int
}

func (s *DBFSource) read(path string) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) < dbfHeaderSize {
		return nil, fmt.Errorf("file too short for DBF header: %d bytes", len(data))
	}

	recordCount := int(binary.LittleEndian.Uint32(data[4:8]))
	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	recordLen := int(binary.LittleEndian.Uint16(data[10:12]))
	if headerLen < dbfHeaderSize || headerLen > len(data) || recordLen <= 0 {
		return nil, fmt.Errorf("invalid DBF header: header_len=%d record_len=%d", headerLen, recordLen)
	}

	fields, err := parseFieldDescriptors(data[:headerLen])
	if err != nil {
		return nil, err
	}

	records := make([]domain.RawRecord, 0, recordCount)
	for offset := headerLen; offset+recordLen <= len(data); offset += recordLen {
		if data[offset] == dbfEOF {
			break
		}
		if data[offset] == dbfDeletedFlag {
			continue
		}
		records = append(records, s.parseRecord(data[offset+1:offset+recordLen], fields))
		if len(records) == recordCount {
			break
		}
	}
	return records, nil
}

func parseFieldDescriptors(header []byte) ([]dbfField, error) {
	var fields []dbfField
	for offset := dbfHeaderSize; offset < len(header); offset += dbfFieldDescriptorSize {
		if header[offset] == dbfFieldTerminator {
			return fields, nil
		}
		if offset+dbfFieldDescriptorSize > len(header) {
			break
		}
		desc := header[offset : offset+dbfFieldDescriptorSize]
		name := strings.TrimRight(string(desc[:11]), "\x00 ")
		fields = append(fields, dbfField{
			name:     name,
			kind:     desc[11],
			length:   int(desc[16]),
			decimals: int(desc[17]),
		})
	}
	return nil, fmt.Errorf("field descriptor terminator not found")
}

func (s *DBFSource) parseRecord(row []byte, fields []dbfField) domain.RawRecord {
	record := make(domain.RawRecord, len(fields))
	offset := 0
	for _, f := range fields {
		if offset+f.length > len(row) {
			record[f.name] = nil
			continue
		}
		cell := row[offset : offset+f.length]
		offset += f.length

		switch f.kind {
		case 'N', 'F':
			record[f.name] = s.parseNumeric(f.name, cell)
		default:
			record[f.name] = decodeLatin1(cell)
		}
	}
	return record
}

// parseNumeric decodes one numeric cell. Legacy tables carry null bytes,
// space padding and locale decimal commas; an unparsable cell degrades to
// zero so one dirty value never aborts the file.
func (s *DBFSource) parseNumeric(name string, cell []byte) any {
	cleaned := strings.TrimSpace(strings.ReplaceAll(string(cell), "\x00", ""))
	if cleaned == "" {
		return nil
	}
	if n, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", "."), 64); err == nil {
		return f
	}
	s.logger.Warn("unparsable numeric cell, using zero",
		slog.String("field", name),
		slog.String("value", cleaned))
	return int64(0)
}

// decodeLatin1 converts a character cell from the table's Latin-1 encoding
// and trims the fixed-width padding.
func decodeLatin1(cell []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(cell)
	if err != nil {
		decoded = cell
	}
	return strings.TrimRight(strings.TrimRight(string(decoded), "\x00"), " ")
}
