package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Manager stores uploaded data files in the upload directory and clears
// them on reset. Uploaded names are sanitized; a name collision gets a
// timestamp suffix instead of overwriting the existing file.
type Manager struct {
	uploadDir  string
	extensions map[string]struct{}
	logger     *slog.Logger
}

// NewManager creates a file manager over uploadDir accepting the given
// extensions (lower-cased, with leading dot).
func NewManager(uploadDir string, extensions []string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return &Manager{
		uploadDir:  uploadDir,
		extensions: set,
		logger:     logger.With(slog.String("component", "file_manager")),
	}
}

// Allowed reports whether the filename carries a supported data extension.
func (m *Manager) Allowed(filename string) bool {
	_, ok := m.extensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._ -]`)

// SanitizeName strips path components and unsafe characters from an
// uploaded filename.
func SanitizeName(filename string) string {
	name := filepath.Base(filepath.Clean(filename))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, ". ")
}

// Save writes the uploaded content into the upload directory and returns
// the stored filename, which may carry a timestamp suffix when the original
// name is already taken.
func (m *Manager) Save(filename string, content io.Reader) (string, error) {
	name := SanitizeName(filename)
	if name == "" {
		return "", fmt.Errorf("empty filename after sanitizing %q", filename)
	}
	if !m.Allowed(name) {
		return "", fmt.Errorf("unsupported file type: %s", name)
	}

	if err := os.MkdirAll(m.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	target := filepath.Join(m.uploadDir, name)
	if _, err := os.Stat(target); err == nil {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		name = fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)
		target = filepath.Join(m.uploadDir, name)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}

	m.logger.Info("stored uploaded file",
		slog.String("name", name),
		slog.String("path", target))
	return name, nil
}

// Reset deletes every supported data file from the upload directory and
// returns how many were removed.
func (m *Manager) Reset() (int, error) {
	entries, err := os.ReadDir(m.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read upload directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !m.Allowed(entry.Name()) {
			continue
		}
		path := filepath.Join(m.uploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed++
	}

	m.logger.Info("reset upload directory", slog.Int("removed", removed))
	return removed, nil
}
