package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one discovered data file.
type FileInfo struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Discovery enumerates loan data files in a base directory.
type Discovery struct {
	baseDir    string
	extensions map[string]struct{}
}

// NewDiscovery creates a discovery instance over baseDir accepting the
// given extensions (lower-cased, with leading dot).
func NewDiscovery(baseDir string, extensions []string) *Discovery {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return &Discovery{baseDir: baseDir, extensions: set}
}

// FindDataFiles returns every supported data file directly under the base
// directory, sorted by name. The lexicographic order is what makes the
// aggregation's "last record wins" policy deterministic across runs; it is
// not guaranteed to be chronological.
func (d *Discovery) FindDataFiles() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read directory %s: %w", d.baseDir, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := d.extensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, FileInfo{
			Path:    filepath.Join(d.baseDir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})
	return found, nil
}
