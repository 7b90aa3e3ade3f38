package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverDirectory lists the PDF files directly inside dir and wraps each in
// a GraphFile backed by fileLoader. Files are returned in name order so runs
// are reproducible.
func DiscoverDirectory(dir string, fileLoader GraphFileLoader) ([]GraphFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read papers directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]GraphFile, 0, len(names))
	for _, name := range names {
		files = append(files, NewGraphDocumentFile(NewGraphFileParams{
			FilePath: filepath.Join(dir, name),
			Loader:   fileLoader,
		}))
	}
	return files, nil
}

// IsPDF reports whether name has a .pdf extension.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
