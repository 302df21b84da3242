package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// SupportedExtensions lists the image files picked up from directories
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// ImageLoader implements ports.ImageSource using the filesystem
type ImageLoader struct {
	recursive bool
}

// Ensure ImageLoader implements ImageSource
var _ ports.ImageSource = (*ImageLoader)(nil)

// NewImageLoader creates a loader. With recursive set, directories are
// walked in full instead of one level deep.
func NewImageLoader(recursive bool) *ImageLoader {
	return &ImageLoader{recursive: recursive}
}

// Load reads every image named by paths, in order. Files are read as given;
// directories contribute their supported image files sorted by path.
// A path listed twice is read once.
func (l *ImageLoader) Load(paths ...string) ([]domain.ImageRecord, error) {
	files, err := l.Scan(paths...)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ImageRecord, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		records = append(records, domain.NewImageRecord(file, data))
	}
	return records, nil
}

// Scan resolves paths to the image files Load would read
func (l *ImageLoader) Scan(paths ...string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(file string) {
		if !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}

	for _, path := range paths {
		path = expandHome(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if !info.IsDir() {
			add(filepath.Clean(path))
			continue
		}

		found, err := l.scanDir(path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

func (l *ImageLoader) scanDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !l.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if IsImageFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	return files, nil
}

// IsImageFile reports whether name has a supported image extension
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}
