package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"backoffice/internal/model"

	"github.com/google/uuid"
)

// DiskStorage writes media uploads under a single root directory. Stored
// names are prefixed with a random id so two uploads of "logo.png" never
// collide, and a slugified original name keeps files recognizable on disk.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) (*DiskStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root dir: %w", err)
	}
	return &DiskStorage{root: root}, nil
}

// Save streams r into a new file and returns its path relative to the root.
func (s *DiskStorage) Save(fileName string, r io.Reader) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := model.Slugify(strings.TrimSuffix(filepath.Base(fileName), ext))
	if base == "" {
		base = "fichier"
	}
	rel := fmt.Sprintf("%s-%s%s", uuid.NewString()[:8], base, ext)

	f, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", 0, fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("storage: write file: %w", err)
	}
	return rel, written, nil
}

// Remove deletes a stored file. Paths escaping the root are rejected.
func (s *DiskStorage) Remove(storagePath string) error {
	clean := filepath.Clean(storagePath)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("storage: invalid path %q", storagePath)
	}
	return os.Remove(filepath.Join(s.root, clean))
}

// Root returns the storage root directory (used to serve files statically).
func (s *DiskStorage) Root() string { return s.root }
