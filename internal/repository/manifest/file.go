package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/ota-packager/internal/domain/release"
)

// Repository defines persistence operations for the update manifest.
type Repository interface {
	Load(ctx context.Context) (*release.Manifest, error)
	Save(ctx context.Context, m *release.Manifest) error
}

// FileRepository persists the manifest to a JSON file on disk.
// Writes go to a temporary file in the destination directory first and are
// renamed into place, so a failed run never leaves a half-written manifest.
type FileRepository struct {
	// path is the filesystem location of the manifest JSON file.
	path string
	// mu protects concurrent access to the manifest file.
	mu sync.Mutex
}

// ErrNotFound is returned when the manifest file does not exist yet.
var ErrNotFound = errors.New("manifest not found")

// manifestFilePermissions is used for the manifest and its parent directories.
const (
	manifestFilePermissions = 0o644
	manifestDirPermissions  = 0o755
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the manifest location this repository reads and writes.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the manifest from disk.
func (r *FileRepository) Load(_ context.Context) (*release.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m release.Manifest
	if err = json.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to disk, creating parent directories as needed.
func (r *FileRepository) Save(_ context.Context, m *release.Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	if err = os.MkdirAll(dir, manifestDirPermissions); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	// Write-then-move keeps the previous manifest intact until the new one
	// is fully on disk.
	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("create temporary manifest: %w", err)
	}

	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("write manifest: %w", err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("close temporary manifest: %w", err)
	}

	if err = os.Chmod(tmpName, manifestFilePermissions); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("chmod manifest: %w", err)
	}

	if err = os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("replace manifest: %w", err)
	}

	return nil
}
