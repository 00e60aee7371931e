package packager

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oshokin/ota-packager/internal/domain/release"
)

// BuildManifest produces a manifest for the collected files. Each entry
// carries the file's path relative to appDir (with forward slashes), its
// retrieval URL composed as "<baseURL>/<relative path>", and its SHA-256
// digest. The input order is preserved exactly; ordering is the
// collector's job.
func BuildManifest(appDir string, files []string, baseURL string, ver release.Version) (*release.Manifest, error) {
	m := release.NewManifest(ver, len(files))
	baseURL = strings.TrimRight(baseURL, "/")

	for _, file := range files {
		rel, err := filepath.Rel(appDir, file)
		if err != nil {
			return nil, fmt.Errorf("relativize %s: %w", file, err)
		}

		relPosix := filepath.ToSlash(rel)

		checksum, err := FileChecksum(file)
		if err != nil {
			return nil, err
		}

		m.Files = append(m.Files, release.FileEntry{
			Path:   relPosix,
			URL:    baseURL + "/" + relPosix,
			SHA256: checksum,
		})
	}

	return m, nil
}
