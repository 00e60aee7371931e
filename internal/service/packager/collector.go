package packager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrAppDirNotFound indicates the application root is missing or not a directory.
var ErrAppDirNotFound = errors.New("app dir not found")

// DefaultExcludes returns the filenames skipped on every build.
func DefaultExcludes() []string {
	return []string{".DS_Store", "Thumbs.db"}
}

// CollectFiles enumerates every regular file under appDir, skipping files
// whose name is in excludes or starts with a dot. The result is sorted
// case-insensitively by the full path string so repeated builds of the
// same tree produce identical manifests.
//
// An empty result is not an error; callers decide whether an empty build
// is acceptable.
func CollectFiles(appDir string, excludes []string) ([]string, error) {
	info, err := os.Stat(appDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrAppDirNotFound, appDir)
	}

	excluded := make(map[string]struct{}, len(excludes))
	for _, name := range excludes {
		excluded[name] = struct{}{}
	}

	var files []string

	err = filepath.WalkDir(appDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !d.Type().IsRegular() {
			return nil
		}

		name := d.Name()
		if _, skip := excluded[name]; skip {
			return nil
		}

		// Hidden files are never shipped.
		if strings.HasPrefix(name, ".") {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", appDir, err)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})

	return files, nil
}
