package packager

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// snapshotDirPermissions is used for snapshot directories.
const snapshotDirPermissions os.FileMode = 0o755

// StageRelease materializes an immutable copy of the collected files under
// snapshotDir, mirroring their paths relative to appDir.
//
// The new tree is populated in a temporary directory next to the target
// and swapped in with a rename, so an interrupted run never leaves a
// partially populated snapshot. Any prior content at snapshotDir is
// removed in full; snapshots are rebuilt, never merged.
func StageRelease(appDir string, files []string, snapshotDir string) error {
	parent := filepath.Dir(snapshotDir)
	if err := os.MkdirAll(parent, snapshotDirPermissions); err != nil {
		return fmt.Errorf("create releases root: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".staging-")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	defer func() {
		// No-op after a successful rename.
		_ = os.RemoveAll(staging)
	}()

	for _, file := range files {
		rel, err := filepath.Rel(appDir, file)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", file, err)
		}

		dest := filepath.Join(staging, rel)
		if err = os.MkdirAll(filepath.Dir(dest), snapshotDirPermissions); err != nil {
			return fmt.Errorf("create snapshot subdirectory: %w", err)
		}

		if err = copyFilePreservingMetadata(file, dest); err != nil {
			return err
		}
	}

	if err = os.RemoveAll(snapshotDir); err != nil {
		return fmt.Errorf("remove previous snapshot: %w", err)
	}

	if err = os.Rename(staging, snapshotDir); err != nil {
		return fmt.Errorf("activate snapshot: %w", err)
	}

	return nil
}

// copyFilePreservingMetadata copies src to dest keeping the file mode and
// modification time of the source.
func copyFilePreservingMetadata(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	source, err := os.Open(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}

	defer func() {
		_ = source.Close()
	}()

	target, err := os.OpenFile(filepath.Clean(dest), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	if _, err = io.Copy(target, source); err != nil {
		_ = target.Close()

		return fmt.Errorf("copy %s: %w", src, err)
	}

	if err = target.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}

	if err = os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve timestamps of %s: %w", dest, err)
	}

	return nil
}
