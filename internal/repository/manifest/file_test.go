package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/ota-packager/internal/domain/release"
)

// TestSaveLoadRoundtrip ensures a manifest survives a write/read cycle
// with entry order intact.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewFileRepository(filepath.Join(dir, "ota", "manifest.json"))
	ctx := context.Background()

	m := &release.Manifest{
		Version: "0.0.2",
		Files: []release.FileEntry{
			{Path: "lib/x.py", URL: "https://host/releases/0.0.2/lib/x.py", SHA256: strings.Repeat("a", 64)},
			{Path: "main.py", URL: "https://host/releases/0.0.2/main.py", SHA256: strings.Repeat("b", 64)},
		},
	}

	require.NoError(t, repo.Save(ctx, m))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, m, loaded)
}

// TestSaveCreatesParents verifies missing parent directories are created.
func TestSaveCreatesParents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "manifest.json")
	repo := NewFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), release.NewManifest(release.Version{Patch: 1}, 0)))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

// TestSaveOverwrites checks that an existing manifest is fully replaced
// and leaves no temporary files behind.
func TestSaveOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	repo := NewFileRepository(path)
	ctx := context.Background()

	first := release.NewManifest(release.Version{Patch: 1}, 0)
	require.NoError(t, repo.Save(ctx, first))

	second := release.NewManifest(release.Version{Patch: 2}, 0)
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "0.0.2", loaded.Version)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

// TestLoadMissing verifies ErrNotFound for an absent manifest.
func TestLoadMissing(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "manifest.json"))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestLoadCorrupt verifies broken JSON surfaces as a decode error, not ErrNotFound.
func TestLoadCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileRepository(path).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
