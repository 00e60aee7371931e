package integration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/ota-packager/internal/config"
	"github.com/oshokin/ota-packager/internal/domain/release"
	"github.com/oshokin/ota-packager/internal/service/packager"
)

// hexSum returns the lowercase hex SHA-256 of the given content.
func hexSum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// buildOptions returns packager options rooted in dir with an app tree of
// main.py and lib/x.py.
func buildOptions(t *testing.T, dir string) *packager.Options {
	t.Helper()

	appDir := filepath.Join(dir, "app")
	require.NoError(t, os.MkdirAll(filepath.Join(appDir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "main.py"), []byte("print(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "lib", "x.py"), []byte("x=1"), 0o644))

	return &packager.Options{
		ConfigPath:   filepath.Join(dir, config.DefaultConfigFilename),
		Owner:        "octocat",
		Repository:   "pico-firmware",
		AppDir:       appDir,
		ManifestPath: filepath.Join(dir, "ota", "manifest.json"),
		ReleasesRoot: filepath.Join(dir, "releases"),
	}
}

// TestBuild_EndToEnd runs a full build with an explicit version and checks
// the manifest content, entry ordering and the staged snapshot.
func TestBuild_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := buildOptions(t, dir)
	opts.Version = "0.0.2"

	require.NoError(t, packager.Run(context.Background(), opts))

	raw, err := os.ReadFile(opts.ManifestPath)
	require.NoError(t, err)

	var m release.Manifest
	require.NoError(t, json.Unmarshal(raw, &m))

	base := "https://raw.githubusercontent.com/octocat/pico-firmware/main" +
		filepath.ToSlash(opts.ReleasesRoot) + "/0.0.2"

	require.Equal(t, "0.0.2", m.Version)
	require.Equal(t, []release.FileEntry{
		{Path: "lib/x.py", URL: base + "/lib/x.py", SHA256: hexSum("x=1")},
		{Path: "main.py", URL: base + "/main.py", SHA256: hexSum("print(1)")},
	}, m.Files)

	// Snapshot mirrors the app tree.
	staged, err := os.ReadFile(filepath.Join(opts.ReleasesRoot, "0.0.2", "lib", "x.py"))
	require.NoError(t, err)
	require.Equal(t, "x=1", string(staged))

	// Settings were persisted for follow-up commands.
	_, err = os.Stat(opts.ConfigPath)
	require.NoError(t, err)
}

// TestBuild_Deterministic reruns an explicit-version build over an
// unchanged tree and expects byte-identical manifest output.
func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := buildOptions(t, dir)
	opts.Version = "1.0.0"
	ctx := context.Background()

	require.NoError(t, packager.Run(ctx, opts))

	first, err := os.ReadFile(opts.ManifestPath)
	require.NoError(t, err)

	require.NoError(t, packager.Run(ctx, opts))

	second, err := os.ReadFile(opts.ManifestPath)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestBuild_PatchBumpAcrossRuns checks the version sequence over
// successive builds without an override.
func TestBuild_PatchBumpAcrossRuns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := buildOptions(t, dir)
	ctx := context.Background()

	readVersion := func() string {
		raw, err := os.ReadFile(opts.ManifestPath)
		require.NoError(t, err)

		var m release.Manifest
		require.NoError(t, json.Unmarshal(raw, &m))

		return m.Version
	}

	require.NoError(t, packager.Run(ctx, opts))
	require.Equal(t, "0.0.1", readVersion())

	require.NoError(t, packager.Run(ctx, opts))
	require.Equal(t, "0.0.2", readVersion())

	// Both snapshots coexist.
	_, err := os.Stat(filepath.Join(opts.ReleasesRoot, "0.0.1"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(opts.ReleasesRoot, "0.0.2"))
	require.NoError(t, err)
}

// TestBuild_SkipSnapshot verifies the manifest still points at the
// snapshot location while nothing is staged.
func TestBuild_SkipSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := buildOptions(t, dir)
	opts.Version = "0.0.5"
	opts.SkipSnapshot = true

	require.NoError(t, packager.Run(context.Background(), opts))

	_, err := os.Stat(filepath.Join(opts.ReleasesRoot, "0.0.5"))
	require.ErrorIs(t, err, os.ErrNotExist)

	raw, err := os.ReadFile(opts.ManifestPath)
	require.NoError(t, err)

	var m release.Manifest
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Contains(t, m.Files[0].URL, "/0.0.5/")
}

// TestBuild_EmptyAppDir expects the dedicated empty-build error and no manifest.
func TestBuild_EmptyAppDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := buildOptions(t, dir)

	// Empty the app tree.
	require.NoError(t, os.RemoveAll(opts.AppDir))
	require.NoError(t, os.MkdirAll(opts.AppDir, 0o755))

	err := packager.Run(context.Background(), opts)
	require.ErrorIs(t, err, packager.ErrNoFiles)

	_, err = os.Stat(opts.ManifestPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestBuild_InvalidOverride expects a validation error and no output.
func TestBuild_InvalidOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := buildOptions(t, dir)
	opts.Version = "1.x.0"

	err := packager.Run(context.Background(), opts)
	require.ErrorIs(t, err, release.ErrInvalidVersion)

	_, err = os.Stat(opts.ManifestPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}
