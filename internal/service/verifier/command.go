package verifier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/ota-packager/internal/config"
	"github.com/oshokin/ota-packager/internal/logger"
	"github.com/oshokin/ota-packager/internal/repository/manifest"
	"github.com/oshokin/ota-packager/internal/service/packager"
)

// Options contains inputs for the verifier entry point.
type Options struct {
	// ConfigPath is the path to the settings YAML file.
	ConfigPath string
	// ManifestPath optionally overrides the manifest location from settings.
	ManifestPath string
	// ReleasesRoot optionally overrides the snapshot root from settings.
	ReleasesRoot string
}

var (
	// ErrManifestInvalid indicates the manifest violates its JSON Schema.
	ErrManifestInvalid = errors.New("manifest does not match schema")
	// ErrChecksumMismatch indicates snapshot content differs from the manifest digests.
	ErrChecksumMismatch = errors.New("snapshot content does not match manifest")
)

// Run audits the most recent build: the manifest must satisfy the schema
// and every entry's digest must match the file staged under
// <releases-root>/<version>/. It reports every mismatch, not just the first.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "ota-verifier")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	manifestPath := cfg.ManifestPath
	if opts.ManifestPath != "" {
		manifestPath = opts.ManifestPath
	}

	releasesRoot := cfg.ReleasesRoot
	if opts.ReleasesRoot != "" {
		releasesRoot = opts.ReleasesRoot
	}

	raw, err := os.ReadFile(filepath.Clean(manifestPath))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	violations, err := validateSchema(raw)
	if err != nil {
		return err
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrManifestInvalid, strings.Join(violations, "; "))
	}

	repo := manifest.NewFileRepository(manifestPath)

	m, err := repo.Load(ctx)
	if err != nil {
		return err
	}

	snapshotDir := filepath.Join(releasesRoot, m.Version)
	logger.InfoKV(ctx, "Verifying snapshot against manifest",
		"version", m.Version, "snapshot", snapshotDir, "files", len(m.Files))

	var mismatches []string

	for _, entry := range m.Files {
		staged := filepath.Join(snapshotDir, filepath.FromSlash(entry.Path))

		checksum, sumErr := packager.FileChecksum(staged)
		if sumErr != nil {
			mismatches = append(mismatches, fmt.Sprintf("%s: %v", entry.Path, sumErr))
			continue
		}

		if checksum != entry.SHA256 {
			mismatches = append(mismatches, fmt.Sprintf("%s: digest %s, manifest says %s", entry.Path, checksum, entry.SHA256))
		}
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, strings.Join(mismatches, "; "))
	}

	logger.Info(ctx, "Manifest and snapshot verified")

	return nil
}
