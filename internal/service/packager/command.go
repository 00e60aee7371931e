package packager

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/oshokin/ota-packager/internal/config"
	"github.com/oshokin/ota-packager/internal/domain/release"
	"github.com/oshokin/ota-packager/internal/logger"
	"github.com/oshokin/ota-packager/internal/repository/manifest"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// ConfigPath is an optional path to persist build settings (defaults to settings YAML).
	ConfigPath string
	// Owner is the GitHub user or organization hosting the release files.
	Owner string
	// Repository is the GitHub repository name.
	Repository string
	// Branch is the branch used in raw file URLs.
	Branch string
	// AppDir is the local application source directory to package.
	AppDir string
	// ManifestPath is where the "latest" manifest is written.
	ManifestPath string
	// ReleasesRoot is the folder holding versioned snapshots.
	ReleasesRoot string
	// Version is an optional explicit version override.
	Version string
	// SkipSnapshot disables copying files into the versioned snapshot.
	// The manifest still points at the snapshot location; hosting the
	// content there becomes the operator's job.
	SkipSnapshot bool
	// Excludes lists additional exact filenames to skip.
	Excludes []string
}

// ErrNoFiles indicates the application directory contained nothing to package.
// It usually means a misconfigured app dir, so callers report it as a
// distinct clean abort instead of a crash.
var ErrNoFiles = errors.New("no files to package")

// builder runs a single manifest build.
// It is unexported—callers should use Run, which encapsulates setup and validation.
type builder struct {
	// cfg holds the hosting identity and layout paths.
	cfg *config.Config
	// repo persists the "latest" manifest.
	repo *manifest.FileRepository
}

// Run executes the packaging workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "ota-packager")

	cfg := &config.Config{
		Owner:        opts.Owner,
		Repository:   opts.Repository,
		Branch:       opts.Branch,
		AppDir:       opts.AppDir,
		ManifestPath: opts.ManifestPath,
		ReleasesRoot: opts.ReleasesRoot,
		Excludes:     opts.Excludes,
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	// Persist settings so later verify/check runs need only the settings file.
	if err := config.Save(opts.ConfigPath, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	b := &builder{
		cfg:  cfg,
		repo: manifest.NewFileRepository(cfg.ManifestPath),
	}

	if err := b.run(ctx, opts); err != nil {
		return err
	}

	logger.Info(ctx, "Packager completed successfully")

	return nil
}

// run walks the pipeline: collect, resolve version, stage, build, save.
func (b *builder) run(ctx context.Context, opts *Options) error {
	excludes := append(DefaultExcludes(), b.cfg.Excludes...)

	files, err := CollectFiles(b.cfg.AppDir, excludes)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w: nothing found under %s", ErrNoFiles, b.cfg.AppDir)
	}

	ver, err := ResolveVersion(ctx, opts.Version, b.repo)
	if err != nil {
		return err
	}

	snapshotDir := filepath.Join(b.cfg.ReleasesRoot, ver.String())

	if opts.SkipSnapshot {
		logger.InfoKV(ctx, "Snapshot staging skipped, host the files yourself", "snapshot", snapshotDir)
	} else {
		logger.InfoKV(ctx, "Staging release snapshot", "snapshot", snapshotDir)

		if err = StageRelease(b.cfg.AppDir, files, snapshotDir); err != nil {
			return fmt.Errorf("stage release: %w", err)
		}
	}

	m, err := BuildManifest(b.cfg.AppDir, files, b.cfg.ReleaseBaseURL(ver.String()), ver)
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}

	logger.InfoKV(ctx, "Saving manifest", "path", b.repo.Path())

	if err = b.repo.Save(ctx, m); err != nil {
		return err
	}

	b.printSummary(ctx, ver, snapshotDir, opts.SkipSnapshot, len(m.Files))

	return nil
}

// printSummary logs human-readable results of the build.
func (b *builder) printSummary(ctx context.Context, ver release.Version, snapshotDir string, skipped bool, fileCount int) {
	logger.InfoKV(ctx, "Build finished",
		"version", ver.String(),
		"app_dir", b.cfg.AppDir,
		"manifest", b.repo.Path(),
		"files", fileCount)

	if !skipped {
		logger.InfoKV(ctx, "Release files written", "snapshot", snapshotDir)
	}

	logger.InfoKV(ctx, "Device should fetch", "manifest_url", b.cfg.ManifestURL())
	logger.InfoKV(ctx, "File base URL", "base_url", b.cfg.ReleaseBaseURL(ver.String())+"/<relative-path>")
}
