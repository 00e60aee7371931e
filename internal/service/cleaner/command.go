package cleaner

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/oshokin/ota-packager/internal/logger"
)

// Options contains inputs for the cleaner entry point.
type Options struct {
	// StagingRoot is the directory holding leftover staging artifacts.
	StagingRoot string
}

// DefaultStagingRoot matches the staging location the device-side applier uses.
const DefaultStagingRoot = "staging"

// Leftovers a crashed or interrupted update can leave behind.
const (
	stagedAppDirName      = "app_new"
	temporaryManifestName = "_manifest_tmp.json"
)

// Run removes leftover staging artifacts. Removal is best-effort: a
// missing artifact is fine, and failures are logged without aborting the
// remaining cleanup.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "ota-cleaner")

	root := opts.StagingRoot
	if root == "" {
		root = DefaultStagingRoot
	}

	removeAll(ctx, filepath.Join(root, stagedAppDirName))
	remove(ctx, filepath.Join(root, temporaryManifestName))

	logger.Info(ctx, "Staging cleaned")

	return nil
}

// removeAll deletes a directory tree, logging the outcome.
func removeAll(ctx context.Context, path string) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.DebugKV(ctx, "Nothing to remove", "path", path)
		return
	}

	if err := os.RemoveAll(path); err != nil {
		logger.WarnKV(ctx, "Could not remove staging directory", "path", path, "error", err.Error())
		return
	}

	logger.InfoKV(ctx, "Removed staging directory", "path", path)
}

// remove deletes a single file, logging the outcome.
func remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.DebugKV(ctx, "Nothing to remove", "path", path)
			return
		}

		logger.WarnKV(ctx, "Could not remove staging file", "path", path, "error", err.Error())

		return
	}

	logger.InfoKV(ctx, "Removed staging file", "path", path)
}
