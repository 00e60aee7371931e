package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/ota-packager/internal/config"
	"github.com/oshokin/ota-packager/internal/logger"
	"github.com/oshokin/ota-packager/internal/service/packager"
	"github.com/oshokin/ota-packager/internal/version"
)

// exitCodeEmptyBuild distinguishes "nothing to package" from real failures.
const exitCodeEmptyBuild = 2

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel controls logging verbosity.
	logLevel string

	// Build inputs.
	owner           string
	repository      string
	branch          string
	appDir          string
	manifestPath    string
	releasesRoot    string
	explicitVersion string
	skipSnapshot    bool
	extraExcludes   []string

	// rootCmd builds the OTA manifest; maintenance actions are subcommands.
	rootCmd = &cobra.Command{
		Use:   "ota-packager",
		Short: "Build the OTA update manifest for an application directory",
		Long: "Collects the application files, resolves the release version, " +
			"snapshots them under releases/<version>/ and writes the manifest " +
			"devices poll for over-the-air updates.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &packager.Options{
				ConfigPath:   configPath,
				Owner:        owner,
				Repository:   repository,
				Branch:       branch,
				AppDir:       appDir,
				ManifestPath: manifestPath,
				ReleasesRoot: releasesRoot,
				Version:      explicitVersion,
				SkipSnapshot: skipSnapshot,
				Excludes:     extraExcludes,
			}

			return packager.Run(ctx, options)
		},
	}
)

// Execute runs the ota-packager CLI and exits with non-zero status on error.
// An empty application directory exits with a dedicated code so CI can tell
// misconfiguration from breakage.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, packager.ErrNoFiles) {
			os.Exit(exitCodeEmptyBuild)
		}

		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error, fatal)")

	rootCmd.Flags().StringVar(&owner, "owner", "", "GitHub user or organization hosting the release files")
	rootCmd.Flags().StringVar(&repository, "repo", "", "GitHub repository name")
	rootCmd.Flags().StringVar(&branch, "branch", config.DefaultBranch, "branch name used for raw URLs")
	rootCmd.Flags().StringVar(&appDir, "app-dir", config.DefaultAppDir, "local app source directory to package")
	rootCmd.Flags().StringVar(&manifestPath, "manifest-path", config.DefaultManifestPath, "path to write the latest manifest")
	rootCmd.Flags().StringVar(&releasesRoot, "releases-root", config.DefaultReleasesRoot, "folder where versioned files are written")
	rootCmd.Flags().StringVar(&explicitVersion, "version", "", "version like 0.0.2; bumps patch from the existing manifest when omitted")
	rootCmd.Flags().BoolVar(&skipSnapshot, "skip-snapshot", false, "do not copy files into releases/<version>/; the manifest still points there")
	rootCmd.Flags().StringArrayVar(&extraExcludes, "exclude", nil, "additional filename to exclude (can repeat)")

	_ = rootCmd.MarkFlagRequired("owner")
	_ = rootCmd.MarkFlagRequired("repo")
}
