package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/ota-packager/internal/service/verifier"
)

var (
	// verifyManifestPath optionally overrides the manifest location from settings.
	verifyManifestPath string
	// verifyReleasesRoot optionally overrides the snapshot root from settings.
	verifyReleasesRoot string

	// verifyCmd audits the most recent build.
	verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify the written manifest against its release snapshot",
		Long: "Validates the manifest against its JSON schema and recomputes " +
			"every entry's SHA-256 digest against the staged snapshot, the same " +
			"check a device performs after downloading.",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return verifier.Run(ctx, &verifier.Options{
				ConfigPath:   configPath,
				ManifestPath: verifyManifestPath,
				ReleasesRoot: verifyReleasesRoot,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	verifyCmd.Flags().StringVar(&verifyManifestPath, "manifest-path", "", "manifest to verify (defaults to the configured path)")
	verifyCmd.Flags().StringVar(&verifyReleasesRoot, "releases-root", "", "snapshot root to verify against (defaults to the configured path)")

	rootCmd.AddCommand(verifyCmd)
}
