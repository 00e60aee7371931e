package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/ota-packager/internal/service/cleaner"
)

var (
	// stagingRoot is the directory holding leftover staging artifacts.
	stagingRoot string

	// cleanCmd removes staging leftovers from an interrupted update.
	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove leftover staging artifacts",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return cleaner.Run(ctx, &cleaner.Options{
				StagingRoot: stagingRoot,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	cleanCmd.Flags().StringVar(&stagingRoot, "staging-root", cleaner.DefaultStagingRoot, "directory holding staging leftovers")

	rootCmd.AddCommand(cleanCmd)
}
