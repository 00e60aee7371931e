package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/ota-packager/internal/service/checker"
)

var (
	// checkURL optionally overrides the probed URL.
	checkURL string
	// checkAttempts bounds the probe loop.
	checkAttempts int
	// checkInterval is the pause between attempts.
	checkInterval time.Duration

	// checkCmd probes the hosting location.
	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Probe the hosting location for reachability",
		Long: "Polls the manifest's stable URL with a bounded retry loop " +
			"to confirm the hosting setup answers before a release is pushed.",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return checker.Run(ctx, &checker.Options{
				ConfigPath: configPath,
				URL:        checkURL,
				Attempts:   checkAttempts,
				Interval:   checkInterval,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	checkCmd.Flags().StringVar(&checkURL, "url", "", "URL to probe (defaults to the configured manifest URL)")
	checkCmd.Flags().IntVar(&checkAttempts, "attempts", checker.DefaultAttempts, "number of probe attempts before giving up")
	checkCmd.Flags().DurationVar(&checkInterval, "interval", checker.DefaultInterval, "pause between probe attempts")

	rootCmd.AddCommand(checkCmd)
}
