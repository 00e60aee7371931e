package checker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oshokin/ota-packager/internal/config"
	"github.com/oshokin/ota-packager/internal/logger"
)

// Options controls the connectivity probe behavior.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// URL optionally overrides the probed URL; defaults to the manifest URL.
	URL string
	// Attempts is how many times the probe retries before giving up.
	Attempts int
	// Interval is the pause between attempts.
	Interval time.Duration
}

const (
	// DefaultAttempts bounds the probe loop.
	DefaultAttempts = 40
	// DefaultInterval is the pause between probe attempts.
	DefaultInterval = 500 * time.Millisecond
)

// errHostingUnreachable indicates the hosting location never answered successfully.
var errHostingUnreachable = errors.New("hosting is unreachable")

// Run probes the manifest's stable URL until it answers with a success
// status or the attempt budget runs out. It is a smoke test for the
// hosting setup, not a content check.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "ota-checker")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	target := opts.URL
	if target == "" {
		target = cfg.ManifestURL()
	}

	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	client := &http.Client{Timeout: cfg.Timeout}

	logger.InfoKV(ctx, "Probing hosting", "url", target, "attempts", attempts)

	for attempt := 1; attempt <= attempts; attempt++ {
		status, probeErr := probe(ctx, client, target)

		switch {
		case probeErr != nil:
			logger.InfoKV(ctx, "Probe failed", "attempt", attempt, "error", probeErr.Error())
		case status >= http.StatusOK && status < http.StatusMultipleChoices:
			logger.InfoKV(ctx, "Hosting reachable", "attempt", attempt, "status", status)
			return nil
		default:
			logger.InfoKV(ctx, "Unexpected status", "attempt", attempt, "status", status)
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return fmt.Errorf("%w: %s after %d attempts", errHostingUnreachable, target, attempts)
}

// probe issues a single HEAD request and reports the status code.
func probe(ctx context.Context, client *http.Client, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, http.NoBody)
	if err != nil {
		return 0, err
	}

	response, err := client.Do(req)
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	return response.StatusCode, nil
}
