package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/ota-packager/internal/config"
)

// writeSettings persists minimal settings and returns their path.
func writeSettings(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(path, &config.Config{
		Owner:      "octocat",
		Repository: "pico-firmware",
	}))

	return path
}

// TestRun_Reachable expects success on the first attempt against a live server.
func TestRun_Reachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := Run(context.Background(), &Options{
		ConfigPath: writeSettings(t),
		URL:        server.URL,
		Attempts:   1,
	})
	require.NoError(t, err)
}

// TestRun_RecoversAfterFailures expects success once the server starts answering.
func TestRun_RecoversAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := Run(context.Background(), &Options{
		ConfigPath: writeSettings(t),
		URL:        server.URL,
		Attempts:   5,
		Interval:   time.Millisecond,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, calls.Load(), int32(3))
}

// TestRun_Unreachable expects a failure after the attempt budget.
func TestRun_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := Run(context.Background(), &Options{
		ConfigPath: writeSettings(t),
		URL:        server.URL,
		Attempts:   2,
		Interval:   time.Millisecond,
	})
	require.Error(t, err)
}
