package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the hosting identity and layout paths shared by the packager commands.
type Config struct {
	// Owner is the GitHub user or organization whose repository hosts the release files.
	Owner string `yaml:"owner"`
	// Repository is the GitHub repository name used to compose raw file URLs.
	Repository string `yaml:"repository"`
	// Branch is the branch name used in raw file URLs.
	Branch string `yaml:"branch"`
	// AppDir is the local application source directory to package.
	AppDir string `yaml:"app_dir"`
	// ManifestPath is where the "latest" manifest is written inside the repository.
	ManifestPath string `yaml:"manifest_path"`
	// ReleasesRoot is the folder holding versioned snapshot directories.
	ReleasesRoot string `yaml:"releases_root"`
	// Excludes lists additional exact filenames skipped during collection.
	Excludes []string `yaml:"excludes,omitempty"`
	// Timeout is the duration for network operations (connectivity checks).
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for packager settings.
	DefaultConfigFilename = "ota-packager-settings.yaml"

	// DefaultBranch is the branch used in raw URLs unless overridden.
	DefaultBranch = "main"

	// DefaultAppDir is the application source directory packaged by default.
	DefaultAppDir = "app"

	// DefaultManifestPath is the default repository-relative manifest location.
	DefaultManifestPath = "ota/manifest.json"

	// DefaultReleasesRoot is the default folder for versioned snapshots.
	DefaultReleasesRoot = "releases"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// rawHost is the host serving raw repository content.
	rawHost = "https://raw.githubusercontent.com"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errOwnerRequired is returned when the hosting owner is missing.
	errOwnerRequired = errors.New("hosting owner must be provided")
	// errRepositoryRequired is returned when the hosting repository is missing.
	errRepositoryRequired = errors.New("hosting repository must be provided")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Owner == "" {
		return errOwnerRequired
	}

	if cfg.Repository == "" {
		return errRepositoryRequired
	}

	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}

	if cfg.AppDir == "" {
		cfg.AppDir = DefaultAppDir
	}

	if cfg.ManifestPath == "" {
		cfg.ManifestPath = DefaultManifestPath
	}

	if cfg.ReleasesRoot == "" {
		cfg.ReleasesRoot = DefaultReleasesRoot
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	rawURL := cfg.ManifestURL()
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("invalid manifest URL %q: %w", rawURL, err)
	}

	return nil
}

// ReleaseBaseURL returns the URL prefix under which a version's files are hosted.
// Relative file paths are appended to it when building manifest entries.
func (c *Config) ReleaseBaseURL(version string) string {
	return rawHost + "/" + path.Join(c.Owner, c.Repository, c.Branch, filepath.ToSlash(c.ReleasesRoot), version)
}

// ManifestURL returns the stable "latest" manifest URL devices poll.
// It is independent of the version: every build overwrites the same location.
func (c *Config) ManifestURL() string {
	return rawHost + "/" + path.Join(c.Owner, c.Repository, c.Branch, filepath.ToSlash(c.ManifestPath))
}
