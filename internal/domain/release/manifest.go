package release

// FileEntry describes a single shipped file within a manifest.
type FileEntry struct {
	// Path is the file location relative to the application root,
	// always with forward slashes. Devices install relative to /app.
	Path string `json:"path"`
	// URL is the absolute location the file is fetched from.
	URL string `json:"url"`
	// SHA256 is the lowercase hex digest of the file contents.
	SHA256 string `json:"sha256"`
}

// Manifest is the update descriptor devices poll before applying a release.
// Files keep the deterministic collection order so repeated builds of the
// same tree serialize identically.
type Manifest struct {
	// Version is the release version rendered as "major.minor.patch".
	Version string `json:"version"`
	// Files lists every shipped file with its URL and content digest.
	Files []FileEntry `json:"files"`
}

// NewManifest produces a manifest for the given version with room for the
// expected number of entries.
func NewManifest(version Version, capacity int) *Manifest {
	return &Manifest{
		Version: version.String(),
		Files:   make([]FileEntry, 0, capacity),
	}
}
