package packager

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// checksumChunkSize bounds per-file memory while hashing.
const checksumChunkSize = 64 * 1024

// FileChecksum streams the file through SHA-256 in fixed-size chunks and
// returns the lowercase hex digest. The digest depends only on the file
// contents, never on filesystem metadata.
func FileChecksum(path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()

	buffer := make([]byte, checksumChunkSize)
	if _, err = io.CopyBuffer(hasher, file, buffer); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
