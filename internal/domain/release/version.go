package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion indicates a version string that does not parse as
// three dot-separated non-negative integers.
var ErrInvalidVersion = errors.New("version must look like semver (e.g., 0.0.1)")

// versionComponents is the number of numeric components in a version.
const versionComponents = 3

// Version is a semantic version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse converts a string like "1.2.3" into a Version.
// Missing components are zero-padded ("1.2" becomes 1.2.0) and components
// beyond the third are ignored. Non-numeric or negative components fail
// with ErrInvalidVersion.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	for len(parts) < versionComponents {
		parts = append(parts, "0")
	}

	numbers := make([]int, versionComponents)

	for i := 0; i < versionComponents; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: got %q", ErrInvalidVersion, s)
		}

		numbers[i] = n
	}

	return Version{Major: numbers[0], Minor: numbers[1], Patch: numbers[2]}, nil
}

// BumpPatch returns a copy of the version with the patch component incremented.
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
