package packager

import (
	"context"

	"github.com/oshokin/ota-packager/internal/domain/release"
	"github.com/oshokin/ota-packager/internal/logger"
	"github.com/oshokin/ota-packager/internal/repository/manifest"
)

// initialVersion is used when no usable prior manifest exists.
var initialVersion = release.Version{Patch: 1}

// ResolveVersion picks the version for this build.
//
// An explicit override wins and must parse; a malformed override is the
// only hard failure here. Otherwise the prior manifest's version is
// bumped by one patch, and when no usable prior version exists the build
// starts over at 0.0.1.
func ResolveVersion(ctx context.Context, explicit string, repo manifest.Repository) (release.Version, error) {
	if explicit != "" {
		return release.Parse(explicit)
	}

	if prior, ok := PriorVersion(ctx, repo); ok {
		resolved := prior.BumpPatch()
		logger.InfoKV(ctx, "Bumping patch from prior manifest", "prior", prior.String(), "resolved", resolved.String())

		return resolved, nil
	}

	logger.InfoKV(ctx, "No usable prior version, starting over", "resolved", initialVersion.String())

	return initialVersion, nil
}

// PriorVersion loads the previously written manifest and parses its version.
// A missing, unreadable or unparseable manifest must never block a new
// build, so every failure reports "no prior version" instead of an error.
func PriorVersion(ctx context.Context, repo manifest.Repository) (release.Version, bool) {
	m, err := repo.Load(ctx)
	if err != nil {
		logger.DebugKV(ctx, "Prior manifest unavailable", "reason", err.Error())
		return release.Version{}, false
	}

	prior, err := release.Parse(m.Version)
	if err != nil {
		logger.WarnKV(ctx, "Prior manifest version does not parse, ignoring it", "version", m.Version)
		return release.Version{}, false
	}

	return prior, true
}
