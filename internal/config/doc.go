// Package config defines packager settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the hosting identity (owner, repository, branch)
// and the repository layout paths (app dir, manifest path, releases root),
// and derives the raw content URLs composed from them.
package config
