// Package packager builds the OTA update manifest for an application
// directory.
//
// A build collects the shipped files in deterministic order, resolves the
// release version (explicit override, patch bump from the prior manifest,
// or 0.0.1), snapshots the files under releases/<version>/, and writes a
// JSON manifest mapping each file to its raw hosting URL and SHA-256
// digest. Devices poll the manifest from its stable URL and verify the
// digests before applying an update.
package packager
