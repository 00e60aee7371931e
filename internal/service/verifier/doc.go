// Package verifier audits a written manifest before it is pushed:
// JSON Schema validation of the manifest document, then a digest
// comparison of every entry against the staged release snapshot.
//
// It performs the same integrity check a device runs after downloading,
// but build-side, so broken releases are caught before hosting.
package verifier
