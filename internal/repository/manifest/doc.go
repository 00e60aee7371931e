// Package manifest implements persistence for the update Manifest.
//
// The FileRepository stores and loads the manifest as indented JSON on
// disk and exposes a Repository interface that the packager and verifier
// services depend on.
package manifest
