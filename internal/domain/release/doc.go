// Package release defines the update manifest model: the manifest record
// with its per-file entries and the semantic version triple with its
// parsing and bumping rules.
package release
