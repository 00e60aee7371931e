// Package checker implements a connectivity smoke test against the
// hosting location: it polls the manifest's stable URL with a bounded
// retry loop and reports whether the hosting answers at all.
package checker
