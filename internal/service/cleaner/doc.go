// Package cleaner removes leftover staging artifacts an interrupted
// device-side update can leave behind: the partially staged application
// directory and the temporary manifest. Removal is best-effort and never
// fails the run.
package cleaner
