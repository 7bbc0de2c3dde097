// Package cli hosts the rewriter: file reading and writing with retries,
// batch runs over glob patterns, the interactive command loop and the
// file watcher. Failures of one file are logged and never stop the others.
package cli
