// Package diagnostic provides structured warnings and errors for the
// constants rewriter.
//
// Key capabilities:
//   - Missing declaration unit warnings
//   - Unresolved type warnings with "did you mean" suggestions
//   - Configuration validation errors
package diagnostic
