// Package match provides name normalization, Levenshtein distance and
// ranking of known type names for "did you mean" suggestions.
//
// Key functions:
//   - NormalizeTypeName: folds a C# type name for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known type names against an unresolved one
package match
