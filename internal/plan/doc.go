// Package plan turns a parsed declaration unit into the list of member
// records consumed by code generation.
//
// Pipeline:
//  1. For each member of the unit, in declaration order:
//     - reject statements binding several names
//     - resolve the member symbol, degrading to an error type when possible
//     - skip members without a default value
//  2. Normalize the default (strip the "x ?? (x = d)" caching idiom)
//  3. Classify the resolved type against the collection registry
//  4. Emit diagnostics (unresolved types with suggestions)
package plan
