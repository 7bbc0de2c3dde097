// Package gen renders the generated C# for a member plan.
//
// Generation uses text/template over precomputed member data; expressions
// are built as syntax trees and printed, never spliced as strings.
//
// Output parts:
//   - Adjustment type: one override slot per member
//   - Rebind: the container with accessors consulting the override first
//   - Assembly: usings, namespace, guard markers around the original and
//     the generated declarations, normalized line endings
package gen
