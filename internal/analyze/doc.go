// Package analyze parses C# source and answers type questions about it.
//
// It uses github.com/smacker/go-tree-sitter with the C# grammar to build the
// plain syntax model, and a lightweight type model standing in for a full
// semantic compiler: a table of known types (built-ins, configured types and
// declarations found in the input) against which type references resolve.
//
// Key types:
//   - Loader: tree-sitter parser producing *syntax.File
//   - TypeID: namespace + metadata name (e.g. "FrozenArray`1")
//   - TypeInfo: resolved type with kind (error/value/string/class/interface/array)
//   - Model: symbol lookup and type resolution for one parsed file
package analyze
