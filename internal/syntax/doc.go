// Package syntax holds the plain value model of a parsed C# source file.
//
// The model is deliberately small: it carries only what the rewriter needs
// from a constants container and is built once by the analyzer.
//
// Key types:
//   - File: using directives, namespace and the declared types
//   - TypeDecl: a class-like declaration and its members
//   - Member: a field or property with its type reference and default expression
//   - TypeRef: a type reference as written in source
//   - Expr: Coalesce, Paren, Assign or Raw expression nodes
package syntax
