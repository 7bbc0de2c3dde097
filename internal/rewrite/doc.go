// Package rewrite is the entry point of the constants rewriter: it parses a
// C# file, extracts and classifies the members of its declaration unit and
// assembles the guarded original, rebind and adjustment declarations.
//
// Rewrite is pure and touches no files; RewriteSource adds parsing and the
// type model in front of it.
package rewrite
