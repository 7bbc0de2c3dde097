package match

import (
	"strings"
	"unicode"
)

// NormalizeTypeName folds a type name for fuzzy comparison: the namespace,
// "global::", type arguments and generic arity are dropped, CamelCase
// separators removed and the result lower-cased.
//
//	"global::UnityEngine.Vector3" -> "vector3"
//	"FrozenArray<int>"            -> "frozenarray"
//	"PatchableList`1"             -> "patchablelist"
func NormalizeTypeName(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "global::")

	if i := strings.IndexAny(s, "<`["); i >= 0 {
		s = s[:i]
	}

	s = strings.TrimSuffix(s, "?")

	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}

	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "Vector3Int" -> ["Vector3", "Int"]
//   - "XMLDocument" -> ["XML", "Document"]
//   - "patchable_list" -> ["patchable", "list"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken reports a lower-to-upper transition ("vectorInt") or
// the end of an acronym ("XMLDocument" splits before 'D').
func shouldStartNewToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
