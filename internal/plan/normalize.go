package plan

import "adjconst-generator/internal/syntax"

// Normalize strips the lazy caching idiom from a default expression:
//
//	a ?? (x = d)  ->  d
//	a ?? b        ->  b
//
// Any other expression is returned unchanged. Parentheses around the
// assignment may be nested.
func Normalize(e syntax.Expr) syntax.Expr {
	coalesce, ok := e.(*syntax.Coalesce)
	if !ok {
		return e
	}

	if assign, ok := unparen(coalesce.Right).(*syntax.Assign); ok {
		return assign.Value
	}

	return coalesce.Right
}

func unparen(e syntax.Expr) syntax.Expr {
	for {
		p, ok := e.(*syntax.Paren)
		if !ok {
			return e
		}

		e = p.Inner
	}
}
