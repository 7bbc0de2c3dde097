package syntax

import "strings"

// Expr is an expression node. Only the shapes the rewriter inspects get
// their own node type; everything else is kept as Raw source text.
type Expr interface {
	exprNode()
}

// Coalesce is a null-coalescing expression "Left ?? Right".
type Coalesce struct {
	Left  Expr
	Right Expr
}

// Paren is a parenthesized expression "(Inner)".
type Paren struct {
	Inner Expr
}

// Assign is a simple assignment "Target = Value".
type Assign struct {
	Target Expr
	Value  Expr
}

// Raw is any other expression, kept as source text.
type Raw struct {
	Text  string
	// Loose is set for expressions that bind more loosely than "??":
	// conditionals, lambdas, compound assignments and queries.
	Loose bool
}

func (*Coalesce) exprNode() {}
func (*Paren) exprNode()    {}
func (*Assign) exprNode()   {}
func (*Raw) exprNode()      {}

// Ident builds a Raw expression for a name.
func Ident(name string) Expr {
	return &Raw{Text: name}
}

// Lazy builds the self-assigning cache idiom "slot ?? (slot = value)".
func Lazy(slot string, value Expr) Expr {
	return &Coalesce{
		Left:  Ident(slot),
		Right: &Paren{Inner: &Assign{Target: Ident(slot), Value: value}},
	}
}

// Operand returns e ready to stand as the right operand of "??",
// parenthesized when it would otherwise bind more loosely than the operator.
func Operand(e Expr) Expr {
	switch e := e.(type) {
	case *Assign:
		return &Paren{Inner: e}
	case *Raw:
		if e.Loose {
			return &Paren{Inner: e}
		}
	}

	return e
}

// Print renders an expression back to source text.
func Print(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)

	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
	case *Coalesce:
		writeExpr(sb, e.Left)
		sb.WriteString(" ?? ")
		writeExpr(sb, e.Right)
	case *Paren:
		sb.WriteByte('(')
		writeExpr(sb, e.Inner)
		sb.WriteByte(')')
	case *Assign:
		writeExpr(sb, e.Target)
		sb.WriteString(" = ")
		writeExpr(sb, e.Value)
	case *Raw:
		sb.WriteString(e.Text)
	}
}
