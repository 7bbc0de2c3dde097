package plan

import (
	"adjconst-generator/internal/analyze"
	"adjconst-generator/internal/common"
	"adjconst-generator/internal/diagnostic"
	"adjconst-generator/internal/syntax"
)

// Category is the emission category of a member, assigned once by the
// classifier. Emitters switch on it and never look at the syntax again.
type Category int

const (
	// CategoryUnresolved - the type could not be resolved, or is an
	// unregistered generic value type.
	CategoryUnresolved Category = iota
	// CategoryPlainValue - non-generic value type other than string.
	CategoryPlainValue
	// CategoryStringLike - System.String.
	CategoryStringLike
	// CategoryCollection - a type listed in the collection registry.
	CategoryCollection
	// CategoryReference - any other reference type.
	CategoryReference
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryUnresolved:
		return "unresolved"
	case CategoryPlainValue:
		return "plain_value"
	case CategoryStringLike:
		return "string_like"
	case CategoryCollection:
		return "collection"
	case CategoryReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// MemberRecord is one member of the declaration unit, ready for emission.
type MemberRecord struct {
	// Name is the member identifier.
	Name string
	// DeclaredType is the type as written in source.
	DeclaredType string
	// Type is the resolved type, of kind TypeKindError when resolution failed.
	Type *analyze.TypeInfo
	// Category drives emission in both generated types.
	Category Category
	// Default is the normalized default value expression.
	Default syntax.Expr
	// MakeNullable is true only for CategoryPlainValue.
	MakeNullable bool
	// Static is true when the source member was static or const.
	Static bool
	// Line is the 1-based source line of the member.
	Line int
}

// DefaultText renders the default expression as source text.
func (r *MemberRecord) DefaultText() string {
	return syntax.Print(r.Default)
}

// Plan is the output of extraction for one declaration unit.
type Plan struct {
	// ContainerName is the name of the declaration unit.
	ContainerName string
	// Modifiers of the declaration unit, in source order.
	Modifiers []string
	// Kind of the declaration unit (class, struct, record).
	Kind syntax.DeclKind
	// TypeParameters of a generic unit as written ("<T>"), empty otherwise.
	TypeParameters string
	// Constraints are the unit's "where" clauses.
	Constraints []string
	// Attributes are the unit's attribute lists.
	Attributes []string
	// Records in source declaration order.
	Records []MemberRecord
	// Diagnostics contains warnings from extraction.
	Diagnostics diagnostic.Diagnostics
}

// CountByCategory returns the number of records per category.
func (p *Plan) CountByCategory() map[Category]int {
	counts := make(map[Category]int)
	for i := range p.Records {
		counts[p.Records[i].Category]++
	}

	return counts
}
