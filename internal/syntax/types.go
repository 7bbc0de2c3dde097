package syntax

import (
	"strings"

	"adjconst-generator/internal/common"
)

// File is a parsed source file.
type File struct {
	Usings    []string // using directives, verbatim
	Namespace string   // enclosing namespace of Unit, empty for the global namespace
	// FileScopedNamespace is true for "namespace X;" declarations.
	FileScopedNamespace bool
	// Unit is the first class-like declaration, nil when the file has none.
	Unit *TypeDecl
	// Types lists every type declaration found in the file, Unit included.
	Types []*TypeDecl
}

// DeclKind is the kind of a type declaration.
type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclStruct
	DeclRecord
	DeclRecordStruct
	DeclInterface
	DeclEnum
)

// String returns the C# keyword of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclStruct:
		return "struct"
	case DeclRecord:
		return "record"
	case DeclRecordStruct:
		return "record struct"
	case DeclInterface:
		return "interface"
	case DeclEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// IsValueType reports whether declarations of this kind produce value types.
func (k DeclKind) IsValueType() bool {
	return k == DeclStruct || k == DeclRecordStruct || k == DeclEnum
}

// TypeDecl is a type declaration.
type TypeDecl struct {
	Kind      DeclKind
	Name      string
	Namespace string
	Modifiers []string
	Arity     int // number of type parameters
	Members   []*Member
	Text      string // declaration source without surrounding trivia
	Line      int    // 1-based start line

	// TypeParameters is the type parameter list as written ("<T, U>").
	TypeParameters string
	// Constraints holds the "where" clauses, one per entry.
	Constraints []string
	// Attributes holds the attribute lists ("[Serializable]").
	Attributes []string
}

// HasModifier reports whether the declaration carries the given modifier.
func (d *TypeDecl) HasModifier(mod string) bool {
	return hasModifier(d.Modifiers, mod)
}

// MemberKind distinguishes fields, properties and everything else.
type MemberKind int

const (
	MemberOther MemberKind = iota
	MemberField
	MemberProperty
)

// String returns a human-readable representation of the MemberKind.
func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberProperty:
		return "property"
	case MemberOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// Member is one member declaration of a TypeDecl.
type Member struct {
	Kind      MemberKind
	Modifiers []string
	Type      TypeRef
	// Names holds every name bound by the declaration. Fields may bind several
	// names in one statement ("int a = 1, b = 2;").
	Names []string
	// Default is the initializer or getter expression, nil when absent.
	Default Expr
	Text    string
	Line    int
}

// Name returns the first bound name, or "" when the member binds none.
func (m *Member) Name() string {
	name, _ := common.First(m.Names)
	return name
}

// HasModifier reports whether the member carries the given modifier.
func (m *Member) HasModifier(mod string) bool {
	return hasModifier(m.Modifiers, mod)
}

// IsStatic reports whether the member belongs to the type rather than an
// instance. Constants are implicitly static.
func (m *Member) IsStatic() bool {
	return m.HasModifier("static") || m.HasModifier("const")
}

func hasModifier(mods []string, mod string) bool {
	for _, m := range mods {
		if m == mod {
			return true
		}
	}

	return false
}

// TypeRefKind is the syntactic shape of a type reference.
type TypeRefKind int

const (
	TypeRefUnknown    TypeRefKind = iota
	TypeRefPredefined             // int, string, object, ...
	TypeRefNamed                  // Foo, Ns.Foo
	TypeRefGeneric                // Foo<int>, Ns.Foo<T>
	TypeRefArray                  // int[], Foo[,]
	TypeRefNullable               // int?, Foo?
	TypeRefTuple                  // (int, string)
)

// String returns a human-readable representation of the TypeRefKind.
func (k TypeRefKind) String() string {
	switch k {
	case TypeRefPredefined:
		return "predefined"
	case TypeRefNamed:
		return "named"
	case TypeRefGeneric:
		return "generic"
	case TypeRefArray:
		return "array"
	case TypeRefNullable:
		return "nullable"
	case TypeRefTuple:
		return "tuple"
	default:
		return common.UnknownStr
	}
}

// TypeRef is a type reference as written in source.
type TypeRef struct {
	Kind TypeRefKind
	Text string    // source text, whitespace-collapsed
	Name string    // predefined keyword or (qualified) name without type arguments
	Args []TypeRef // generic type arguments
	Elem *TypeRef  // element of arrays and nullables
	Rank int       // array rank
}

// String returns the type reference as written.
func (t TypeRef) String() string {
	return t.Text
}

// SimpleName returns the last segment of a qualified name.
func (t TypeRef) SimpleName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}

	return t.Name
}

// Qualifier returns the name without its last segment, or "".
func (t TypeRef) Qualifier() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[:i]
	}

	return ""
}
