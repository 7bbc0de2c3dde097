package analyze

import (
	"fmt"
	"strconv"
	"strings"

	"adjconst-generator/internal/common"
)

// TypeID uniquely identifies a type by its namespace and metadata name.
type TypeID struct {
	Namespace string // e.g., "System.Collections.Generic"
	Name      string // metadata name, e.g., "List`1"
}

// String returns the qualified metadata name.
func (t TypeID) String() string {
	if t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}

// ParseTypeID splits a qualified metadata name into a TypeID.
// Names written with type parameters ("List<T>", "Dictionary<K, V>") are
// converted to their metadata form first.
func ParseTypeID(qualified string) TypeID {
	qualified = strings.TrimPrefix(strings.TrimSpace(qualified), "global::")
	qualified = MetadataNameOf(qualified)

	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return TypeID{Namespace: qualified[:i], Name: qualified[i+1:]}
	}

	return TypeID{Name: qualified}
}

// MetadataName appends the generic arity suffix to name ("List", 1 -> "List`1").
func MetadataName(name string, arity int) string {
	if arity <= 0 {
		return name
	}

	return name + "`" + strconv.Itoa(arity)
}

// MetadataNameOf converts "Name<T, U>" into "Name`2". Names already in
// metadata form, or without type parameters, are returned unchanged.
func MetadataNameOf(name string) string {
	open := strings.IndexByte(name, '<')
	if open < 0 || !strings.HasSuffix(name, ">") {
		return name
	}

	arity := 1
	depth := 0
	for _, r := range name[open+1 : len(name)-1] {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				arity++
			}
		}
	}

	return MetadataName(name[:open], arity)
}

// SplitMetadataName splits "List`1" into ("List", 1).
func SplitMetadataName(name string) (string, int) {
	i := strings.LastIndexByte(name, '`')
	if i < 0 {
		return name, 0
	}

	arity, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return name, 0
	}

	return name[:i], arity
}

// TypeKind represents the semantic kind of a type.
type TypeKind int

const (
	TypeKindError     TypeKind = iota // unresolved or unsupported
	TypeKindValue                     // struct, enum, numeric, bool, char
	TypeKindString                    // System.String
	TypeKindClass                     // class, record, delegate, object
	TypeKindInterface                 // interface
	TypeKindArray                     // T[]
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindError:
		return "error"
	case TypeKindValue:
		return "value"
	case TypeKindString:
		return "string"
	case TypeKindClass:
		return "class"
	case TypeKindInterface:
		return "interface"
	case TypeKindArray:
		return "array"
	default:
		return common.UnknownStr
	}
}

// ParseTypeKind parses the configuration spelling of a kind.
func ParseTypeKind(s string) (TypeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "value", "struct", "enum":
		return TypeKindValue, nil
	case "string":
		return TypeKindString, nil
	case "class", "reference", "record":
		return TypeKindClass, nil
	case "interface":
		return TypeKindInterface, nil
	default:
		return TypeKindError, fmt.Errorf("unknown type kind %q", s)
	}
}

// TypeInfo describes a resolved type.
type TypeInfo struct {
	ID   TypeID
	Kind TypeKind
	// Arity is the number of type parameters of a generic definition.
	Arity int
	// TypeArgs are the arguments of a constructed generic type.
	TypeArgs []*TypeInfo
	// Definition is the generic definition of a constructed type.
	Definition *TypeInfo
	// Elem is the element type of arrays.
	Elem *TypeInfo
	Rank int
}

// IsError returns true if the type failed to resolve.
func (t *TypeInfo) IsError() bool {
	return t == nil || t.Kind == TypeKindError
}

// IsGeneric returns true for generic definitions and constructed generic types.
func (t *TypeInfo) IsGeneric() bool {
	return t != nil && (t.Arity > 0 || len(t.TypeArgs) > 0)
}

// IsString returns true for System.String.
func (t *TypeInfo) IsString() bool {
	return t != nil && t.Kind == TypeKindString
}

// IsValueType returns true for structs, enums and primitive value types.
func (t *TypeInfo) IsValueType() bool {
	return t != nil && t.Kind == TypeKindValue
}

// IsReferenceType returns true for strings, classes, interfaces and arrays.
func (t *TypeInfo) IsReferenceType() bool {
	if t == nil {
		return false
	}

	switch t.Kind {
	case TypeKindString, TypeKindClass, TypeKindInterface, TypeKindArray:
		return true
	default:
		return false
	}
}

// OriginalDefinition returns the generic definition of a constructed type,
// or the type itself.
func (t *TypeInfo) OriginalDefinition() *TypeInfo {
	if t != nil && t.Definition != nil {
		return t.Definition
	}

	return t
}

func errorType(text string) *TypeInfo {
	return &TypeInfo{ID: TypeID{Name: text}, Kind: TypeKindError}
}
