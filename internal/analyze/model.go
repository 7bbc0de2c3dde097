package analyze

import (
	"sort"
	"strings"

	"adjconst-generator/internal/syntax"
)

// Symbol is a declared member of the declaration unit.
type Symbol struct {
	Name   string
	Type   *TypeInfo
	Member *syntax.Member
}

// Model resolves type references and member symbols of one parsed file.
// It is built once per file and only read afterwards, so concurrent readers
// are safe.
type Model struct {
	file     *syntax.File
	types    map[string]*TypeInfo   // qualified metadata name -> definition
	bySimple map[string][]*TypeInfo // metadata name without namespace -> definitions
	usings   []string               // namespaces imported by using directives
	aliases  map[string]string      // using alias -> qualified name
	scopes   []string               // enclosing namespaces, innermost first
	symbols  map[string]*Symbol
}

// NewModel builds the type model of file. Built-in types are always known;
// extra types come from configuration. Types declared in the file itself take
// precedence over both.
func NewModel(file *syntax.File, extra ...KnownType) *Model {
	m := &Model{
		file:     file,
		types:    make(map[string]*TypeInfo),
		bySimple: make(map[string][]*TypeInfo),
		aliases:  make(map[string]string),
		symbols:  make(map[string]*Symbol),
	}

	for _, kt := range BuiltinTypes {
		m.declare(ParseTypeID(kt.Name), kt.Kind)
	}

	for _, kt := range extra {
		m.declare(ParseTypeID(kt.Name), kt.Kind)
	}

	if file == nil {
		return m
	}

	for _, decl := range file.Types {
		kind := TypeKindClass
		switch {
		case decl.Kind.IsValueType():
			kind = TypeKindValue
		case decl.Kind == syntax.DeclInterface:
			kind = TypeKindInterface
		}

		m.declare(TypeID{Namespace: decl.Namespace, Name: MetadataName(decl.Name, decl.Arity)}, kind)
	}

	for _, directive := range file.Usings {
		ns, alias, ok := ParseUsing(directive)
		if !ok {
			continue
		}

		if alias != "" {
			m.aliases[alias] = ns
		} else {
			m.usings = append(m.usings, ns)
		}
	}

	m.scopes = enclosingNamespaces(file.Namespace)
	m.collectSymbols()

	return m
}

func (m *Model) declare(id TypeID, kind TypeKind) {
	name, arity := SplitMetadataName(id.Name)
	info := &TypeInfo{
		ID:    TypeID{Namespace: id.Namespace, Name: MetadataName(name, arity)},
		Kind:  kind,
		Arity: arity,
	}

	key := info.ID.String()
	if prev, ok := m.types[key]; ok {
		// Keep the identity stable for anyone already holding the pointer.
		prev.Kind = kind
		return
	}

	m.types[key] = info
	m.bySimple[info.ID.Name] = append(m.bySimple[info.ID.Name], info)
}

func (m *Model) collectSymbols() {
	if m.file.Unit == nil {
		return
	}

	for _, member := range m.file.Unit.Members {
		if member.Kind == syntax.MemberOther {
			continue
		}

		for _, name := range member.Names {
			if name == "" {
				continue
			}

			m.symbols[name] = &Symbol{
				Name:   name,
				Type:   m.ResolveType(member.Type),
				Member: member,
			}
		}
	}
}

// LookupSymbol returns the symbol of a declared member of the declaration unit.
func (m *Model) LookupSymbol(name string) (*Symbol, bool) {
	sym, ok := m.symbols[name]
	return sym, ok
}

// LookupType returns the definition registered under a qualified metadata name.
func (m *Model) LookupType(qualified string) (*TypeInfo, bool) {
	info, ok := m.types[ParseTypeID(qualified).String()]
	return info, ok
}

// ResolveType resolves a syntactic type reference. It never returns nil;
// references that cannot be resolved yield a type of kind TypeKindError.
func (m *Model) ResolveType(ref syntax.TypeRef) *TypeInfo {
	switch ref.Kind {
	case syntax.TypeRefPredefined:
		qualified, ok := predefinedTypes[ref.Name]
		if !ok {
			return errorType(ref.Text)
		}

		if info, ok := m.types[qualified]; ok {
			return info
		}

		return errorType(ref.Text)

	case syntax.TypeRefNamed:
		return m.lookup(ref, 0)

	case syntax.TypeRefGeneric:
		def := m.lookup(ref, len(ref.Args))
		if def.IsError() {
			return def
		}

		args := make([]*TypeInfo, 0, len(ref.Args))
		for _, arg := range ref.Args {
			args = append(args, m.ResolveType(arg))
		}

		return &TypeInfo{
			ID:         def.ID,
			Kind:       def.Kind,
			TypeArgs:   args,
			Definition: def,
		}

	case syntax.TypeRefArray:
		if ref.Elem == nil {
			return errorType(ref.Text)
		}

		elem := m.ResolveType(*ref.Elem)

		return &TypeInfo{
			ID:   TypeID{Namespace: elem.ID.Namespace, Name: elem.ID.Name + "[]"},
			Kind: TypeKindArray,
			Elem: elem,
			Rank: ref.Rank,
		}

	case syntax.TypeRefNullable:
		if ref.Elem == nil {
			return errorType(ref.Text)
		}

		inner := m.ResolveType(*ref.Elem)
		if !inner.IsValueType() {
			// Nullable annotations on reference types do not change the type.
			return inner
		}

		def := m.types["System.Nullable`1"]

		return &TypeInfo{
			ID:         def.ID,
			Kind:       TypeKindValue,
			TypeArgs:   []*TypeInfo{inner},
			Definition: def,
		}

	default:
		return errorType(ref.Text)
	}
}

// lookup resolves a named reference the way C# name lookup would, limited to
// the known-type table: qualified names directly or through a using alias,
// simple names through the enclosing namespaces, the using directives and the
// global namespace. As a last resort a simple name that is unique across all
// known namespaces is accepted.
func (m *Model) lookup(ref syntax.TypeRef, arity int) *TypeInfo {
	simple := MetadataName(ref.SimpleName(), arity)

	if qualifier := ref.Qualifier(); qualifier != "" {
		if target, ok := m.aliases[qualifier]; ok {
			qualifier = target
		}

		if info, ok := m.types[qualifier+"."+simple]; ok {
			return info
		}

		return errorType(ref.Text)
	}

	if target, ok := m.aliases[ref.Name]; ok && arity == 0 {
		if info, ok := m.types[MetadataNameOf(target)]; ok {
			return info
		}
	}

	for _, ns := range m.scopes {
		if info, ok := m.types[ns+"."+simple]; ok {
			return info
		}
	}

	for _, ns := range m.usings {
		if info, ok := m.types[ns+"."+simple]; ok {
			return info
		}
	}

	if info, ok := m.types[simple]; ok {
		return info
	}

	if candidates := m.bySimple[simple]; len(candidates) == 1 {
		return candidates[0]
	}

	return errorType(ref.Text)
}

// KnownNames returns the simple names of every known type, sorted, with
// generic arity rendered as type parameters ("List<T>").
func (m *Model) KnownNames() []string {
	seen := make(map[string]bool, len(m.bySimple))
	names := make([]string, 0, len(m.bySimple))

	for metadataName := range m.bySimple {
		name, arity := SplitMetadataName(metadataName)
		if arity > 0 {
			name += "<" + strings.TrimSuffix(strings.Repeat("T, ", arity), ", ") + ">"
		}

		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// ParseUsing extracts the namespace (or alias target) of a using directive.
// Static usings are skipped.
func ParseUsing(directive string) (ns, alias string, ok bool) {
	d := strings.TrimSpace(directive)
	d = strings.TrimSuffix(d, ";")
	d = strings.TrimPrefix(d, "global ")

	rest, found := strings.CutPrefix(strings.TrimSpace(d), "using ")
	if !found {
		return "", "", false
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "static ") {
		return "", "", false
	}

	if name, target, isAlias := strings.Cut(rest, "="); isAlias {
		target = strings.TrimPrefix(strings.TrimSpace(target), "global::")
		return strings.Join(strings.Fields(target), ""), strings.TrimSpace(name), true
	}

	rest = strings.TrimPrefix(rest, "global::")

	return strings.Join(strings.Fields(rest), ""), "", true
}

// enclosingNamespaces returns "A.B.C", "A.B", "A" for "A.B.C".
func enclosingNamespaces(ns string) []string {
	if ns == "" {
		return nil
	}

	var scopes []string
	for {
		scopes = append(scopes, ns)

		i := strings.LastIndex(ns, ".")
		if i < 0 {
			return scopes
		}

		ns = ns[:i]
	}
}
