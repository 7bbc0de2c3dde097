package analyze

import (
	"context"
	"fmt"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"adjconst-generator/internal/syntax"
)

// Loader parses C# source into the syntax model.
// A Loader holds no parser state; every call builds its own tree-sitter
// parser, so one Loader may be shared between goroutines.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) parseTree(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	return tree, nil
}

// Parse parses src and extracts usings, namespace and type declarations.
// The first class, struct or record found becomes File.Unit.
func (l *Loader) Parse(ctx context.Context, src []byte) (*syntax.File, error) {
	tree, err := l.parseTree(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	b := &fileBuilder{src: src, file: &syntax.File{}}
	b.walk(tree.RootNode(), "")

	if b.file.Unit != nil {
		b.file.Namespace = b.file.Unit.Namespace
		b.file.FileScopedNamespace = b.fileScoped[b.file.Unit.Namespace]
	}

	return b.file, nil
}

// DumpTree writes the concrete syntax tree of src to w, one node per line,
// indented with '*' by depth.
func (l *Loader) DumpTree(ctx context.Context, src []byte, w io.Writer) error {
	tree, err := l.parseTree(ctx, src)
	if err != nil {
		return err
	}
	defer tree.Close()

	return dumpNode(w, tree.RootNode(), src, 0)
}

func dumpNode(w io.Writer, node *sitter.Node, src []byte, level int) error {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if level == 0 {
			if _, err := fmt.Fprintln(w, "-----------------"); err != nil {
				return err
			}
		}

		text := ""
		if child.ChildCount() == 0 {
			text = " - " + child.Content(src)
		}

		if _, err := fmt.Fprintf(w, "%s %s%s\n", strings.Repeat("*", level), child.Type(), text); err != nil {
			return err
		}

		if err := dumpNode(w, child, src, level+1); err != nil {
			return err
		}
	}

	return nil
}

type fileBuilder struct {
	src        []byte
	file       *syntax.File
	fileScoped map[string]bool
}

func (b *fileBuilder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	return n.Content(b.src)
}

// walk visits the declarations directly contained in node. Namespace bodies
// and preprocessor blocks are entered; type bodies are not.
func (b *fileBuilder) walk(node *sitter.Node, ns string) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "using_directive":
			b.file.Usings = append(b.file.Usings, collapse(b.text(child)))

		case "namespace_declaration":
			body := child.ChildByFieldName("body")
			if body == nil {
				body = firstNamedOfType(child, "declaration_list")
			}

			if body != nil {
				b.walk(body, joinNamespace(ns, b.namespaceName(child)))
			}

		case "file_scoped_namespace_declaration":
			// Older grammars end the declaration at ';' and leave the
			// contained types as siblings; newer ones nest them.
			ns = joinNamespace(ns, b.namespaceName(child))
			if b.fileScoped == nil {
				b.fileScoped = make(map[string]bool)
			}

			b.fileScoped[ns] = true
			b.walk(child, ns)

		case "class_declaration", "struct_declaration", "record_declaration",
			"record_struct_declaration", "interface_declaration", "enum_declaration":
			b.addType(child, ns)

		case "declaration_list":
			b.walk(child, ns)

		default:
			if strings.HasPrefix(child.Type(), "preproc_") || child.Type() == "ERROR" {
				b.walk(child, ns)
			}
		}
	}
}

func (b *fileBuilder) namespaceName(node *sitter.Node) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if c.Type() == "identifier" || c.Type() == "qualified_name" {
				name = c
				break
			}
		}
	}

	return strings.Join(strings.Fields(b.text(name)), "")
}

func (b *fileBuilder) addType(node *sitter.Node, ns string) {
	decl := &syntax.TypeDecl{
		Kind:      declKind(node),
		Name:      b.text(node.ChildByFieldName("name")),
		Namespace: ns,
		Modifiers: b.modifiers(node),
		Text:      strings.TrimSpace(b.text(node)),
		Line:      int(node.StartPoint().Row) + 1,
	}

	if decl.Name == "" {
		decl.Name = b.text(firstNamedOfType(node, "identifier"))
	}

	params := node.ChildByFieldName("type_parameters")
	if params == nil {
		params = firstNamedOfType(node, "type_parameter_list")
	}

	if params != nil {
		decl.Arity = countNamedOfType(params, "type_parameter")
		decl.TypeParameters = collapse(b.text(params))
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		switch c.Type() {
		case "attribute_list":
			decl.Attributes = append(decl.Attributes, collapse(b.text(c)))
		case "type_parameter_constraints_clause":
			decl.Constraints = append(decl.Constraints, collapse(b.text(c)))
		}
	}

	b.file.Types = append(b.file.Types, decl)

	if decl.Kind == syntax.DeclInterface || decl.Kind == syntax.DeclEnum {
		return
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		body = firstNamedOfType(node, "declaration_list")
	}

	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			if member := b.member(body.NamedChild(i)); member != nil {
				decl.Members = append(decl.Members, member)
			}
		}
	}

	if b.file.Unit == nil {
		b.file.Unit = decl
	}
}

func declKind(node *sitter.Node) syntax.DeclKind {
	switch node.Type() {
	case "struct_declaration":
		return syntax.DeclStruct
	case "record_struct_declaration":
		return syntax.DeclRecordStruct
	case "record_declaration":
		for i := 0; i < int(node.ChildCount()); i++ {
			if node.Child(i).Type() == "struct" {
				return syntax.DeclRecordStruct
			}
		}

		return syntax.DeclRecord
	case "interface_declaration":
		return syntax.DeclInterface
	case "enum_declaration":
		return syntax.DeclEnum
	default:
		return syntax.DeclClass
	}
}

func (b *fileBuilder) modifiers(node *sitter.Node) []string {
	var mods []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "modifier" {
			mods = append(mods, strings.TrimSpace(b.text(c)))
		}
	}

	return mods
}

// member converts one entry of a declaration list. Comments and
// preprocessor lines yield nil.
func (b *fileBuilder) member(node *sitter.Node) *syntax.Member {
	kind := node.Type()
	if kind == "comment" || strings.HasPrefix(kind, "preproc") {
		return nil
	}

	m := &syntax.Member{
		Kind:      syntax.MemberOther,
		Modifiers: b.modifiers(node),
		Text:      strings.TrimSpace(b.text(node)),
		Line:      int(node.StartPoint().Row) + 1,
	}

	switch kind {
	case "field_declaration":
		m.Kind = syntax.MemberField
		b.fillField(node, m)

	case "property_declaration":
		m.Kind = syntax.MemberProperty
		m.Type = b.typeRef(node.ChildByFieldName("type"))
		if name := b.text(node.ChildByFieldName("name")); name != "" {
			m.Names = []string{name}
		}

		m.Default = b.propertyDefault(node)

	default:
		if name := b.text(node.ChildByFieldName("name")); name != "" {
			m.Names = []string{name}
		}
	}

	return m
}

func (b *fileBuilder) fillField(node *sitter.Node, m *syntax.Member) {
	decl := firstNamedOfType(node, "variable_declaration")
	if decl == nil {
		return
	}

	typeNode := decl.ChildByFieldName("type")
	if typeNode == nil {
		for i := 0; i < int(decl.NamedChildCount()); i++ {
			if c := decl.NamedChild(i); c.Type() != "variable_declarator" {
				typeNode = c
				break
			}
		}
	}

	m.Type = b.typeRef(typeNode)

	var declarators []*sitter.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if c := decl.NamedChild(i); c.Type() == "variable_declarator" {
			declarators = append(declarators, c)
		}
	}

	for _, d := range declarators {
		name := d.ChildByFieldName("name")
		if name == nil {
			name = firstNamedOfType(d, "identifier")
		}

		m.Names = append(m.Names, b.text(name))
	}

	if len(declarators) == 1 {
		m.Default = b.initializer(declarators[0])
	}
}

// initializer returns the expression after '=' in a variable declarator.
func (b *fileBuilder) initializer(d *sitter.Node) syntax.Expr {
	if clause := firstNamedOfType(d, "equals_value_clause"); clause != nil {
		return b.expr(firstNamedExpr(clause))
	}

	seenEquals := false
	for i := 0; i < int(d.ChildCount()); i++ {
		c := d.Child(i)
		switch {
		case !c.IsNamed() && c.Type() == "=":
			seenEquals = true
		case seenEquals && c.IsNamed() && c.Type() != "comment":
			return b.expr(c)
		}
	}

	return nil
}

// propertyDefault finds the default expression of a property: an expression
// body, a getter with an expression or single return statement, or an
// initializer after the accessor list.
func (b *fileBuilder) propertyDefault(node *sitter.Node) syntax.Expr {
	value := node.ChildByFieldName("value")
	if value == nil {
		value = firstNamedOfType(node, "arrow_expression_clause")
	}

	if value != nil && value.Type() == "arrow_expression_clause" {
		return b.expr(firstNamedExpr(value))
	}

	accessors := node.ChildByFieldName("accessors")
	if accessors == nil {
		accessors = firstNamedOfType(node, "accessor_list")
	}

	if accessors != nil {
		for i := 0; i < int(accessors.NamedChildCount()); i++ {
			acc := accessors.NamedChild(i)
			if acc.Type() != "accessor_declaration" || !isGetter(acc) {
				continue
			}

			if e := b.getterExpr(acc); e != nil {
				return e
			}
		}
	}

	if value != nil {
		return b.expr(value)
	}

	// Older grammars keep "= value;" after the accessor list as an
	// equals_value_clause or a bare expression after '='.
	if clause := firstNamedOfType(node, "equals_value_clause"); clause != nil {
		return b.expr(firstNamedExpr(clause))
	}

	return nil
}

func isGetter(acc *sitter.Node) bool {
	for i := 0; i < int(acc.ChildCount()); i++ {
		if acc.Child(i).Type() == "get" {
			return true
		}
	}

	return false
}

func (b *fileBuilder) getterExpr(acc *sitter.Node) syntax.Expr {
	body := acc.ChildByFieldName("body")
	if body == nil {
		body = firstNamedOfType(acc, "arrow_expression_clause")
	}

	if body == nil {
		body = firstNamedOfType(acc, "block")
	}

	if body == nil {
		return nil
	}

	switch body.Type() {
	case "arrow_expression_clause":
		return b.expr(firstNamedExpr(body))

	case "block":
		var stmts []*sitter.Node
		for i := 0; i < int(body.NamedChildCount()); i++ {
			if c := body.NamedChild(i); c.Type() != "comment" {
				stmts = append(stmts, c)
			}
		}

		if len(stmts) == 1 && stmts[0].Type() == "return_statement" {
			return b.expr(firstNamedExpr(stmts[0]))
		}
	}

	return nil
}

// expr converts the expression shapes the rewriter understands and keeps
// everything else as raw text.
func (b *fileBuilder) expr(n *sitter.Node) syntax.Expr {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "parenthesized_expression":
		if inner := firstNamedExpr(n); inner != nil {
			return &syntax.Paren{Inner: b.expr(inner)}
		}

	case "binary_expression":
		left, right := n.ChildByFieldName("left"), n.ChildByFieldName("right")
		if left != nil && right != nil && b.operator(n, left, right) == "??" {
			return &syntax.Coalesce{Left: b.expr(left), Right: b.expr(right)}
		}

	case "assignment_expression":
		left, right := n.ChildByFieldName("left"), n.ChildByFieldName("right")
		if left != nil && right != nil && b.operator(n, left, right) == "=" {
			return &syntax.Assign{Target: b.expr(left), Value: b.expr(right)}
		}
	}

	return &syntax.Raw{Text: strings.TrimSpace(b.text(n)), Loose: looseExprs[n.Type()]}
}

// looseExprs are the node types binding more loosely than "??".
var looseExprs = map[string]bool{
	"conditional_expression": true,
	"lambda_expression":      true,
	"assignment_expression":  true,
	"query_expression":       true,
}

// operator returns the operator token of a binary or assignment node. The
// source between the operands is used when the grammar exposes no field.
func (b *fileBuilder) operator(n, left, right *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return strings.TrimSpace(b.text(op))
	}

	if op := firstNamedOfType(n, "assignment_operator"); op != nil {
		return strings.TrimSpace(b.text(op))
	}

	if left.EndByte() > right.StartByte() {
		return ""
	}

	return strings.TrimSpace(string(b.src[left.EndByte():right.StartByte()]))
}

func (b *fileBuilder) typeRef(n *sitter.Node) syntax.TypeRef {
	if n == nil {
		return syntax.TypeRef{}
	}

	ref := syntax.TypeRef{Text: collapse(b.text(n))}

	switch n.Type() {
	case "predefined_type":
		ref.Kind = syntax.TypeRefPredefined
		ref.Name = ref.Text

	case "identifier":
		ref.Kind = syntax.TypeRefNamed
		ref.Name = ref.Text

	case "qualified_name", "alias_qualified_name":
		ref.Kind = syntax.TypeRefNamed
		ref.Name = trimGlobal(strings.Join(strings.Fields(ref.Text), ""))

		if last := n.ChildByFieldName("name"); last != nil && last.Type() == "generic_name" {
			generic := b.typeRef(last)
			qualifier := trimGlobal(strings.Join(strings.Fields(b.text(n.ChildByFieldName("qualifier"))), ""))
			ref.Kind = syntax.TypeRefGeneric
			ref.Name = joinNamespace(qualifier, generic.Name)
			ref.Args = generic.Args
		}

	case "generic_name":
		ref.Kind = syntax.TypeRefGeneric

		name := n.ChildByFieldName("name")
		if name == nil {
			name = firstNamedOfType(n, "identifier")
		}

		ref.Name = b.text(name)

		if args := firstNamedOfType(n, "type_argument_list"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				ref.Args = append(ref.Args, b.typeRef(args.NamedChild(i)))
			}
		}

	case "array_type":
		ref.Kind = syntax.TypeRefArray

		elem := b.typeRef(n.ChildByFieldName("type"))
		ref.Elem = &elem
		ref.Rank = 1

		if rank := n.ChildByFieldName("rank"); rank != nil {
			ref.Rank += strings.Count(b.text(rank), ",")
		}

	case "nullable_type":
		ref.Kind = syntax.TypeRefNullable

		inner := n.ChildByFieldName("type")
		if inner == nil && n.NamedChildCount() > 0 {
			inner = n.NamedChild(0)
		}

		elem := b.typeRef(inner)
		ref.Elem = &elem

	case "tuple_type":
		ref.Kind = syntax.TypeRefTuple

	default:
		ref.Kind = syntax.TypeRefUnknown
	}

	return ref
}

func firstNamedOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}

	return nil
}

// firstNamedExpr returns the first named child that is not a comment.
func firstNamedExpr(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "comment" {
			return c
		}
	}

	return nil
}

func countNamedOfType(n *sitter.Node, typ string) int {
	count := 0
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == typ {
			count++
		}
	}

	return count
}

func joinNamespace(outer, inner string) string {
	switch {
	case outer == "":
		return inner
	case inner == "":
		return outer
	default:
		return outer + "." + inner
	}
}

func trimGlobal(name string) string {
	return strings.TrimPrefix(name, "global::")
}

// collapse replaces every whitespace run with a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
