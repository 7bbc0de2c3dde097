package gen

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"adjconst-generator/internal/common"
	"adjconst-generator/internal/plan"
	"adjconst-generator/internal/syntax"
)

// ErrNameCollision is returned when a generated declaration would reuse a
// name already declared in the same type.
var ErrNameCollision = errors.New("generated name collides with a member")

// Generator renders the adjustment type and the rebind of a plan.
// It holds only configuration and may be shared between goroutines.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// AdjTypeName returns the name of the adjustment type of a container.
func (g *Generator) AdjTypeName(container string) string {
	return container + g.config.AdjSuffix
}

// adjTypeRef returns the adjustment type as referenced from code, with the
// container's type parameters applied.
func (g *Generator) adjTypeRef(p *plan.Plan) string {
	return g.AdjTypeName(p.ContainerName) + p.TypeParameters
}

// typeData holds all data needed for the declaration templates.
type typeData struct {
	Header  string
	Indent  string
	Members []memberData
}

// memberData is one record with every name and expression precomputed.
type memberData struct {
	Name         string
	Type         string
	IsCollection bool
	IsReference  bool
	Nullable     bool

	// Rebind getter.
	Getter string

	// Cached default slot of collections and references.
	Slot string

	// Collection triad of the adjustment type.
	DefaultAccessor string
	DefaultGetter   string
	OverrideSlot    string
	PropertyGetter  string
}

// slotName wraps a member name for its private cache slot.
func slotName(name string) string {
	return "__" + name + "__"
}

func (g *Generator) buildMember(adjRef string, r *plan.MemberRecord) memberData {
	access := syntax.Ident(adjRef + "." + g.config.Instance + "." + r.Name)
	slot := slotName(r.Name)

	m := memberData{
		Name:         r.Name,
		Type:         r.DeclaredType,
		IsCollection: r.Category == plan.CategoryCollection,
		IsReference:  r.Category == plan.CategoryReference,
		Nullable:     r.MakeNullable,
		Slot:         slot,
	}

	switch r.Category {
	case plan.CategoryCollection:
		m.Getter = syntax.Print(access)
		m.DefaultAccessor = "Default" + common.UpperFirstChar(r.Name)
		m.DefaultGetter = syntax.Print(syntax.Lazy(slot, r.Default))
		m.OverrideSlot = r.Name + g.config.AdjSuffix
		m.PropertyGetter = syntax.Print(&syntax.Coalesce{
			Left:  syntax.Ident(m.OverrideSlot),
			Right: syntax.Ident(m.DefaultAccessor),
		})

	case plan.CategoryReference:
		m.Getter = syntax.Print(&syntax.Coalesce{
			Left:  access,
			Right: &syntax.Paren{Inner: syntax.Lazy(slot, r.Default)},
		})

	default:
		m.Getter = syntax.Print(&syntax.Coalesce{Left: access, Right: syntax.Operand(r.Default)})
	}

	return m
}

func (g *Generator) members(p *plan.Plan) []memberData {
	adjRef := g.adjTypeRef(p)
	members := make([]memberData, 0, len(p.Records))

	for i := range p.Records {
		members = append(members, g.buildMember(adjRef, &p.Records[i]))
	}

	return members
}

// EmitAdjustmentType renders the adjustment type of p: one public override
// slot per record, plus the default/override triad for collections.
// A generic container gets a generic adjustment type with the same
// parameters and constraints.
func (g *Generator) EmitAdjustmentType(p *plan.Plan) (string, error) {
	adjName := g.AdjTypeName(p.ContainerName)
	adjRef := g.adjTypeRef(p)
	members := g.members(p)

	var generated []string
	for _, m := range members {
		if m.IsCollection {
			generated = append(generated, m.Slot, m.DefaultAccessor, m.OverrideSlot)
		}
	}

	if err := checkNames(adjName, members, generated); err != nil {
		return "", err
	}

	header := fmt.Sprintf("public class %s : %s<%s>", adjRef, g.config.BaseType, adjRef)

	data := typeData{
		Header:  withConstraints(header, p.Constraints),
		Indent:  g.config.Indent,
		Members: members,
	}

	return execute(adjustmentTemplate, data)
}

// EmitRebind renders the container again, keeping its attributes, name,
// kind, modifiers, type parameters and constraints, with every member
// reading the adjustment type first.
func (g *Generator) EmitRebind(p *plan.Plan) (string, error) {
	members := g.members(p)

	var generated []string
	for _, m := range members {
		if m.IsReference {
			generated = append(generated, m.Slot)
		}
	}

	if err := checkNames(p.ContainerName, members, generated); err != nil {
		return "", err
	}

	header := p.Kind.String() + " " + p.ContainerName + p.TypeParameters
	if len(p.Modifiers) > 0 {
		header = strings.Join(p.Modifiers, " ") + " " + header
	}

	header = withConstraints(header, p.Constraints)
	if len(p.Attributes) > 0 {
		header = strings.Join(p.Attributes, "\n") + "\n" + header
	}

	data := typeData{
		Header:  header,
		Indent:  g.config.Indent,
		Members: members,
	}

	return execute(rebindTemplate, data)
}

func withConstraints(header string, constraints []string) string {
	if len(constraints) == 0 {
		return header
	}

	return header + " " + strings.Join(constraints, " ")
}

// checkNames fails when a generated name in typeName is already taken by a
// member, by another generated name or by the type itself. Members are
// emitted as they were declared and are not checked against each other.
func checkNames(typeName string, members []memberData, generated []string) error {
	taken := map[string]bool{typeName: true}
	for _, m := range members {
		taken[m.Name] = true
	}

	for _, name := range generated {
		if taken[name] {
			return fmt.Errorf("%w: %s declared twice in %s", ErrNameCollision, name, typeName)
		}

		taken[name] = true
	}

	return nil
}

func execute(tmpl *template.Template, data typeData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}

var rebindTemplate = template.Must(template.New("rebind").Parse(`{{.Header}}
{
{{- $i := .Indent}}
{{- range .Members}}
{{- if .IsCollection}}
{{$i}}public static {{.Type}} {{.Name}} => {{.Getter}};
{{- else if .IsReference}}
{{$i}}static {{.Type}} {{.Slot}};
{{$i}}public static {{.Type}} {{.Name}} => {{.Getter}};
{{- else}}
{{$i}}public static {{.Type}} {{.Name}} => {{.Getter}};
{{- end}}
{{- end}}
}`))

var adjustmentTemplate = template.Must(template.New("adjustment").Parse(`{{.Header}}
{
{{- $i := .Indent}}
{{- range .Members}}
{{- if .IsCollection}}
{{$i}}static {{.Type}} {{.Slot}};
{{$i}}public static {{.Type}} {{.DefaultAccessor}} => {{.DefaultGetter}};
{{$i}}{{.Type}} {{.OverrideSlot}};
{{$i}}public {{.Type}} {{.Name}} { get => {{.PropertyGetter}}; set => {{.OverrideSlot}} = value; }
{{- else if .Nullable}}
{{$i}}public {{.Type}}? {{.Name}};
{{- else}}
{{$i}}public {{.Type}} {{.Name}};
{{- end}}
{{- end}}
}`))
