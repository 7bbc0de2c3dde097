package plan

import "gopkg.in/yaml.v3"

// ExportedPlan is the YAML view of a plan used by the inspect command.
type ExportedPlan struct {
	Container string           `yaml:"container"`
	Kind      string           `yaml:"kind"`
	Modifiers []string         `yaml:"modifiers,omitempty"`
	Members   []ExportedMember `yaml:"members"`
	Warnings  []string         `yaml:"warnings,omitempty"`
}

// ExportedMember is the YAML view of a member record.
type ExportedMember struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Resolved string `yaml:"resolved"`
	Category string `yaml:"category"`
	Nullable bool   `yaml:"nullable,omitempty"`
	Static   bool   `yaml:"static,omitempty"`
	Default  string `yaml:"default"`
	Line     int    `yaml:"line,omitempty"`
}

// Export converts a plan into its YAML view.
func Export(p *Plan) *ExportedPlan {
	out := &ExportedPlan{
		Container: p.ContainerName,
		Kind:      p.Kind.String(),
		Modifiers: p.Modifiers,
		Members:   make([]ExportedMember, 0, len(p.Records)),
	}

	for i := range p.Records {
		r := &p.Records[i]
		out.Members = append(out.Members, ExportedMember{
			Name:     r.Name,
			Type:     r.DeclaredType,
			Resolved: resolvedName(r),
			Category: r.Category.String(),
			Nullable: r.MakeNullable,
			Static:   r.Static,
			Default:  r.DefaultText(),
			Line:     r.Line,
		})
	}

	for _, w := range p.Diagnostics.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}

	return out
}

// ExportYAML renders the plan as YAML.
func ExportYAML(p *Plan) ([]byte, error) {
	return yaml.Marshal(Export(p))
}

func resolvedName(r *MemberRecord) string {
	if r.Type.IsError() {
		return "<error>"
	}

	return r.Type.ID.String()
}
