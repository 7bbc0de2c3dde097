package gen

import (
	"strings"
)

// Parts are the pieces joined by Assemble.
type Parts struct {
	// Usings are the using directives of the input, verbatim.
	Usings []string
	// Namespace encloses the declarations when not empty.
	Namespace string
	// FileScoped selects "namespace X;" over a block namespace.
	FileScoped bool
	// Original is the source text of the declaration unit.
	Original string
	// Rebind is the regenerated container.
	Rebind string
	// Adjustment is the adjustment type.
	Adjustment string
}

// Assemble joins the parts: usings, namespace opening, guard-open, the
// original declaration, guard-separator, rebind, adjustment type,
// guard-close and namespace closing. Inside a block namespace declarations
// are indented one level; guard markers stay in the first column. Line
// endings are normalized and the text ends with exactly one.
func (g *Generator) Assemble(parts Parts) string {
	var lines []string

	for _, using := range parts.Usings {
		lines = append(lines, strings.TrimSpace(using))
	}

	if len(lines) > 0 {
		lines = append(lines, "")
	}

	indent := ""

	switch {
	case parts.Namespace == "":
	case parts.FileScoped:
		lines = append(lines, "namespace "+parts.Namespace+";", "")
	default:
		lines = append(lines, "namespace "+parts.Namespace, "{")
		indent = g.config.Indent
	}

	block := func(text string) {
		for _, line := range splitLines(dedent(text)) {
			if line == "" {
				lines = append(lines, "")
				continue
			}

			lines = append(lines, indent+line)
		}
	}

	lines = append(lines, g.config.Guard.Open)
	block(parts.Original)
	lines = append(lines, g.config.Guard.Separator)
	block(parts.Rebind)
	lines = append(lines, "")
	block(parts.Adjustment)
	lines = append(lines, g.config.Guard.Close)

	if parts.Namespace != "" && !parts.FileScoped {
		lines = append(lines, "}")
	}

	eol := g.config.LineEnding.Sequence()

	return strings.Join(lines, eol) + eol
}

// splitLines splits on "\r\n", "\r" and "\n" and trims trailing blanks of
// each line. Leading and trailing empty lines are dropped.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Trim(s, "\n")

	if s == "" {
		return nil
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return lines
}

// dedent removes from every line but the first the indentation of the last
// line. Declaration text starts at its keyword, so its first line carries no
// indentation while the rest keep the one of the enclosing scope, which the
// closing brace on the last line shows.
func dedent(text string) string {
	lines := splitLines(text)
	if len(lines) < 2 {
		return strings.Join(lines, "\n")
	}

	last := lines[len(lines)-1]
	base := last[:len(last)-len(strings.TrimLeft(last, " \t"))]

	if base == "" {
		return strings.Join(lines, "\n")
	}

	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimPrefix(lines[i], base)
	}

	return strings.Join(lines, "\n")
}
