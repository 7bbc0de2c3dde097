package gen

import (
	"fmt"
	"strings"

	"adjconst-generator/internal/common"
)

// LineEnding is the line terminator of generated output.
type LineEnding int

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
)

// String returns the configuration spelling of the line ending.
func (l LineEnding) String() string {
	switch l {
	case LineEndingLF:
		return "lf"
	case LineEndingCRLF:
		return "crlf"
	default:
		return common.UnknownStr
	}
}

// Sequence returns the characters terminating a line.
func (l LineEnding) Sequence() string {
	if l == LineEndingCRLF {
		return "\r\n"
	}

	return "\n"
}

// ParseLineEnding parses "lf" or "crlf", case-insensitively.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf":
		return LineEndingLF, nil
	case "crlf":
		return LineEndingCRLF, nil
	default:
		return LineEndingLF, fmt.Errorf("unknown line ending %q", s)
	}
}

// Guard holds the markers separating the original declaration from the
// generated ones. They are emitted verbatim.
type Guard struct {
	Open      string
	Separator string
	Close     string
}

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// AdjSuffix is appended to the container name to name the adjustment type.
	AdjSuffix string
	// BaseType is the generic base of the adjustment type, parameterized by it.
	BaseType string
	// Instance is the shared instance member exposed by BaseType.
	Instance string
	// Guard markers around the original and generated sections.
	Guard Guard
	// Indent is one indentation level.
	Indent string
	// LineEnding of the assembled output.
	LineEnding LineEnding
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		AdjSuffix: "Adj",
		BaseType:  "ConstantPatches.ConstAdjustment",
		Instance:  "I",
		Guard: Guard{
			Open:      "#if EDIT_CONST",
			Separator: "#else",
			Close:     "#endif //EDIT_CONST",
		},
		Indent:     "    ",
		LineEnding: LineEndingLF,
	}
}
