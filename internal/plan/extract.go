package plan

import (
	"errors"
	"fmt"

	"adjconst-generator/internal/analyze"
	"adjconst-generator/internal/common"
	"adjconst-generator/internal/diagnostic"
	"adjconst-generator/internal/match"
	"adjconst-generator/internal/syntax"
)

// maxSuggestions is the number of "did you mean" names per unresolved type.
const maxSuggestions = 3

var (
	// ErrUnsupportedMemberShape is returned for a statement binding several names.
	ErrUnsupportedMemberShape = errors.New("unsupported member shape")
	// ErrUnresolvedSymbol is returned when a member has no usable symbol at all.
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
)

// MemberError describes the member that aborted extraction.
type MemberError struct {
	Unit   string
	Member string
	Line   int
	Err    error
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("%s: member %q (line %d): %v", e.Unit, e.Member, e.Line, e.Err)
}

func (e *MemberError) Unwrap() error {
	return e.Err
}

// TypeResolver is the type information service used during extraction.
type TypeResolver interface {
	LookupSymbol(name string) (*analyze.Symbol, bool)
	ResolveType(ref syntax.TypeRef) *analyze.TypeInfo
	KnownNames() []string
}

// Extractor builds member records from a declaration unit.
type Extractor struct {
	classifier *Classifier
}

// NewExtractor creates an extractor using the given classifier.
func NewExtractor(classifier *Classifier) *Extractor {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}

	return &Extractor{classifier: classifier}
}

// Extract walks the members of unit in declaration order. It fails only when
// a statement binds several names or a member has no name to resolve; all
// other problems degrade to CategoryUnresolved records and warnings.
func (x *Extractor) Extract(unit *syntax.TypeDecl, types TypeResolver) (*Plan, error) {
	p := &Plan{
		ContainerName:  unit.Name,
		Modifiers:      unit.Modifiers,
		Kind:           unit.Kind,
		TypeParameters: unit.TypeParameters,
		Constraints:    unit.Constraints,
		Attributes:     unit.Attributes,
		Records:        []MemberRecord{},
	}

	for _, member := range unit.Members {
		if member.Kind == syntax.MemberOther {
			continue
		}

		if common.IsMultiple(member.Names) {
			return nil, &MemberError{
				Unit:   unit.Name,
				Member: member.Text,
				Line:   member.Line,
				Err:    fmt.Errorf("%w: %d names bound in one statement", ErrUnsupportedMemberShape, len(member.Names)),
			}
		}

		sym, err := x.symbol(unit, member, types, &p.Diagnostics)
		if err != nil {
			return nil, err
		}

		if member.Default == nil {
			p.Diagnostics.AddInfo(diagnostic.CodeSkippedMember,
				"member has no default value", unit.Name, sym.Name)

			continue
		}

		record := MemberRecord{
			Name:         sym.Name,
			DeclaredType: member.Type.Text,
			Type:         sym.Type,
			Default:      Normalize(member.Default),
			Static:       member.IsStatic(),
			Line:         member.Line,
		}
		record.Category, record.MakeNullable = x.classifier.Classify(sym.Type)

		if record.Category == CategoryUnresolved {
			x.reportUnresolved(unit, &record, types, &p.Diagnostics)
		}

		p.Records = append(p.Records, record)
	}

	return p, nil
}

func (x *Extractor) symbol(
	unit *syntax.TypeDecl,
	member *syntax.Member,
	types TypeResolver,
	diags *diagnostic.Diagnostics,
) (*analyze.Symbol, error) {
	name := member.Name()

	if sym, ok := types.LookupSymbol(name); ok && sym.Type != nil {
		return sym, nil
	}

	if name == "" {
		return nil, &MemberError{
			Unit:   unit.Name,
			Member: member.Text,
			Line:   member.Line,
			Err:    ErrUnresolvedSymbol,
		}
	}

	diags.Add(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     diagnostic.CodeUnresolvedSymbol,
		Message:  "symbol not found, type treated as unresolved",
		Unit:     unit.Name,
		Member:   name,
		Line:     member.Line,
	})

	return &analyze.Symbol{
		Name:   name,
		Type:   &analyze.TypeInfo{ID: analyze.TypeID{Name: member.Type.Text}, Kind: analyze.TypeKindError},
		Member: member,
	}, nil
}

func (x *Extractor) reportUnresolved(
	unit *syntax.TypeDecl,
	record *MemberRecord,
	types TypeResolver,
	diags *diagnostic.Diagnostics,
) {
	diag := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     diagnostic.CodeUnresolvedType,
		Unit:     unit.Name,
		Member:   record.Name,
		Line:     record.Line,
	}

	if record.Type.IsError() {
		diag.Message = fmt.Sprintf("type %s could not be resolved", record.DeclaredType)
		diag.Suggestions = match.Suggest(record.DeclaredType, types.KnownNames(), maxSuggestions)
	} else {
		diag.Message = fmt.Sprintf("generic value type %s is not a registered collection type", record.DeclaredType)
	}

	diags.Add(diag)
}
