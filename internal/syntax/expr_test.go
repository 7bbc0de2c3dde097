package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	assert.Equal(t, "", Print(nil))
	assert.Equal(t, "8", Print(&Raw{Text: "8"}))
	assert.Equal(t, "a ?? b", Print(&Coalesce{Left: Ident("a"), Right: Ident("b")}))
	assert.Equal(t, "_array ?? (_array = new []{1,2,3})",
		Print(Lazy("_array", &Raw{Text: "new []{1,2,3}"})))
}

func TestOperand(t *testing.T) {
	ternary := &Raw{Text: "Hard ? 1 : 2", Loose: true}
	assert.Equal(t, "x ?? (Hard ? 1 : 2)", Print(&Coalesce{Left: Ident("x"), Right: Operand(ternary)}))

	assign := &Assign{Target: Ident("a"), Value: &Raw{Text: "1"}}
	assert.Equal(t, "(a = 1)", Print(Operand(assign)))

	literal := &Raw{Text: "8"}
	assert.Same(t, literal, Operand(literal))

	paren := &Paren{Inner: ternary}
	assert.Same(t, paren, Operand(paren))
}

func TestTypeRef_Names(t *testing.T) {
	ref := TypeRef{Kind: TypeRefNamed, Text: "UnityEngine.Vector3", Name: "UnityEngine.Vector3"}
	assert.Equal(t, "Vector3", ref.SimpleName())
	assert.Equal(t, "UnityEngine", ref.Qualifier())
	assert.Equal(t, "UnityEngine.Vector3", ref.String())

	simple := TypeRef{Kind: TypeRefPredefined, Text: "int", Name: "int"}
	assert.Equal(t, "int", simple.SimpleName())
	assert.Equal(t, "", simple.Qualifier())
}

func TestMember_IsStatic(t *testing.T) {
	assert.True(t, (&Member{Modifiers: []string{"public", "const"}}).IsStatic())
	assert.True(t, (&Member{Modifiers: []string{"static"}}).IsStatic())
	assert.False(t, (&Member{Modifiers: []string{"public"}}).IsStatic())
	assert.Equal(t, "", (&Member{}).Name())
}

func TestKinds_String(t *testing.T) {
	assert.Equal(t, "class", DeclClass.String())
	assert.Equal(t, "record struct", DeclRecordStruct.String())
	assert.True(t, DeclEnum.IsValueType())
	assert.False(t, DeclRecord.IsValueType())
	assert.Equal(t, "property", MemberProperty.String())
	assert.Equal(t, "generic", TypeRefGeneric.String())
	assert.Equal(t, "unknown", TypeRefKind(42).String())
}
