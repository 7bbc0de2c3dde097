package analyze

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adjconst-generator/internal/syntax"
)

const casinoSource = `using System;
using UnityEngine;

namespace Game.Config
{
    public static class CasinoConst
    {
        public const int K = 8;
        public static string Title = "casino";
        public static int[] Bets => _bets ?? (_bets = new []{1,2,3});
        static int[] _bets;
        public static int Lives { get { return 3; } }
        public static void Reset() {}
    }
}
`

func parse(t *testing.T, src string) *syntax.File {
	t.Helper()

	file, err := NewLoader().Parse(context.Background(), []byte(src))
	require.NoError(t, err)

	return file
}

func TestLoader_Parse_Unit(t *testing.T) {
	file := parse(t, casinoSource)

	assert.Equal(t, []string{"using System;", "using UnityEngine;"}, file.Usings)
	assert.Equal(t, "Game.Config", file.Namespace)
	assert.False(t, file.FileScopedNamespace)

	require.NotNil(t, file.Unit)
	assert.Equal(t, "CasinoConst", file.Unit.Name)
	assert.Equal(t, syntax.DeclClass, file.Unit.Kind)
	assert.Equal(t, []string{"public", "static"}, file.Unit.Modifiers)
	assert.Equal(t, 6, file.Unit.Line)
	assert.True(t, len(file.Unit.Text) > 0 && file.Unit.Text[:6] == "public")
	require.Len(t, file.Unit.Members, 6)
}

func TestLoader_Parse_Members(t *testing.T) {
	members := parse(t, casinoSource).Unit.Members

	k := members[0]
	assert.Equal(t, syntax.MemberField, k.Kind)
	assert.Equal(t, []string{"K"}, k.Names)
	assert.Equal(t, syntax.TypeRefPredefined, k.Type.Kind)
	assert.Equal(t, "int", k.Type.Name)
	assert.True(t, k.IsStatic())
	assert.Equal(t, "8", syntax.Print(k.Default))

	title := members[1]
	assert.Equal(t, `"casino"`, syntax.Print(title.Default))

	bets := members[2]
	assert.Equal(t, syntax.MemberProperty, bets.Kind)
	assert.Equal(t, "Bets", bets.Name())
	assert.Equal(t, syntax.TypeRefArray, bets.Type.Kind)
	require.NotNil(t, bets.Type.Elem)
	assert.Equal(t, "int", bets.Type.Elem.Name)
	assert.Equal(t, 1, bets.Type.Rank)

	coalesce, ok := bets.Default.(*syntax.Coalesce)
	require.True(t, ok, "expected coalesce, got %T", bets.Default)
	paren, ok := coalesce.Right.(*syntax.Paren)
	require.True(t, ok)
	assign, ok := paren.Inner.(*syntax.Assign)
	require.True(t, ok)
	assert.Equal(t, "new []{1,2,3}", syntax.Print(assign.Value))

	assert.Nil(t, members[3].Default)
	assert.Equal(t, "3", syntax.Print(members[4].Default))

	assert.Equal(t, syntax.MemberOther, members[5].Kind)
}

func TestLoader_Parse_MultipleDeclarators(t *testing.T) {
	file := parse(t, "class C { public static int a = 1, b = 2; }")

	require.NotNil(t, file.Unit)
	require.Len(t, file.Unit.Members, 1)
	assert.Equal(t, []string{"a", "b"}, file.Unit.Members[0].Names)
	assert.Nil(t, file.Unit.Members[0].Default)
}

func TestLoader_Parse_TypeRefs(t *testing.T) {
	file := parse(t, `class C {
    static global::System.Collections.Generic.List<int> a = null;
    static FrozenArray<string> b = null;
    static int? c = null;
    static UnityEngine.Vector3 d = default;
    static float[,] e = null;
}`)

	members := file.Unit.Members
	require.Len(t, members, 5)

	assert.Equal(t, syntax.TypeRefGeneric, members[0].Type.Kind)
	assert.Equal(t, "System.Collections.Generic.List", members[0].Type.Name)
	require.Len(t, members[0].Type.Args, 1)
	assert.Equal(t, "int", members[0].Type.Args[0].Name)

	assert.Equal(t, syntax.TypeRefGeneric, members[1].Type.Kind)
	assert.Equal(t, "FrozenArray", members[1].Type.Name)
	assert.Equal(t, "FrozenArray<string>", members[1].Type.Text)

	assert.Equal(t, syntax.TypeRefNullable, members[2].Type.Kind)
	require.NotNil(t, members[2].Type.Elem)
	assert.Equal(t, "int", members[2].Type.Elem.Name)

	assert.Equal(t, syntax.TypeRefNamed, members[3].Type.Kind)
	assert.Equal(t, "UnityEngine.Vector3", members[3].Type.Name)

	assert.Equal(t, syntax.TypeRefArray, members[4].Type.Kind)
	assert.Equal(t, 2, members[4].Type.Rank)
}

func TestLoader_Parse_NoUnit(t *testing.T) {
	file := parse(t, "using System;\n")

	assert.Nil(t, file.Unit)
	assert.Empty(t, file.Types)
	assert.Equal(t, []string{"using System;"}, file.Usings)
}

func TestLoader_Parse_FirstClassWins(t *testing.T) {
	file := parse(t, "struct Point { public int X; }\nclass First { }\nclass Second { }\n")

	require.NotNil(t, file.Unit)
	assert.Equal(t, "Point", file.Unit.Name)
	assert.Equal(t, syntax.DeclStruct, file.Unit.Kind)
	assert.Len(t, file.Types, 3)
}

func TestLoader_Parse_FileScopedNamespace(t *testing.T) {
	file := parse(t, "namespace Game.Config;\n\npublic class C { public const int K = 1; }\n")

	require.NotNil(t, file.Unit)
	assert.Equal(t, "Game.Config", file.Namespace)
	assert.True(t, file.FileScopedNamespace)
}

func TestLoader_Parse_LooseDefaults(t *testing.T) {
	members := parse(t, `public static class Rules {
    public static int K = Hard ? 1 : 2;
    public static System.Func<int> F = () => 3;
    public static int N = 1 + 2;
}`).Unit.Members
	require.Len(t, members, 3)

	for i, want := range []syntax.Raw{
		{Text: "Hard ? 1 : 2", Loose: true},
		{Text: "() => 3", Loose: true},
		{Text: "1 + 2"},
	} {
		raw, ok := members[i].Default.(*syntax.Raw)
		require.True(t, ok, members[i].Name())
		assert.Equal(t, want, *raw, members[i].Name())
	}
}

func TestLoader_Parse_GenericUnit(t *testing.T) {
	unit := parse(t, `[Serializable]
public static class Limits<T, U> where T : struct where U : class
{
    public const int Max = 3;
}`).Unit
	require.NotNil(t, unit)

	assert.Equal(t, "Limits", unit.Name)
	assert.Equal(t, 2, unit.Arity)
	assert.Equal(t, "<T, U>", unit.TypeParameters)
	assert.Equal(t, []string{"where T : struct", "where U : class"}, unit.Constraints)
	assert.Equal(t, []string{"[Serializable]"}, unit.Attributes)
}

func TestLoader_DumpTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLoader().DumpTree(context.Background(), []byte("class C { }"), &buf))

	out := buf.String()
	assert.Contains(t, out, "-----------------")
	assert.Contains(t, out, " class_declaration")
	assert.Contains(t, out, "* identifier - C")
}
