package rewrite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adjconst-generator/internal/analyze"
	"adjconst-generator/internal/diagnostic"
	"adjconst-generator/internal/gen"
	"adjconst-generator/internal/plan"
)

func rewrite(t *testing.T, opts Options, src string) *Result {
	t.Helper()

	result, err := New(opts).RewriteSource(context.Background(), []byte(src))
	require.NoError(t, err)

	return result
}

func TestRewrite_SimpleValueField(t *testing.T) {
	result := rewrite(t, DefaultOptions(), `
public static class CasinoConst {
    public const int CASINO_SLOT_AMOUNT = 8;
}
`)

	want := `#if EDIT_CONST
public static class CasinoConst {
    public const int CASINO_SLOT_AMOUNT = 8;
}
#else
public static class CasinoConst
{
    public static int CASINO_SLOT_AMOUNT => CasinoConstAdj.I.CASINO_SLOT_AMOUNT ?? 8;
}

public class CasinoConstAdj : ConstantPatches.ConstAdjustment<CasinoConstAdj>
{
    public int? CASINO_SLOT_AMOUNT;
}
#endif //EDIT_CONST
`
	if diff := cmp.Diff(want, result.Text); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, result.Records(), 1)
	assert.Equal(t, plan.CategoryPlainValue, result.Records()[0].Category)
	assert.Empty(t, result.Diagnostics.Warnings)
}

func TestRewrite_LazyArrayProperty(t *testing.T) {
	result := rewrite(t, DefaultOptions(), `
public static class CasinoConst  {
    static int[] _array;
    public static int[] array => _array ?? (_array = new []{1,2,3});
}
`)

	_, generated, found := strings.Cut(result.Text, "#else")
	require.True(t, found)

	assert.Equal(t, 1, strings.Count(generated, "static int[] __array__;"))
	assert.Contains(t, generated,
		"public static int[] array => CasinoConstAdj.I.array ?? (__array__ ?? (__array__ = new []{1,2,3}));")
	assert.Contains(t, generated, "public int[] array;")
	assert.NotContains(t, generated, "_array;")

	require.Len(t, result.Records(), 1)
	assert.Equal(t, plan.CategoryReference, result.Records()[0].Category)
}

func TestRewrite_Collection(t *testing.T) {
	result := rewrite(t, DefaultOptions(), `
public static class CasinoConst {
    public static FrozenArray<int> Bets = new FrozenArray<int>();
}
`)

	assert.Contains(t, result.Text, "public static FrozenArray<int> Bets => CasinoConstAdj.I.Bets;")
	assert.Contains(t, result.Text, "static FrozenArray<int> __Bets__;")
	assert.Contains(t, result.Text,
		"public static FrozenArray<int> DefaultBets => __Bets__ ?? (__Bets__ = new FrozenArray<int>());")
	assert.Contains(t, result.Text, "FrozenArray<int> BetsAdj;")
	assert.Contains(t, result.Text,
		"public FrozenArray<int> Bets { get => BetsAdj ?? DefaultBets; set => BetsAdj = value; }")
}

func TestRewrite_ConfiguredCollection(t *testing.T) {
	opts := DefaultOptions()
	opts.CollectionTypes = []string{"Game.Collections.PatchableList<T>"}

	result := rewrite(t, opts, `using Game.Collections;

public static class Rules {
    public static PatchableList<string> Names = new PatchableList<string>();
    public static FrozenArray<int> Bets = new FrozenArray<int>();
}
`)

	require.Len(t, result.Records(), 2)
	assert.Equal(t, plan.CategoryCollection, result.Records()[0].Category)
	// FrozenArray is no longer registered nor known.
	assert.Equal(t, plan.CategoryUnresolved, result.Records()[1].Category)
	assert.Contains(t, result.Text, "public static PatchableList<string> Names => RulesAdj.I.Names;")
}

func TestRewrite_CustomValueType(t *testing.T) {
	src := `using Game;

public static class Economy {
    public static Money Start = new Money(100);
}
`

	// Unknown type: degrades to unresolved, never nullable.
	result := rewrite(t, DefaultOptions(), src)
	require.Len(t, result.Records(), 1)
	assert.Equal(t, plan.CategoryUnresolved, result.Records()[0].Category)
	assert.Contains(t, result.Text, "public Money Start;")
	require.Len(t, result.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnresolvedType, result.Diagnostics.Warnings[0].Code)

	// Configured as a value type: nullable override, no cache.
	opts := DefaultOptions()
	opts.KnownTypes = []analyze.KnownType{{Name: "Game.Money", Kind: analyze.TypeKindValue}}

	result = rewrite(t, opts, src)
	assert.Contains(t, result.Text, "public Money? Start;")
	assert.Contains(t, result.Text, "public static Money Start => EconomyAdj.I.Start ?? new Money(100);")
	assert.NotContains(t, result.Text, "__Start__")
}

func TestRewrite_ValueTypeDeclaredInFile(t *testing.T) {
	result := rewrite(t, DefaultOptions(), `
public static class Economy {
    public static Money Start = new Money(100);
}

public struct Money {
    public Money(int v) {}
}
`)

	require.Len(t, result.Records(), 1)
	assert.Equal(t, plan.CategoryPlainValue, result.Records()[0].Category)
	assert.Contains(t, result.Text, "public Money? Start;")
}

func TestRewrite_EmptyContainer(t *testing.T) {
	result := rewrite(t, DefaultOptions(), "public static class Empty { }\n")

	for _, marker := range []string{"#if EDIT_CONST", "#else", "#endif //EDIT_CONST"} {
		assert.Equal(t, 1, strings.Count(result.Text, marker), marker)
	}

	assert.Contains(t, result.Text, "public static class Empty\n{\n}")
	assert.Contains(t, result.Text, "public class EmptyAdj : ConstantPatches.ConstAdjustment<EmptyAdj>\n{\n}")
	assert.Empty(t, result.Records())
}

func TestRewrite_MultipleNamesIsFatal(t *testing.T) {
	result, err := New(DefaultOptions()).RewriteSource(context.Background(), []byte(`
public static class CasinoConst {
    public const int K = 8;
    public static int a = 1, b = 2;
}
`))

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, plan.ErrUnsupportedMemberShape))
}

func TestRewrite_MissingDeclarationUnit(t *testing.T) {
	result := rewrite(t, DefaultOptions(), "using System;\n\nnamespace Empty { }\n")

	assert.True(t, result.Empty())
	assert.Nil(t, result.Plan)
	require.Len(t, result.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeMissingDeclarationUnit, result.Diagnostics.Warnings[0].Code)
}

func TestRewrite_Namespace(t *testing.T) {
	result := rewrite(t, DefaultOptions(), `using UnityEngine;

namespace Game.Config
{
    public static class Spawn
    {
        public static Vector3 Origin = new Vector3(0, 1, 0);
        public static string Tag = "spawn";
    }
}
`)

	want := `using UnityEngine;

namespace Game.Config
{
#if EDIT_CONST
    public static class Spawn
    {
        public static Vector3 Origin = new Vector3(0, 1, 0);
        public static string Tag = "spawn";
    }
#else
    public static class Spawn
    {
        public static Vector3 Origin => SpawnAdj.I.Origin ?? new Vector3(0, 1, 0);
        public static string Tag => SpawnAdj.I.Tag ?? "spawn";
    }

    public class SpawnAdj : ConstantPatches.ConstAdjustment<SpawnAdj>
    {
        public Vector3? Origin;
        public string Tag;
    }
#endif //EDIT_CONST
}
`
	if diff := cmp.Diff(want, result.Text); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRewrite_LooseDefaults(t *testing.T) {
	result := rewrite(t, DefaultOptions(), `public static class C {
    static bool Hard = true;
    public static int K = Hard ? 1 : 2;
    public static System.Func<int> F = () => 3;
    public static string[] Names => Hard ? new[]{"a"} : new string[0];
}
`)

	_, generated, found := strings.Cut(result.Text, "#else")
	require.True(t, found)

	assert.Contains(t, generated, "public static int K => CAdj.I.K ?? (Hard ? 1 : 2);")
	assert.Contains(t, generated, "public static System.Func<int> F => CAdj.I.F ?? (() => 3);")
	assert.Contains(t, generated,
		`public static string[] Names => CAdj.I.Names ?? (__Names__ ?? (__Names__ = Hard ? new[]{"a"} : new string[0]));`)
}

func TestRewrite_GenericContainer(t *testing.T) {
	result := rewrite(t, DefaultOptions(), `[Serializable]
public static class Limits<T> where T : struct
{
    public const int Max = 3;
}
`)

	_, generated, found := strings.Cut(result.Text, "#else")
	require.True(t, found)

	assert.Contains(t, generated, "[Serializable]\npublic static class Limits<T> where T : struct\n{")
	assert.Contains(t, generated, "public static int Max => LimitsAdj<T>.I.Max ?? 3;")
	assert.Contains(t, generated,
		"public class LimitsAdj<T> : ConstantPatches.ConstAdjustment<LimitsAdj<T>> where T : struct")
}

func TestRewrite_GeneratedNameCollision(t *testing.T) {
	_, err := New(DefaultOptions()).RewriteSource(context.Background(), []byte(`public static class C {
    public static FrozenArray<int> Bets = new FrozenArray<int>(1);
    public static int BetsAdj = 2;
}`))

	require.ErrorIs(t, err, gen.ErrNameCollision)
}

func TestRewrite_Reprocessing(t *testing.T) {
	r := New(DefaultOptions())
	src := `public static class CasinoConst {
    public const int K = 8;
    public static int[] Bets => _bets ?? (_bets = new []{1,2,3});
}
`

	first, err := r.RewriteSource(context.Background(), []byte(src))
	require.NoError(t, err)

	second, err := r.RewriteSource(context.Background(), []byte(first.Text))
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
}

func TestRewrite_Pure(t *testing.T) {
	r := New(DefaultOptions())
	file, err := r.Loader().Parse(context.Background(), []byte("public static class C { public const int K = 1; }"))
	require.NoError(t, err)

	model := r.Model(file)

	a, err := r.Rewrite(file, model)
	require.NoError(t, err)

	b, err := r.Rewrite(file, model)
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
	assert.NotSame(t, &a.Plan.Records[0], &b.Plan.Records[0])
}
