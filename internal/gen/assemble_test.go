package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adjconst-generator/internal/common"
)

func TestAssemble_GlobalNamespace(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	out := g.Assemble(Parts{
		Usings:     []string{"using System;"},
		Original:   "public static class C\n{\n    public const int K = 8;\n}",
		Rebind:     "public static class C\n{\n}",
		Adjustment: "public class CAdj : ConstantPatches.ConstAdjustment<CAdj>\n{\n}",
	})

	assertText(t, `using System;

#if EDIT_CONST
public static class C
{
    public const int K = 8;
}
#else
public static class C
{
}

public class CAdj : ConstantPatches.ConstAdjustment<CAdj>
{
}
#endif //EDIT_CONST
`, out)
}

func TestAssemble_BlockNamespace(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	out := g.Assemble(Parts{
		Namespace:  "Game.Config",
		Original:   "public class C\r\n    {\r\n        public const int K = 8;\r\n    }",
		Rebind:     "public class C\n{\n}",
		Adjustment: "public class CAdj\n{\n}",
	})

	assertText(t, `namespace Game.Config
{
#if EDIT_CONST
    public class C
    {
        public const int K = 8;
    }
#else
    public class C
    {
    }

    public class CAdj
    {
    }
#endif //EDIT_CONST
}
`, out)
}

func TestAssemble_FileScopedCRLF(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.LineEnding = LineEndingCRLF
	cfg.Guard = Guard{Open: "// <original>", Separator: "// <generated>", Close: "// </generated>"}
	g := NewGenerator(cfg)

	out := g.Assemble(Parts{
		Namespace:  "Game",
		FileScoped: true,
		Original:   "class C { }",
		Rebind:     "class C\n{\n}",
		Adjustment: "public class CAdj\n{\n}",
	})

	assert.True(t, strings.HasPrefix(out, "namespace Game;\r\n\r\n// <original>\r\nclass C { }\r\n// <generated>\r\n"))
	assert.True(t, strings.HasSuffix(out, "// </generated>\r\n"))
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")
}

func TestAssemble_GuardsOnce(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())
	out := g.Assemble(Parts{Original: "class C {}", Rebind: "class C\n{\n}", Adjustment: "public class CAdj\n{\n}"})

	for _, marker := range []string{"#if EDIT_CONST", "#else", "#endif //EDIT_CONST"} {
		assert.Equal(t, 1, strings.Count(out, marker), marker)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitLines("a\r\nb\rc\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("\n\na  \n\nb\t\n\n"))
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "class C\n{\n    int a;\n}", dedent("class C\n        {\n            int a;\n        }"))
	assert.Equal(t, "class C {}", dedent("class C {}"))
	assert.Equal(t, "", dedent(""))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	policy := common.RetryPolicy{Attempts: 2, Delay: time.Millisecond}
	path := filepath.Join(dir, "out", "nested", "CasinoConst.cs")

	require.NoError(t, WriteFile(context.Background(), GeneratedFile{Path: path, Content: []byte("class C {}\n")}, policy))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class C {}\n", string(got))
}
