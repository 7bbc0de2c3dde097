package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"adjconst-generator/internal/common"
	"adjconst-generator/internal/rewrite"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const constSource = `public static class CasinoConst {
    public const int CASINO_SLOT_AMOUNT = 8;
}
`

const fatalSource = `public static class BrokenConst {
    public const int A = 1, B = 2;
}
`

const noClassSource = `namespace Empty {
}
`

func newTestRunner() *Runner {
	return NewRunner(
		rewrite.New(rewrite.DefaultOptions()),
		common.RetryPolicy{Attempts: 2, Delay: time.Millisecond},
		nil,
		nil,
	)
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func readSource(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
