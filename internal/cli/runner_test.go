package cli

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adjconst-generator/internal/metrics"
	"adjconst-generator/internal/plan"
)

func TestRunner_RewriteFileInPlace(t *testing.T) {
	ctx := context.Background()
	path := writeSource(t, t.TempDir(), "CasinoConst.cs", constSource)
	r := newTestRunner()

	res, err := r.RewriteFile(ctx, path, path)
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeWritten, res.Outcome)
	assert.Equal(t, path, res.Target)

	content := readSource(t, path)
	assert.Equal(t, string(res.Content), content)
	assert.Contains(t, content, "#if EDIT_CONST")
	assert.Contains(t, content, "public int? CASINO_SLOT_AMOUNT;")

	res, err = r.RewriteFile(ctx, path, path)
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeUnchanged, res.Outcome)
	assert.Empty(t, res.Target)
	assert.Equal(t, content, readSource(t, path))
}

func TestRunner_RewriteFileToOtherTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "CasinoConst.cs", constSource)
	target := dir + "/out/nested/CasinoConst.cs"

	res, err := newTestRunner().RewriteFile(context.Background(), path, target)
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeWritten, res.Outcome)
	assert.Equal(t, constSource, readSource(t, path))
	assert.Contains(t, readSource(t, target), "CasinoConstAdj.I.CASINO_SLOT_AMOUNT ?? 8")
}

func TestRunner_MissingUnitIsNotWritten(t *testing.T) {
	path := writeSource(t, t.TempDir(), "Empty.cs", noClassSource)

	res, err := newTestRunner().RewriteFile(context.Background(), path, path)
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeMissingUnit, res.Outcome)
	assert.Nil(t, res.Content)
	assert.Equal(t, noClassSource, readSource(t, path))
}

func TestRunner_FatalUnitIsNotWritten(t *testing.T) {
	path := writeSource(t, t.TempDir(), "BrokenConst.cs", fatalSource)

	res, err := newTestRunner().RewriteFile(context.Background(), path, path)
	require.Error(t, err)
	require.ErrorIs(t, err, plan.ErrUnsupportedMemberShape)
	assert.Equal(t, metrics.OutcomeFatal, res.Outcome)
	assert.Equal(t, fatalSource, readSource(t, path))
}

func TestRunner_MissingFile(t *testing.T) {
	path := t.TempDir() + "/Missing.cs"

	res, err := newTestRunner().RewriteFile(context.Background(), path, path)
	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, metrics.OutcomeIOError, res.Outcome)
}

func TestRunner_RecordsMetrics(t *testing.T) {
	dir := t.TempDir()
	m := metrics.New()
	r := NewRunner(newTestRunner().Rewriter(), newTestRunner().policy, nil, m)

	_, err := r.RewriteFile(context.Background(), writeSource(t, dir, "A.cs", constSource), dir+"/A.out.cs")
	require.NoError(t, err)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRunner_Print(t *testing.T) {
	path := writeSource(t, t.TempDir(), "CasinoConst.cs", constSource)

	var out bytes.Buffer
	require.NoError(t, newTestRunner().Print(context.Background(), path, &out))

	text := out.String()
	assert.Contains(t, text, "--- input ----\n"+constSource)
	assert.Contains(t, text, "--- output ----\n#if EDIT_CONST")
	assert.Equal(t, constSource, readSource(t, path))
}
