package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpsember/dev/pkg/codes"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "clitest")
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config-dir", t.TempDir(), "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCodes(t *testing.T) {
	out, _, err := run(t, "codes", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, " 8001 FAILED_IMPORT")
	assert.Contains(t, out, " 9999 NOT_IMPLEMENTED")

	out, _, err = run(t, "codes", "--band", "test")
	require.NoError(t, err)
	assert.Contains(t, out, "FAILED_UNIT_TEST")
	assert.NotContains(t, out, "BAD_ARGUMENT")

	out, _, err = run(t, "codes", "ERRCODE_ILLEGAL_STATE")
	require.NoError(t, err)
	assert.Equal(t, " 5002 ILLEGAL_STATE      an illegal program state was encountered\n", out)

	_, _, err = run(t, "codes", "NOPE")
	assert.Equal(t, codes.BadArgument, codes.CodeOf(err))
}

func TestTryImport(t *testing.T) {
	out, _, err := run(t, "try-import", "strings")
	require.NoError(t, err)
	assert.Equal(t, "imported strings\n", out)

	_, errOut, err := run(t, "try-import", "nonexistent_pkg", "--advice", "go get example.com/nonexistent_pkg")
	require.Error(t, err)
	assert.Equal(t, codes.FailedImport, codes.CodeOf(err))
	assert.Contains(t, errOut, "*** Failed to import 'nonexistent_pkg'\n*** Advice:\n")
	assert.Contains(t, errOut, "go get example.com/nonexistent_pkg")
}

func TestCollectErrs(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "x.py"),
		[]byte("# An import failed\nERRCODE_FAILED_IMPORT = 8001\n"), 0o644))

	out, _, err := run(t, "collect-errs", "--input", src)
	require.NoError(t, err)
	assert.Equal(t, " 8001 FAILED_IMPORT\n      An import failed\n", out)

	target := filepath.Join(t.TempDir(), "errors.txt")
	_, _, err = run(t, "collect-errs", "--input", src, "--output", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestReports_RequiresRedis(t *testing.T) {
	_, _, err := run(t, "reports")
	assert.Equal(t, codes.IllegalState, codes.CodeOf(err))
}

func TestAlreadyReported(t *testing.T) {
	_, _, err := run(t, "try-import", "nonexistent_pkg")
	assert.True(t, alreadyReported(err))

	_, _, err = run(t, "codes", "NOPE")
	assert.False(t, alreadyReported(err))
}
