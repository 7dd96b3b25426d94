// Package optionaltest wires optional imports into Go tests.
package optionaltest

import (
	"context"
	"testing"

	"github.com/jpsember/dev/pkg/fail"
	"github.com/jpsember/dev/pkg/optional"
)

// TryImport loads name with the default importer and fails t, without
// stopping it, when the module is missing.
func TryImport(t testing.TB, name string, advice ...string) string {
	t.Helper()
	h := optional.Default().With(fail.Shift(fail.Test(t), 1))
	return h.TryImport(context.Background(), name, advice...)
}

// Require is TryImport followed by t.FailNow on failure.
func Require(t testing.TB, name string, advice ...string) {
	t.Helper()
	h := optional.Default().With(fail.Shift(fail.Test(t), 1))
	if msg := h.TryImport(context.Background(), name, advice...); msg != "" {
		t.FailNow()
	}
}
