package codes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ValuesAreUniqueAndBanded(t *testing.T) {
	require.NoError(t, Validate(All()))

	seen := map[Code]bool{}
	for _, ec := range All() {
		assert.False(t, seen[ec.Numeric], "duplicate %d", ec.Numeric)
		seen[ec.Numeric] = true
		assert.GreaterOrEqual(t, int(ec.Numeric), 0)
		assert.NotEqual(t, BandUnknown, BandOf(ec.Numeric), ec.Symbol)
	}
}

func TestRegistry_KnownValues(t *testing.T) {
	cases := map[Code]int{
		BadArgument:     5000,
		NoneArgument:    5001,
		IllegalState:    5002,
		UnknownFailure:  5998,
		IntentionalHalt: 5999,
		FailedUnitTest:  8000,
		FailedImport:    8001,
		NotImplemented:  9999,
	}
	for c, want := range cases {
		assert.Equal(t, want, c.Int())
	}
	assert.Len(t, All(), len(cases))
}

func TestBands(t *testing.T) {
	assert.Equal(t, BandArgument, BadArgument.Band())
	assert.Equal(t, BandArgument, IntentionalHalt.Band())
	assert.Equal(t, BandTest, FailedImport.Band())
	assert.Equal(t, BandNotImplemented, NotImplemented.Band())
	assert.Equal(t, BandUnknown, Code(42).Band())
	assert.Equal(t, BandUnknown, Code(9998).Band())
	assert.Equal(t, "test", BandTest.String())
}

func TestLookup(t *testing.T) {
	ec, ok := Lookup("FAILED_IMPORT")
	require.True(t, ok)
	assert.Equal(t, FailedImport, ec.Numeric)

	ec, ok = Lookup("ERRCODE_BAD_ARGUMENT")
	require.True(t, ok)
	assert.Equal(t, BadArgument, ec.Numeric)

	ec, ok = Lookup("error_not_implemented")
	require.True(t, ok)
	assert.Equal(t, NotImplemented, ec.Numeric)

	_, ok = Lookup("NO_SUCH_CODE")
	assert.False(t, ok)

	ec, ok = ForCode(IllegalState)
	require.True(t, ok)
	assert.Equal(t, "ILLEGAL_STATE", ec.Symbol)
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "FAILED_IMPORT", FailedImport.String())
	assert.Equal(t, "1234", Code(1234).String())
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	for i := range all {
		if all[i].Numeric == FailedImport {
			all[i].Numeric = 7777
		}
	}
	all[0].Symbol = "CHANGED"

	ec, ok := Lookup("FAILED_IMPORT")
	require.True(t, ok)
	assert.Equal(t, FailedImport, ec.Numeric)
	assert.Equal(t, "FAILED_IMPORT", FailedImport.String())

	fresh := All()
	assert.Equal(t, "BAD_ARGUMENT", fresh[0].Symbol)
	assert.NotContains(t, fresh, ErrorCode{Numeric: 7777, Symbol: "FAILED_IMPORT", Message: "an import failed"})
	require.NoError(t, Validate(fresh))
}

func TestValidate_Rejects(t *testing.T) {
	err := Validate([]ErrorCode{
		{Numeric: 5000, Symbol: "A"},
		{Numeric: 5000, Symbol: "B"},
		{Numeric: 5003, Symbol: "A"},
		{Numeric: 7000, Symbol: "C"},
		{Numeric: 8002, Symbol: ""},
	})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "duplicate value 5000")
	assert.Contains(t, msg, "duplicate symbol A")
	assert.Contains(t, msg, "C: value 7000 outside documented bands")
	assert.Contains(t, msg, "code 8002: empty symbol")
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, IllegalState, "reading state")
	assert.Equal(t, "[5002 ILLEGAL_STATE] reading state: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.Is(err, New(IllegalState, "")))
	assert.False(t, errors.Is(err, New(BadArgument, "")))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, IllegalState, CodeOf(wrapped))
	assert.Equal(t, UnknownFailure, CodeOf(cause))
	assert.Equal(t, Code(0), CodeOf(nil))
	assert.Nil(t, Wrap(nil, BadArgument, "x"))

	assert.Equal(t, "[8001 FAILED_IMPORT] missing foo", Newf(FailedImport, "missing %s", "foo").Error())
}
