package codes

import "strconv"

// Code is a numeric error code shared by tools and tests.
type Code int

// Argument and program state errors (5000s).
const (
	// BadArgument indicates a bad argument was supplied.
	BadArgument Code = 5000
	// NoneArgument indicates an argument was nil.
	NoneArgument Code = 5001
	// IllegalState indicates an illegal program state was encountered.
	IllegalState Code = 5002
	// UnknownFailure indicates a failure with an unspecified cause.
	UnknownFailure Code = 5998
	// IntentionalHalt indicates the program was intentionally halted.
	IntentionalHalt Code = 5999
)

// Test infrastructure errors (8000s).
const (
	// FailedUnitTest indicates an unexpected situation within a unit test.
	FailedUnitTest Code = 8000
	// FailedImport indicates an optional module could not be loaded.
	FailedImport Code = 8001
)

// NotImplemented marks a feature that has not been implemented yet.
const NotImplemented Code = 9999

// ErrorCode describes a registered code.
type ErrorCode struct {
	Numeric Code
	Symbol  string
	Message string
}

// registry is the fixed code list, ordered by numeric value. It is only
// handed out as a copy by All.
var registry = []ErrorCode{
	{Numeric: BadArgument, Symbol: "BAD_ARGUMENT", Message: "a bad argument was supplied"},
	{Numeric: NoneArgument, Symbol: "NONE_ARGUMENT", Message: "argument was nil"},
	{Numeric: IllegalState, Symbol: "ILLEGAL_STATE", Message: "an illegal program state was encountered"},
	{Numeric: UnknownFailure, Symbol: "UNKNOWN_FAILURE", Message: "failed for an unspecified cause"},
	{Numeric: IntentionalHalt, Symbol: "INTENTIONAL_HALT", Message: "the program was intentionally halted"},
	{Numeric: FailedUnitTest, Symbol: "FAILED_UNIT_TEST", Message: "an unexpected situation occurred within a unit test"},
	{Numeric: FailedImport, Symbol: "FAILED_IMPORT", Message: "an import failed"},
	{Numeric: NotImplemented, Symbol: "NOT_IMPLEMENTED", Message: "the feature has not been implemented yet"},
}

var (
	bySymbol  = make(map[string]ErrorCode, len(registry))
	byNumeric = make(map[Code]ErrorCode, len(registry))
)

func init() {
	if err := Validate(registry); err != nil {
		panic(err)
	}
	for _, ec := range registry {
		bySymbol[ec.Symbol] = ec
		byNumeric[ec.Numeric] = ec
	}
}

// All returns a copy of the registry, ordered by numeric value.
func All() []ErrorCode {
	out := make([]ErrorCode, len(registry))
	copy(out, registry)
	return out
}

// String returns the registered symbol, or the number for unregistered codes.
func (c Code) String() string {
	if ec, ok := byNumeric[c]; ok {
		return ec.Symbol
	}
	return strconv.Itoa(int(c))
}

// Int returns the code as a plain int.
func (c Code) Int() int { return int(c) }

// Band returns the band the code belongs to.
func (c Code) Band() Band { return BandOf(c) }
