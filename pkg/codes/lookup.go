package codes

import (
	"errors"
	"fmt"
	"strings"
)

// legacyPrefixes are accepted by Lookup for symbols copied from older sources.
var legacyPrefixes = []string{"ERRCODE_", "ERROR_"}

// Lookup finds a code by symbol, e.g. "FAILED_IMPORT" or "ERRCODE_FAILED_IMPORT".
func Lookup(symbol string) (ErrorCode, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, p := range legacyPrefixes {
		symbol = strings.TrimPrefix(symbol, p)
	}
	ec, ok := bySymbol[symbol]
	return ec, ok
}

// ForCode returns the descriptor for c.
func ForCode(c Code) (ErrorCode, bool) {
	ec, ok := byNumeric[c]
	return ec, ok
}

// Validate checks that numerics and symbols are unique and every numeric
// lies inside a documented band.
func Validate(list []ErrorCode) error {
	var errs []error
	seenNum := make(map[Code]string, len(list))
	seenSym := make(map[string]Code, len(list))
	for _, ec := range list {
		if ec.Symbol == "" {
			errs = append(errs, fmt.Errorf("code %d: empty symbol", ec.Numeric))
		}
		if ec.Numeric < 0 {
			errs = append(errs, fmt.Errorf("%s: negative value %d", ec.Symbol, ec.Numeric))
		}
		if BandOf(ec.Numeric) == BandUnknown {
			errs = append(errs, fmt.Errorf("%s: value %d outside documented bands", ec.Symbol, ec.Numeric))
		}
		if prev, ok := seenNum[ec.Numeric]; ok {
			errs = append(errs, fmt.Errorf("duplicate value %d: %s and %s", ec.Numeric, prev, ec.Symbol))
		}
		if prev, ok := seenSym[ec.Symbol]; ok && ec.Symbol != "" {
			errs = append(errs, fmt.Errorf("duplicate symbol %s: %d and %d", ec.Symbol, prev, ec.Numeric))
		}
		seenNum[ec.Numeric] = ec.Symbol
		seenSym[ec.Symbol] = ec.Numeric
	}
	return errors.Join(errs...)
}
