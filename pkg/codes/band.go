package codes

// Band groups codes by numeric range.
type Band int

const (
	BandUnknown Band = iota
	// BandArgument covers argument and program state errors, 5000-5999.
	BandArgument
	// BandTest covers test infrastructure errors, 8000-8999.
	BandTest
	// BandNotImplemented holds the single 9999 sentinel.
	BandNotImplemented
)

var bandNames = map[Band]string{
	BandUnknown:        "unknown",
	BandArgument:       "argument",
	BandTest:           "test",
	BandNotImplemented: "not_implemented",
}

func (b Band) String() string {
	if name, ok := bandNames[b]; ok {
		return name
	}
	return bandNames[BandUnknown]
}

// Contains reports whether c falls in the band.
func (b Band) Contains(c Code) bool {
	switch b {
	case BandArgument:
		return c >= 5000 && c <= 5999
	case BandTest:
		return c >= 8000 && c <= 8999
	case BandNotImplemented:
		return c == NotImplemented
	default:
		return false
	}
}

// BandOf returns the band of c, or BandUnknown.
func BandOf(c Code) Band {
	for _, b := range []Band{BandArgument, BandTest, BandNotImplemented} {
		if b.Contains(c) {
			return b
		}
	}
	return BandUnknown
}
