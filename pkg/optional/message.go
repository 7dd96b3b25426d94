package optional

import (
	"fmt"
	"strings"
)

// Separator frames the advice section of a failure message.
var Separator = strings.Repeat("=", 46)

// Message formats the diagnostic for a module that failed to load:
//
//	*** Failed to import '<name>'
//	*** Advice:
//	==============================================
//	<advice>
//	==============================================
//
// The advice block is omitted when advice is empty.
func Message(name, advice string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** Failed to import '%s'\n", name)
	if advice == "" {
		return b.String()
	}
	b.WriteString("*** Advice:\n")
	b.WriteString(Separator)
	b.WriteByte('\n')
	b.WriteString(advice)
	b.WriteByte('\n')
	b.WriteString(Separator)
	b.WriteByte('\n')
	return b.String()
}
