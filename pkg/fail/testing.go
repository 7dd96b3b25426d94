package fail

import (
	"fmt"
	"io"
	"testing"

	"github.com/jpsember/dev/pkg/codes"
)

// Test returns a Reporter that marks tb as failed.
//
// The report names its own location, so when tb offers an Output writer the
// message goes there and go test adds no file:line prefix of its own. Other
// TB implementations get the message through Errorf.
func Test(tb testing.TB) Reporter {
	return &testReporter{tb: tb}
}

type testReporter struct {
	tb testing.TB
}

// outputer is implemented by *testing.T, *testing.B and *testing.F.
type outputer interface {
	Output() io.Writer
}

func (t *testReporter) Fail(msg string, code codes.Code, skip int) {
	t.tb.Helper()
	r := NewReport(msg, code, skip)
	text := fmt.Sprintf("%s (at %s)\n%s", r.Headline(), r.Location, r.Message)
	if o, ok := t.tb.(outputer); ok {
		fmt.Fprintln(o.Output(), text)
		t.tb.Fail()
		return
	}
	t.tb.Errorf("%s", text)
}
