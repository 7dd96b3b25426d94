// Package fail reports failures tagged with an error code.
//
// A Reporter is the failure-reporting mechanism a helper signals through.
// The skip argument of Fail counts stack frames above Fail itself, so a skip
// of 1 names the function that called Fail and a skip of 2 names its caller.
package fail

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jpsember/dev/pkg/codes"
)

// Reporter receives failures.
type Reporter interface {
	Fail(msg string, code codes.Code, skip int)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(msg string, code codes.Code, skip int)

func (f ReporterFunc) Fail(msg string, code codes.Code, skip int) { f(msg, code, skip+1) }

// Location is a source position.
type Location struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func (l Location) String() string {
	if l.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Report is a single failure.
type Report struct {
	ID       string     `json:"id"`
	Code     codes.Code `json:"code"`
	Symbol   string     `json:"symbol"`
	Message  string     `json:"message"`
	Location Location   `json:"location"`
	Time     time.Time  `json:"time"`
}

// Headline is the first line of the message prefixed with the code.
func (r Report) Headline() string {
	first, _, _ := strings.Cut(r.Message, "\n")
	return fmt.Sprintf("[%d %s] %s", int(r.Code), r.Symbol, first)
}

// Caller resolves the location skip frames above the function calling Caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}

// NewReport builds a report whose location is skip frames above the
// function calling NewReport.
func NewReport(msg string, code codes.Code, skip int) Report {
	return Report{
		ID:       uuid.NewString(),
		Code:     code,
		Symbol:   code.String(),
		Message:  msg,
		Location: Caller(skip + 1),
		Time:     time.Now().UTC(),
	}
}

// Failure is the error form of a Report.
type Failure struct {
	Report Report
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s (at %s)", f.Report.Headline(), f.Report.Location)
}

// Unwrap exposes the code so codes.CodeOf works on a Failure.
func (f *Failure) Unwrap() error {
	return codes.New(f.Report.Code, f.Report.Message)
}
