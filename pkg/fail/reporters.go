package fail

import (
	"sync"

	"github.com/jpsember/dev/pkg/codes"
	log "github.com/jpsember/dev/pkg/logger"
)

// Panic returns a Reporter that panics with a *Failure.
func Panic() Reporter {
	return ReporterFunc(func(msg string, code codes.Code, skip int) {
		panic(&Failure{Report: NewReport(msg, code, skip)})
	})
}

// Log returns a Reporter that writes an error entry. A nil entry uses the
// standard logger.
func Log(entry *log.Entry) Reporter {
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	return ReporterFunc(func(msg string, code codes.Code, skip int) {
		r := NewReport(msg, code, skip)
		log.WithCode(entry, r.Code).WithFields(log.Fields{
			"report_id": r.ID,
			"caller":    r.Location.String(),
		}).Error(r.Message)
	})
}

// Recorder keeps every report in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Fail(msg string, code codes.Code, skip int) {
	rep := NewReport(msg, code, skip)
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

// Reports returns a copy of the recorded reports.
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.reports = nil
	r.mu.Unlock()
}

// Multi fans a failure out to every non-nil reporter.
func Multi(reporters ...Reporter) Reporter {
	list := make([]Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			list = append(list, r)
		}
	}
	return ReporterFunc(func(msg string, code codes.Code, skip int) {
		for _, r := range list {
			r.Fail(msg, code, skip+1)
		}
	})
}

// Shift returns a Reporter that attributes failures n frames further up,
// for wrappers that sit between a helper and its caller.
func Shift(r Reporter, n int) Reporter {
	return ReporterFunc(func(msg string, code codes.Code, skip int) {
		r.Fail(msg, code, skip+n+1)
	})
}
