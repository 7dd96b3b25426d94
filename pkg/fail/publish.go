package fail

import (
	"context"
	"time"

	"github.com/jpsember/dev/pkg/codes"
	log "github.com/jpsember/dev/pkg/logger"
)

// Publisher ships reports to an external store.
type Publisher interface {
	Publish(ctx context.Context, r Report) error
}

// SinkOptions tunes Sink.
type SinkOptions struct {
	// Timeout bounds each publish, default 5s.
	Timeout time.Duration
	// OnError observes publish errors; nil logs them at warn level.
	OnError func(Report, error)
}

// Sink turns a Publisher into a Reporter. Publish errors never propagate to
// the failing code.
func Sink(p Publisher, opts SinkOptions) Reporter {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.OnError == nil {
		opts.OnError = func(r Report, err error) {
			log.WithCode(log.WithError(err), r.Code).WithField("report_id", r.ID).Warn("publish failure report failed")
		}
	}
	return ReporterFunc(func(msg string, code codes.Code, skip int) {
		r := NewReport(msg, code, skip)
		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
		defer cancel()
		if err := p.Publish(ctx, r); err != nil {
			opts.OnError(r, err)
		}
	})
}
