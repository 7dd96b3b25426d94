// Package optional loads optional modules and explains how to install the
// ones that are missing.
package optional

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jpsember/dev/pkg/codes"
	"github.com/jpsember/dev/pkg/config"
	"github.com/jpsember/dev/pkg/fail"
	"github.com/jpsember/dev/pkg/logger"
	"github.com/jpsember/dev/pkg/tracing"
)

// SkipCount is the skip passed to Reporter.Fail, attributing a failed
// import to the code that called TryImport.
const SkipCount = 2

const tracerName = "github.com/jpsember/dev/pkg/optional"

// Helper attempts imports and reports the ones that fail.
type Helper struct {
	Importer Importer
	Reporter fail.Reporter
	// Advice is used when TryImport gets none. Keys are package names.
	Advice map[string]string
	Logger *logger.Entry
}

// TryImport loads name. On success it returns "". On failure it reports
// the diagnostic message once through the Reporter, tagged
// codes.FailedImport, and returns it. An empty name is reported as
// codes.BadArgument.
func (h *Helper) TryImport(ctx context.Context, name string, advice ...string) string {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "optional.TryImport",
		trace.WithAttributes(attribute.String("optional.package", name)))
	defer span.End()

	var (
		msg  string
		code codes.Code
		err  error
	)
	if strings.TrimSpace(name) == "" {
		code = codes.BadArgument
		err = codes.New(code, "package name is empty")
		msg = "*** Failed to import: package name is empty\n"
	} else if err = h.importer().Import(ctx, name); err != nil {
		code = codes.FailedImport
		msg = Message(name, h.adviceFor(name, advice))
	} else {
		return ""
	}

	tracing.RecordFailure(span, code, err)
	logger.WithErr(h.entry(ctx), err).WithField("package", name).Debug("optional import failed")
	h.reporter().Fail(msg, code, SkipCount)
	return msg
}

// With returns a copy of h that reports through r.
func (h *Helper) With(r fail.Reporter) *Helper {
	c := *h
	c.Reporter = r
	return &c
}

func (h *Helper) adviceFor(name string, advice []string) string {
	var parts []string
	for _, a := range advice {
		if a != "" {
			parts = append(parts, a)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n")
	}
	if a, ok := h.Advice[name]; ok {
		return a
	}
	return h.Advice[strings.ToLower(name)]
}

func (h *Helper) importer() Importer {
	if h.Importer == nil {
		return DefaultRegistry
	}
	return h.Importer
}

func (h *Helper) reporter() fail.Reporter {
	if h.Reporter == nil {
		return fail.Log(nil)
	}
	return h.Reporter
}

func (h *Helper) entry(ctx context.Context) *logger.Entry {
	if h.Logger != nil {
		return h.Logger.WithContext(ctx)
	}
	return logger.WithTrace(ctx)
}

// ImporterFromConfig builds the importer chain named by cfg.Importers:
// "registry" for DefaultRegistry and "interp" for the yaegi interpreter.
func ImporterFromConfig(cfg config.OptionalConfig) (Importer, error) {
	names := cfg.Importers
	if len(names) == 0 {
		names = []string{"registry", "interp"}
	}
	importers := make([]Importer, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "registry":
			importers = append(importers, DefaultRegistry)
		case "interp", "yaegi":
			importers = append(importers, NewInterp(cfg.GoPath))
		default:
			return nil, codes.Newf(codes.BadArgument, "unknown importer %q", n)
		}
	}
	if len(importers) == 1 {
		return importers[0], nil
	}
	return Chain(importers...), nil
}

// NewFromConfig builds a Helper from configuration.
func NewFromConfig(cfg config.OptionalConfig, r fail.Reporter) (*Helper, error) {
	imp, err := ImporterFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Helper{Importer: imp, Reporter: r, Advice: cfg.Advice}, nil
}

var (
	defaultMu     sync.RWMutex
	defaultHelper = &Helper{
		Importer: Chain(DefaultRegistry, NewInterp("")),
		Reporter: fail.Log(nil),
	}
)

// Default returns the helper used by the package-level TryImport.
func Default() *Helper {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultHelper
}

// SetDefault replaces the package-level helper.
func SetDefault(h *Helper) {
	if h == nil {
		return
	}
	defaultMu.Lock()
	defaultHelper = h
	defaultMu.Unlock()
}

// TryImport loads name with the default helper.
func TryImport(name string, advice ...string) string {
	h := Default()
	return h.With(fail.Shift(h.reporter(), 1)).TryImport(context.Background(), name, advice...)
}
