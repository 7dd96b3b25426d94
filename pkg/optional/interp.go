package optional

import (
	"context"
	"fmt"
	"go/build"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Interp imports Go packages at runtime through the yaegi interpreter.
// Standard library packages resolve from precompiled symbols; anything else
// must be present as source under GoPath.
type Interp struct {
	GoPath string
	// Symbols are extra precompiled exports, e.g. generated with yaegi extract.
	Symbols interp.Exports
}

// NewInterp returns an importer rooted at gopath, or the default GOPATH.
func NewInterp(gopath string) *Interp {
	return &Interp{GoPath: gopath}
}

func (i *Interp) Import(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gopath := i.GoPath
	if gopath == "" {
		gopath = build.Default.GOPATH
	}

	it := interp.New(interp.Options{GoPath: gopath})
	if err := it.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("load stdlib symbols: %w", err)
	}
	if len(i.Symbols) > 0 {
		if err := it.Use(i.Symbols); err != nil {
			return fmt.Errorf("load extra symbols: %w", err)
		}
	}

	if _, err := it.EvalWithContext(ctx, fmt.Sprintf("import %q", name)); err != nil {
		return err
	}
	return nil
}
