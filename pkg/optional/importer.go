package optional

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jpsember/dev/pkg/codes"
)

// Importer loads a module by name.
type Importer interface {
	Import(ctx context.Context, name string) error
}

// ImporterFunc adapts a function to Importer.
type ImporterFunc func(ctx context.Context, name string) error

func (f ImporterFunc) Import(ctx context.Context, name string) error { return f(ctx, name) }

// Registry holds optional modules compiled into the binary. Packages
// register themselves from init, the way database/sql drivers do, and a
// blank import decides whether they are present.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]any)}
}

// DefaultRegistry is used by Register and by the "registry" importer.
var DefaultRegistry = NewRegistry()

// Register adds a module to DefaultRegistry.
func Register(name string, module any) { DefaultRegistry.Register(name, module) }

// Register makes module available under name. It panics if name is empty,
// module is nil or name is registered twice.
func (r *Registry) Register(name string, module any) {
	if name == "" {
		panic("optional: Register with empty name")
	}
	if module == nil {
		panic("optional: Register module is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.modules[name]; dup {
		panic("optional: Register called twice for " + name)
	}
	r.modules[name] = module
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Names lists registered modules in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *Registry) Import(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.Lookup(name); !ok {
		return codes.Newf(codes.FailedImport, "module %q is not registered", name)
	}
	return nil
}

// Chain tries each importer in order and succeeds on the first success.
func Chain(importers ...Importer) Importer {
	return ImporterFunc(func(ctx context.Context, name string) error {
		if len(importers) == 0 {
			return codes.New(codes.IllegalState, "no importers configured")
		}
		var errs []error
		for _, imp := range importers {
			err := imp.Import(ctx, name)
			if err == nil {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			errs = append(errs, err)
		}
		return fmt.Errorf("import %q: %w", name, errors.Join(errs...))
	})
}
