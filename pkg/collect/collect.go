// Package collect gathers error code declarations from source trees into a
// table. A declaration is an integer constant whose name carries one of the
// configured prefixes (or, in Go, whose type is one of the configured code
// types), documented by the comment lines directly above it.
package collect

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpsember/dev/pkg/codes"
	"github.com/jpsember/dev/pkg/config"
	log "github.com/jpsember/dev/pkg/logger"
)

// Options controls a collection run.
type Options struct {
	Input      string
	Extensions []string
	Prefixes   []string
	GoTypes    []string
	// IncludeTests also scans Go _test.go files.
	IncludeTests bool
}

// OptionsFromConfig maps configuration onto Options.
func OptionsFromConfig(cfg config.CollectConfig) Options {
	return Options{
		Input:      cfg.Input,
		Extensions: cfg.Extensions,
		Prefixes:   cfg.Prefixes,
		GoTypes:    cfg.GoTypes,
	}
}

func (o *Options) applyDefaults() {
	if o.Input == "" {
		o.Input = "."
	}
	if len(o.Extensions) == 0 {
		o.Extensions = []string{"go", "py", "rs", "java"}
	}
	if len(o.Prefixes) == 0 {
		o.Prefixes = []string{"ERRCODE_", "ERROR_"}
	}
	if len(o.GoTypes) == 0 {
		o.GoTypes = []string{"Code"}
	}
}

// Entry is one collected error code.
type Entry struct {
	Number      int64
	Name        string
	Description string
	File        string
	Line        int
}

// Site is file:line of the declaration.
func (e Entry) Site() string { return fmt.Sprintf("%s:%d", e.File, e.Line) }

// Table holds entries sorted by number.
type Table struct {
	Entries []Entry
}

// Collect walks opts.Input and returns every declaration found. A missing
// comment is reported as codes.IllegalState and a reused number as
// codes.BadArgument.
func Collect(ctx context.Context, opts Options) (*Table, error) {
	opts.applyDefaults()

	info, err := os.Stat(opts.Input)
	if err != nil {
		return nil, codes.Wrap(err, codes.BadArgument, "input directory")
	}
	if !info.IsDir() {
		return nil, codes.Newf(codes.BadArgument, "input %s is not a directory", opts.Input)
	}

	scanners := make(map[string]scanner, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.TrimPrefix(strings.ToLower(ext), ".")
		s, err := newScanner(ext, opts)
		if err != nil {
			return nil, err
		}
		scanners[ext] = s
	}
	defer func() {
		for _, s := range scanners {
			s.close()
		}
	}()

	files, err := sourceFiles(opts.Input, scanners, opts.IncludeTests)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[int64]Entry)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		found, err := scanners[ext].scan(ctx, path, src)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if e.Description == "" {
				return nil, codes.Newf(codes.IllegalState, "%s: %s: no comment found", e.Site(), e.Name)
			}
			if prev, dup := byNumber[e.Number]; dup {
				return nil, codes.Newf(codes.BadArgument, "duplicate error number %d: %s (%s) and %s (%s)",
					e.Number, prev.Name, prev.Site(), e.Name, e.Site())
			}
			log.WithFields(log.Fields{"number": e.Number, "name": e.Name, "site": e.Site()}).Debug("collected error code")
			byNumber[e.Number] = e
		}
	}

	t := &Table{Entries: make([]Entry, 0, len(byNumber))}
	for _, e := range byNumber {
		t.Entries = append(t.Entries, e)
	}
	sort.Slice(t.Entries, func(i, j int) bool { return t.Entries[i].Number < t.Entries[j].Number })
	return t, nil
}

// skipDirs are never descended into. testdata holds fixtures that are often
// invalid on purpose.
var skipDirs = map[string]bool{"vendor": true, "node_modules": true, "testdata": true}

func sourceFiles(root string, scanners map[string]scanner, includeTests bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if _, ok := scanners[ext]; !ok {
			return nil
		}
		if ext == "go" && !includeTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Format renders the table: one "%5d NAME" line per entry followed by its
// description indented six spaces, with a blank line whenever the
// thousands digit changes.
func (t *Table) Format() string {
	var b strings.Builder
	for i, e := range t.Entries {
		if i > 0 && e.Number/1000 != t.Entries[i-1].Number/1000 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%5d %s\n", e.Number, e.Name)
		for _, line := range strings.Split(e.Description, "\n") {
			b.WriteString("      ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteIfChanged writes text to path unless the file already holds it.
func WriteIfChanged(path, text string) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && string(old) == text {
		return false, nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
