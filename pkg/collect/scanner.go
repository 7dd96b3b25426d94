package collect

import (
	"context"
	"strconv"
	"strings"

	"github.com/jpsember/dev/pkg/codes"
)

type scanner interface {
	scan(ctx context.Context, path string, src []byte) ([]Entry, error)
	close()
}

func newScanner(ext string, opts Options) (scanner, error) {
	switch ext {
	case "go":
		return newGoScanner(opts), nil
	case "py":
		return newTreeScanner(pythonRules, opts.Prefixes), nil
	case "rs":
		return newTreeScanner(rustRules, opts.Prefixes), nil
	case "java":
		return newTreeScanner(javaRules, opts.Prefixes), nil
	default:
		return nil, codes.Newf(codes.NotImplemented, "no scanner for .%s files", ext)
	}
}

// trimPrefix strips the first matching prefix and reports whether one matched.
func trimPrefix(name string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) && len(name) > len(p) {
			return strings.TrimPrefix(name, p), true
		}
	}
	return name, false
}

var intSuffixes = []string{"usize", "isize", "u128", "i128", "u64", "i64", "u32", "i32", "u16", "i16", "u8", "i8", "L", "l"}

func parseInt(lit string) (int64, error) {
	lit = strings.ReplaceAll(strings.TrimSpace(lit), "_", "")
	if !strings.HasPrefix(lit, "0x") && !strings.HasPrefix(lit, "0X") {
		for _, s := range intSuffixes {
			if strings.HasSuffix(lit, s) {
				lit = strings.TrimSuffix(lit, s)
				break
			}
		}
	}
	return strconv.ParseInt(lit, 0, 64)
}

// commentText strips comment markers from one comment.
func commentText(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "/**")
		l = strings.TrimPrefix(l, "/*")
		l = strings.TrimSuffix(l, "*/")
		switch {
		case strings.HasPrefix(l, "///"):
			l = l[3:]
		case strings.HasPrefix(l, "//"):
			l = l[2:]
		case strings.HasPrefix(l, "#"):
			l = l[1:]
		case strings.HasPrefix(l, "*"):
			l = l[1:]
		}
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
