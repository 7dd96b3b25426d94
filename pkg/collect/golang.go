package collect

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/jpsember/dev/pkg/codes"
)

type goScanner struct {
	prefixes []string
	types    map[string]bool
}

func newGoScanner(opts Options) *goScanner {
	types := make(map[string]bool, len(opts.GoTypes))
	for _, t := range opts.GoTypes {
		types[t] = true
	}
	return &goScanner{prefixes: opts.Prefixes, types: types}
}

func (s *goScanner) close() {}

func (s *goScanner) scan(_ context.Context, path string, src []byte) ([]Entry, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, codes.Wrap(err, codes.BadArgument, "parse "+path)
	}

	var out []Entry
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)
			typed := s.isCodeType(vs.Type)
			for i, ident := range vs.Names {
				name, prefixed := trimPrefix(ident.Name, s.prefixes)
				if !prefixed && !typed {
					continue
				}
				if i >= len(vs.Values) {
					continue
				}
				lit := intLiteral(vs.Values[i])
				if lit == "" {
					continue
				}
				n, err := parseInt(lit)
				if err != nil {
					return nil, codes.Wrap(err, codes.BadArgument, ident.Name)
				}
				out = append(out, Entry{
					Number:      n,
					Name:        name,
					Description: goDoc(gd, vs),
					File:        path,
					Line:        fset.Position(ident.Pos()).Line,
				})
			}
		}
	}
	return out, nil
}

func (s *goScanner) isCodeType(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return s.types[t.Name]
	case *ast.SelectorExpr:
		return s.types[t.Sel.Name]
	}
	return false
}

// intLiteral accepts 5000 and conversions such as Code(5000).
func intLiteral(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.BasicLit:
		if v.Kind == token.INT {
			return v.Value
		}
	case *ast.CallExpr:
		if len(v.Args) == 1 {
			return intLiteral(v.Args[0])
		}
	case *ast.ParenExpr:
		return intLiteral(v.X)
	}
	return ""
}

func goDoc(gd *ast.GenDecl, vs *ast.ValueSpec) string {
	doc := vs.Doc
	if doc == nil && !gd.Lparen.IsValid() {
		doc = gd.Doc
	}
	if doc == nil {
		doc = vs.Comment
	}
	if doc == nil {
		return ""
	}
	var lines []string
	for _, c := range doc.List {
		if t := commentText(c.Text); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}
