package collect

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/jpsember/dev/pkg/codes"
)

// rules describe how one language spells a documented integer constant.
type rules struct {
	language func() *sitter.Language
	comments map[string]bool
	// match returns the identifier and integer literal of a declaration node.
	match func(n *sitter.Node, src []byte) (name, lit string, ok bool)
}

var pythonRules = rules{
	language: python.GetLanguage,
	comments: map[string]bool{"comment": true},
	// ERRCODE_NOT_IMPLEMENTED = 9999
	match: func(n *sitter.Node, src []byte) (string, string, bool) {
		if n.Type() != "expression_statement" || n.NamedChildCount() != 1 {
			return "", "", false
		}
		a := n.NamedChild(0)
		if a.Type() != "assignment" {
			return "", "", false
		}
		left, right := a.ChildByFieldName("left"), a.ChildByFieldName("right")
		if left == nil || right == nil || left.Type() != "identifier" || right.Type() != "integer" {
			return "", "", false
		}
		return left.Content(src), right.Content(src), true
	},
}

var rustRules = rules{
	language: rust.GetLanguage,
	comments: map[string]bool{"line_comment": true, "block_comment": true},
	// pub const ERRCODE_MULTIPLE_GEOMETRY_COLUMNS: usize = 1002;
	match: func(n *sitter.Node, src []byte) (string, string, bool) {
		if n.Type() != "const_item" {
			return "", "", false
		}
		name, value := n.ChildByFieldName("name"), n.ChildByFieldName("value")
		if name == nil || value == nil || value.Type() != "integer_literal" {
			return "", "", false
		}
		return name.Content(src), value.Content(src), true
	},
}

var javaRules = rules{
	language: java.GetLanguage,
	comments: map[string]bool{"line_comment": true, "block_comment": true},
	// public static final int ERRCODE_FOO_BAR = 8200;
	match: func(n *sitter.Node, src []byte) (string, string, bool) {
		if n.Type() != "field_declaration" {
			return "", "", false
		}
		var static, final bool
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "modifiers" {
				for _, m := range strings.Fields(c.Content(src)) {
					static = static || m == "static"
					final = final || m == "final"
				}
			}
		}
		typ, decl := n.ChildByFieldName("type"), n.ChildByFieldName("declarator")
		if !static || !final || typ == nil || decl == nil || typ.Type() != "integral_type" {
			return "", "", false
		}
		name, value := decl.ChildByFieldName("name"), decl.ChildByFieldName("value")
		if name == nil || value == nil || value.Type() != "decimal_integer_literal" {
			return "", "", false
		}
		return name.Content(src), value.Content(src), true
	},
}

type treeScanner struct {
	rules    rules
	prefixes []string
	parser   *sitter.Parser
}

func newTreeScanner(r rules, prefixes []string) *treeScanner {
	p := sitter.NewParser()
	p.SetLanguage(r.language())
	return &treeScanner{rules: r, prefixes: prefixes, parser: p}
}

func (s *treeScanner) close() { s.parser.Close() }

func (s *treeScanner) scan(ctx context.Context, path string, src []byte) ([]Entry, error) {
	tree, err := s.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, codes.Wrap(err, codes.BadArgument, "parse "+path)
	}
	defer tree.Close()

	var out []Entry
	if err := s.walk(tree.RootNode(), path, src, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// walk visits the named children of node in order, buffering comments. A
// comment run attaches to a declaration on the line right after it; any
// other node or a gap clears the buffer.
func (s *treeScanner) walk(node *sitter.Node, path string, src []byte, out *[]Entry) error {
	var (
		pending []string
		lastRow = -2
	)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		start := int(child.StartPoint().Row)

		if s.rules.comments[child.Type()] {
			if start != lastRow+1 {
				pending = pending[:0]
			}
			if t := commentText(child.Content(src)); t != "" {
				pending = append(pending, t)
			}
			lastRow = endRow(child)
			continue
		}

		if raw, lit, ok := s.rules.match(child, src); ok {
			if name, prefixed := trimPrefix(raw, s.prefixes); prefixed {
				n, err := parseInt(lit)
				if err != nil {
					return codes.Wrap(err, codes.BadArgument, raw)
				}
				desc := ""
				if start == lastRow+1 {
					desc = strings.Join(pending, "\n")
				}
				*out = append(*out, Entry{Number: n, Name: name, Description: desc, File: path, Line: start + 1})
			}
		} else if err := s.walk(child, path, src, out); err != nil {
			return err
		}
		pending = pending[:0]
		lastRow = -2
	}
	return nil
}

// endRow is the last row a node occupies, ignoring a trailing newline.
func endRow(n *sitter.Node) int {
	end := n.EndPoint()
	row := int(end.Row)
	if end.Column == 0 && row > int(n.StartPoint().Row) {
		row--
	}
	return row
}
