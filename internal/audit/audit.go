// Package audit looks for native floating point that survived conversion.
package audit

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// Kind is the sort of residue a finding reports.
type Kind uint8

const (
	// NativeType is a float or double type specifier.
	NativeType Kind = iota + 1
	// FloatLiteral is a floating constant outside comments and strings.
	FloatLiteral
)

func (k Kind) String() string {
	switch k {
	case NativeType:
		return "native-type"
	case FloatLiteral:
		return "float-literal"
	default:
		return "unknown"
	}
}

// Finding is one residue, positioned 1-based.
type Finding struct {
	Kind   Kind
	Line   int
	Column int
	Text   string
}

func (f Finding) String() string {
	return fmt.Sprintf("%d:%d: %s %q", f.Line, f.Column, f.Kind, f.Text)
}

// Check parses code as C and reports every residue in source order. Parse
// errors are tolerated; tree-sitter still yields a usable tree.
func Check(ctx context.Context, code []byte) ([]Finding, error) {
	if len(code) == 0 {
		return nil, nil
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(c.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, fmt.Errorf("audit parse: %w", err)
	}
	defer tree.Close()

	var out []Finding
	walk(tree.RootNode(), code, &out)
	return out, nil
}

func walk(n *sitter.Node, code []byte, out *[]Finding) {
	switch n.Type() {
	case "comment", "string_literal", "char_literal", "system_lib_string":
		return
	case "primitive_type":
		if text := n.Content(code); text == "float" || text == "double" {
			*out = append(*out, finding(NativeType, n, text))
		}
		return
	case "number_literal":
		if text := n.Content(code); IsFloating(text) {
			*out = append(*out, finding(FloatLiteral, n, text))
		}
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), code, out)
	}
}

func finding(k Kind, n *sitter.Node, text string) Finding {
	p := n.StartPoint()
	return Finding{Kind: k, Line: int(p.Row) + 1, Column: int(p.Column) + 1, Text: text}
}

// IsFloating reports whether a C number literal denotes a floating value.
func IsFloating(lit string) bool {
	s := strings.ToLower(lit)
	if strings.HasPrefix(s, "0x") {
		return strings.ContainsRune(s, 'p')
	}
	return strings.ContainsAny(s, ".e") || strings.HasSuffix(s, "f")
}
