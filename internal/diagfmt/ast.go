package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"emblem/internal/ast"
	"emblem/internal/source"
)

// ASTNodeOutput is a format-neutral view of one tree node.
type ASTNodeOutput struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Qualifier string          `json:"qualifier,omitempty"`
	Level     int             `json:"level,omitempty"`
	Pluses    int             `json:"pluses,omitempty"`
	Start     uint32          `json:"start"`
	End       uint32          `json:"end"`
	Unclosed  bool            `json:"unclosed,omitempty"`
	Attrs     []AttrOutput    `json:"attrs,omitempty"`
	Children  []ASTNodeOutput `json:"children,omitempty"`

	span source.Span
}

// AttrOutput is one call attribute.
type AttrOutput struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Named bool   `json:"named,omitempty"`
}

var emphTypes = map[ast.EmphKind]string{
	ast.Italic:        "Italic",
	ast.Bold:          "Bold",
	ast.Monospace:     "Monospace",
	ast.Smallcaps:     "Smallcaps",
	ast.AlternateFace: "AlternateFace",
}

// BuildASTOutput converts doc into its output form.
func BuildASTOutput(doc *ast.Document) ASTNodeOutput {
	root := newNode("File", doc.Span())
	root.Text = doc.File.Path
	for _, c := range doc.Content {
		root.Children = append(root.Children, contentNode(c))
	}
	return root
}

func newNode(typ string, span source.Span) ASTNodeOutput {
	return ASTNodeOutput{Type: typ, Start: span.Start, End: span.End, span: span}
}

func contentNode(c ast.Content) ASTNodeOutput {
	switch n := c.(type) {
	case *ast.Word:
		out := newNode("Word", n.Loc)
		out.Text = n.Text.String()
		return out
	case *ast.Whitespace:
		out := newNode("Whitespace", n.Loc)
		out.Text = n.Loc.Slice()
		return out
	case *ast.Comment:
		out := newNode("Comment", n.Loc)
		out.Text = n.Loc.Slice()
		return out
	case *ast.Heading:
		out := newNode("Heading", n.Span())
		out.Level = n.Level
		out.Pluses = n.Pluses
		for _, child := range n.Content {
			out.Children = append(out.Children, contentNode(child))
		}
		return out
	case *ast.Call:
		out := newNode("Call", n.Span())
		out.Text = n.Name.String()
		out.Qualifier = n.Qualifier.String()
		out.Pluses = n.Pluses
		if n.Attrs != nil {
			out.Unclosed = !n.Attrs.Closed()
			for _, it := range n.Attrs.Items {
				out.Attrs = append(out.Attrs, AttrOutput{Name: it.Name.String(), Value: it.Value.String(), Named: it.Named})
			}
		}
		for _, arg := range n.Args {
			out.Children = append(out.Children, contentNode(arg))
		}
		return out
	case *ast.Arg:
		typ := "InlineArg"
		if n.Kind == ast.ArgRemainder {
			typ = "RemainderArg"
		}
		out := newNode(typ, n.Span())
		out.Unclosed = n.Kind == ast.ArgInline && !n.Closed()
		for _, child := range n.Content {
			out.Children = append(out.Children, contentNode(child))
		}
		return out
	case *ast.Emph:
		out := newNode(emphTypes[n.Kind], n.Span())
		out.Text = n.Delimiter()
		out.Unclosed = !n.Closed()
		for _, child := range n.Content {
			out.Children = append(out.Children, contentNode(child))
		}
		return out
	case *ast.Verbatim:
		out := newNode("Verbatim", n.Loc)
		out.Text = n.Text()
		return out
	case *ast.MultiLineComment:
		return commentNode("MultiLineComment", n)
	default:
		return newNode(fmt.Sprintf("%T", c), c.Span())
	}
}

func commentNode(typ string, m *ast.MultiLineComment) ASTNodeOutput {
	out := newNode(typ, m.Span())
	out.Unclosed = m.Open.Valid() && !m.Closed()
	for _, p := range m.Parts {
		switch p := p.(type) {
		case *ast.CommentWord:
			child := newNode("Word", p.Loc)
			child.Text = p.Loc.Slice()
			out.Children = append(out.Children, child)
		case *ast.CommentSpace:
			child := newNode("Whitespace", p.Loc)
			child.Text = p.Loc.Slice()
			out.Children = append(out.Children, child)
		case *ast.Indented:
			out.Children = append(out.Children, commentNode("Indented", p.Body))
		case *ast.Nested:
			out.Children = append(out.Children, commentNode("Nested", p.Body))
		}
	}
	return out
}

func (n ASTNodeOutput) label() string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	if n.Level > 0 {
		fmt.Fprintf(&sb, "(%d)", n.Level)
	}
	if n.Text != "" && n.Type != "File" {
		if n.Qualifier != "" {
			fmt.Fprintf(&sb, " %q.%q", n.Qualifier, n.Text)
		} else {
			fmt.Fprintf(&sb, " %q", n.Text)
		}
	}
	if n.Pluses > 0 {
		sb.WriteString(" " + strings.Repeat("+", n.Pluses))
	}
	if len(n.Attrs) > 0 {
		sb.WriteString(" [")
		for i, a := range n.Attrs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Name)
			if a.Named {
				sb.WriteString("=" + a.Value)
			}
		}
		sb.WriteString("]")
	}
	if n.Unclosed {
		sb.WriteString(" unclosed")
	}
	return sb.String()
}

// FormatASTPretty prints the tree with box-drawing connectors.
func FormatASTPretty(w io.Writer, doc *ast.Document) error {
	root := BuildASTOutput(doc)
	if _, err := fmt.Fprintf(w, "File %s (span: %s)\n", root.Text, formatSpan(root.span)); err != nil {
		return err
	}
	writePrettyChildren(w, root.Children, "")
	return nil
}

func writePrettyChildren(w io.Writer, children []ASTNodeOutput, prefix string) {
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, child.label(), formatSpan(child.span))
		writePrettyChildren(w, child.Children, prefix+next)
	}
}

// FormatASTJSON encodes the tree as JSON.
func FormatASTJSON(w io.Writer, doc *ast.Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(doc))
}

// FormatASTRepr prints the compact one-line form.
func FormatASTRepr(w io.Writer, doc *ast.Document) error {
	_, err := fmt.Fprintln(w, ast.Repr(doc))
	return err
}
