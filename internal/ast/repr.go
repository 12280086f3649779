package ast

import (
	"fmt"
	"strings"
)

// Repr renders doc as a compact one-line tree, used by tests and
// `em parse --format repr`.
func Repr(doc *Document) string {
	var sb strings.Builder
	sb.WriteString("File[")
	writeList(&sb, doc.Content)
	sb.WriteString("]")
	return sb.String()
}

// ReprContent renders a single node.
func ReprContent(c Content) string {
	var sb strings.Builder
	writeContent(&sb, c)
	return sb.String()
}

func writeList(sb *strings.Builder, items []Content) {
	for i, c := range items {
		if i > 0 {
			sb.WriteByte('|')
		}
		writeContent(sb, c)
	}
}

func writeContent(sb *strings.Builder, c Content) {
	switch n := c.(type) {
	case *Word:
		fmt.Fprintf(sb, "Word(%s)", n.Text.String())
	case *Whitespace:
		sb.WriteString("<" + escapeSpace(n.Loc.Slice()) + ">")
	case *Comment:
		sb.WriteString(n.Loc.Slice())
	case *Heading:
		fmt.Fprintf(sb, "Heading(%d)", n.Level)
		writePluses(sb, n.Pluses)
		sb.WriteString("[")
		writeList(sb, n.Content)
		sb.WriteString("]")
	case *Call:
		sb.WriteString(".")
		if q := n.Qualifier.String(); q != "" {
			sb.WriteString("(" + q + ").")
		}
		sb.WriteString(n.Name.String())
		writePluses(sb, n.Pluses)
		if n.Attrs != nil {
			writeAttrs(sb, n.Attrs)
		}
		for _, arg := range n.Args {
			writeContent(sb, arg)
		}
	case *Emph:
		fmt.Fprintf(sb, "$%s(%s){[", n.Kind, n.Delimiter())
		writeList(sb, n.Content)
		sb.WriteString("]")
		if n.Closed() {
			sb.WriteString("}")
		}
	case *Verbatim:
		sb.WriteString(n.Loc.Slice())
	case *Arg:
		if n.Kind == ArgRemainder {
			sb.WriteString(":[")
			writeList(sb, n.Content)
			sb.WriteString("]")
			return
		}
		sb.WriteString("{[")
		writeList(sb, n.Content)
		sb.WriteString("]")
		if n.Closed() {
			sb.WriteString("}")
		}
	case *MultiLineComment:
		writeComment(sb, n)
	default:
		fmt.Fprintf(sb, "?%T", c)
	}
}

func writePluses(sb *strings.Builder, n int) {
	if n > 0 {
		sb.WriteString("(" + strings.Repeat("+", n) + ")")
	}
}

func writeAttrs(sb *strings.Builder, a *Attrs) {
	sb.WriteString("[")
	for i, it := range a.Items {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString("(" + it.Name.String() + ")")
		if it.Named {
			sb.WriteString("=(" + it.Value.String() + ")")
		}
	}
	if a.Closed() {
		sb.WriteString("]")
	}
}

func writeComment(sb *strings.Builder, m *MultiLineComment) {
	sb.WriteString("/*[")
	writeParts(sb, m.Parts)
	sb.WriteString("]")
	if m.Closed() {
		sb.WriteString("*/")
	}
}

func writeParts(sb *strings.Builder, parts []CommentPart) {
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte('|')
		}
		switch p := p.(type) {
		case *CommentWord:
			sb.WriteString(p.Loc.Slice())
		case *CommentSpace:
			sb.WriteString("<" + escapeSpace(p.Loc.Slice()) + ">")
		case *Nested:
			sb.WriteString("Nested")
			writeComment(sb, p.Body)
		case *Indented:
			sb.WriteString("Indented[")
			writeParts(sb, p.Body.Parts)
			sb.WriteString("]")
		}
	}
}

var spaceEscaper = strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)

func escapeSpace(s string) string {
	return spaceEscaper.Replace(s)
}
