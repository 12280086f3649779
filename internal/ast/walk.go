package ast

import (
	"emblem/internal/source"
)

// Walk visits c and its descendants in document order. Returning false from
// fn skips the children of the current node.
func Walk(c Content, fn func(Content) bool) {
	if !fn(c) {
		return
	}
	switch n := c.(type) {
	case *Heading:
		for _, child := range n.Content {
			Walk(child, fn)
		}
	case *Call:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *Arg:
		for _, child := range n.Content {
			Walk(child, fn)
		}
	case *Emph:
		for _, child := range n.Content {
			Walk(child, fn)
		}
	}
}

// Leaves returns every leaf span of doc in document order. Spans of
// missing delimiters are skipped.
func Leaves(doc *Document) []source.Span {
	out := make([]source.Span, 0, len(doc.Content)*2)
	for _, c := range doc.Content {
		out = appendLeaves(out, c)
	}
	return out
}

func appendLeaves(out []source.Span, c Content) []source.Span {
	switch n := c.(type) {
	case *Word:
		out = append(out, n.Loc)
	case *Whitespace:
		out = append(out, n.Loc)
	case *Comment:
		out = append(out, n.Loc)
	case *Verbatim:
		out = append(out, n.Loc)
	case *Emph:
		out = append(out, n.Open)
		for _, child := range n.Content {
			out = appendLeaves(out, child)
		}
		out = appendSpan(out, n.Close)
	case *Heading:
		out = append(out, n.Marker)
		for _, child := range n.Content {
			out = appendLeaves(out, child)
		}
	case *Call:
		out = append(out, n.Loc)
		if n.Attrs != nil {
			out = appendAttrLeaves(out, n.Attrs)
		}
		for _, arg := range n.Args {
			out = appendLeaves(out, arg)
		}
	case *Arg:
		out = appendSpan(out, n.Open)
		for _, child := range n.Content {
			out = appendLeaves(out, child)
		}
		out = appendSpan(out, n.Close)
	case *MultiLineComment:
		out = appendCommentLeaves(out, n)
	}
	return out
}

func appendCommentLeaves(out []source.Span, m *MultiLineComment) []source.Span {
	out = appendSpan(out, m.Open)
	for _, p := range m.Parts {
		switch p := p.(type) {
		case *CommentWord:
			out = append(out, p.Loc)
		case *CommentSpace:
			out = append(out, p.Loc)
		case *Indented:
			out = appendCommentLeaves(out, p.Body)
		case *Nested:
			out = appendCommentLeaves(out, p.Body)
		}
	}
	return appendSpan(out, m.Close)
}

func appendAttrLeaves(out []source.Span, a *Attrs) []source.Span {
	out = append(out, a.Open)
	for _, it := range a.Items {
		out = appendSpan(out, it.Loc)
		out = appendSpan(out, it.Sep)
	}
	return appendSpan(out, a.Close)
}

func appendSpan(out []source.Span, s source.Span) []source.Span {
	if s.Valid() {
		out = append(out, s)
	}
	return out
}

// Reconstruct concatenates the leaf spans of doc.
func Reconstruct(doc *Document) string {
	var n uint32
	leaves := Leaves(doc)
	for _, s := range leaves {
		n += s.Len()
	}
	buf := make([]byte, 0, n)
	for _, s := range leaves {
		buf = append(buf, s.Bytes()...)
	}
	return string(buf)
}
