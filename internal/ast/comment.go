package ast

import (
	"emblem/internal/source"
)

// MultiLineComment is a block comment or one line group inside it.
// For a delimited comment Open is '/*' and Close is '*/' (zero when the
// comment was never closed). For the body of an Indented part both are zero.
type MultiLineComment struct {
	Open  source.Span
	Parts []CommentPart
	Close source.Span
}

// Span covers the delimiters and every part.
func (m *MultiLineComment) Span() source.Span {
	s := m.Open
	for _, p := range m.Parts {
		s = s.Merge(p.Span())
	}
	return s.Merge(m.Close)
}

// Closed reports whether the comment found its '*/'.
func (m *MultiLineComment) Closed() bool {
	return m.Close.Valid()
}

// Depth returns the deepest nesting of comment-within-comment, counting
// this comment as one.
func (m *MultiLineComment) Depth() int {
	deepest := 0
	for _, p := range m.Parts {
		switch p := p.(type) {
		case *Nested:
			deepest = max(deepest, p.Body.Depth())
		case *Indented:
			// отступ не добавляет уровень вложенности
			deepest = max(deepest, p.Body.Depth()-1)
		}
	}
	return deepest + 1
}

// CommentPart is one element of a MultiLineComment.
type CommentPart interface {
	Span() source.Span
	commentPart()
}

// CommentWord is a run of comment text.
type CommentWord struct {
	Loc source.Span
}

// CommentSpace is whitespace inside a comment, newlines included.
type CommentSpace struct {
	Loc source.Span
}

// Indented wraps a comment line indented past the comment's opening column.
type Indented struct {
	Body *MultiLineComment
}

// Nested is a comment inside a comment.
type Nested struct {
	Body *MultiLineComment
}

func (*CommentWord) commentPart()  {}
func (*CommentSpace) commentPart() {}
func (*Indented) commentPart()     {}
func (*Nested) commentPart()       {}

func (w *CommentWord) Span() source.Span  { return w.Loc }
func (w *CommentSpace) Span() source.Span { return w.Loc }
func (i *Indented) Span() source.Span     { return i.Body.Span() }
func (n *Nested) Span() source.Span       { return n.Body.Span() }
