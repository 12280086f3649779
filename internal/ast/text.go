package ast

import (
	"golang.org/x/text/unicode/norm"

	"emblem/internal/source"
)

// Text is either a span borrowed from the source or an owned string.
// The case is fixed at construction; readers use String.
type Text struct {
	span  source.Span
	owned string
	own   bool
}

// Borrowed wraps a source span.
func Borrowed(span source.Span) Text {
	return Text{span: span}
}

// Owned wraps a string that does not exist verbatim in the source.
func Owned(s string) Text {
	return Text{owned: s, own: true}
}

// NewText borrows span unless NFC normalisation changes its bytes,
// in which case the normalised form is owned.
func NewText(span source.Span) Text {
	raw := span.Bytes()
	if norm.NFC.IsNormal(raw) {
		return Borrowed(span)
	}
	return Owned(norm.NFC.String(string(raw)))
}

// String returns the text regardless of representation.
func (t Text) String() string {
	if t.own {
		return t.owned
	}
	return t.span.Slice()
}

// IsOwned reports whether the text was copied out of the source.
func (t Text) IsOwned() bool { return t.own }

// Span returns the borrowed span, if any.
func (t Text) Span() (source.Span, bool) {
	if t.own {
		return source.Span{}, false
	}
	return t.span, true
}
