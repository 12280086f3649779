package ast

import (
	"emblem/internal/source"
)

// Content is one node of the document tree.
type Content interface {
	Span() source.Span
	content()
}

// Document is the root of a parsed file.
type Document struct {
	File    *source.File
	Content []Content
}

// Span covers the whole buffer.
func (d *Document) Span() source.Span {
	return source.NewSpan(d.File, 0, d.File.Len())
}

// Word is an atomic run of text.
type Word struct {
	Text Text
	Loc  source.Span
}

// Whitespace is a preserved run of spaces, tabs and newlines.
type Whitespace struct {
	Loc source.Span
}

// Comment is a '//' line comment, delimiter included.
type Comment struct {
	Loc source.Span
}

// Heading is a line introduced by heading markers. Level is capped at 6;
// Marker keeps the original run, pluses included.
type Heading struct {
	Level   int
	Pluses  int
	Marker  source.Span
	Content []Content
}

// Call is a markup invocation: '.name' followed by its attributes and
// arguments. Qualifier is empty for an unqualified name.
type Call struct {
	Qualifier Text
	Name      Text
	Pluses    int
	Loc       source.Span // '.qualifier.name+'
	Attrs     *Attrs
	Args      []Content // every element is an *Arg
}

// ArgKind distinguishes braced arguments from the remainder argument.
type ArgKind uint8

const (
	// ArgInline is '{ ... }' on one line.
	ArgInline ArgKind = iota
	// ArgRemainder is ':' followed by the rest of the line.
	ArgRemainder
)

// Arg is one argument of a Call. Close is the zero span when the argument
// has no closing delimiter (remainder arguments, or an unterminated brace).
type Arg struct {
	Kind    ArgKind
	Open    source.Span
	Content []Content
	Close   source.Span
}

func (*Word) content()             {}
func (*Whitespace) content()       {}
func (*Comment) content()          {}
func (*MultiLineComment) content() {}
func (*Heading) content()          {}
func (*Call) content()             {}
func (*Arg) content()              {}

func (w *Word) Span() source.Span       { return w.Loc }
func (w *Whitespace) Span() source.Span { return w.Loc }
func (c *Comment) Span() source.Span    { return c.Loc }

func (h *Heading) Span() source.Span {
	return mergeContent(h.Marker, h.Content)
}

func (c *Call) Span() source.Span {
	s := c.Loc
	if c.Attrs != nil {
		s = s.Merge(c.Attrs.Span())
	}
	return mergeContent(s, c.Args)
}

func (a *Arg) Span() source.Span {
	return mergeContent(a.Open, a.Content).Merge(a.Close)
}

// Closed reports whether a braced argument found its '}'.
func (a *Arg) Closed() bool {
	return a.Close.Valid()
}

func mergeContent(s source.Span, items []Content) source.Span {
	for _, c := range items {
		s = s.Merge(c.Span())
	}
	return s
}

// Paragraphs groups top-level content into paragraphs separated by
// whitespace containing a blank line. Separators are not included.
func (d *Document) Paragraphs() [][]Content {
	var (
		out [][]Content
		cur []Content
	)
	flush := func() {
		for len(cur) > 0 {
			if _, ws := cur[len(cur)-1].(*Whitespace); !ws {
				break
			}
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, c := range d.Content {
		if ws, ok := c.(*Whitespace); ok {
			if isParagraphBreak(ws.Loc.Bytes()) {
				flush()
				continue
			}
			if len(cur) == 0 {
				continue
			}
		}
		cur = append(cur, c)
	}
	flush()
	return out
}

func isParagraphBreak(ws []byte) bool {
	n := 0
	for _, b := range ws {
		if b == '\n' {
			n++
		}
	}
	return n >= 2
}
