package diag

import (
	"fmt"

	"emblem/internal/source"
)

// TooManyQualifiers is a command name with more than one qualifier dot.
// Dots lists the surplus dots, in order.
type TooManyQualifiers struct {
	Loc  source.Span
	Dots []source.Span
}

func (TooManyQualifiers) Kind() Kind { return KindTooManyQualifiers }
func (TooManyQualifiers) sealed()    {}

func (d TooManyQualifiers) Produce() Log {
	l := Error(fmt.Sprintf("too many %s found in call", Pluralize(len(d.Dots), "dot", "dots"))).
		WithID(IDTooManyQualifiers).
		WithExplanation()
	for i, dot := range d.Dots {
		text := "and here"
		if i == 0 {
			text = "found here"
		}
		l = l.WithExcerpt(dot, text)
	}
	return l.WithHelp("a call name takes at most one qualifier")
}

// EmptyQualifier is a command name written with two leading dots.
type EmptyQualifier struct {
	Loc       source.Span
	Qualifier source.Span
}

func (EmptyQualifier) Kind() Kind { return KindEmptyQualifier }
func (EmptyQualifier) sealed()    {}

func (d EmptyQualifier) Produce() Log {
	return Error("empty qualifier in command name").
		WithID(IDEmptyQualifier).
		WithExplanation().
		WithExcerpt(d.Qualifier, "found here")
}

// NewlineInAttrs is a line break inside a command's attribute list.
type NewlineInAttrs struct {
	AttrStart source.Span
	Newline   source.Span
}

func (NewlineInAttrs) Kind() Kind { return KindNewlineInAttrs }
func (NewlineInAttrs) sealed()    {}

func (d NewlineInAttrs) Produce() Log {
	return Error("newline in attributes").
		WithExcerpt(d.Newline, "newline found here").
		WithExcerptSeverity(d.AttrStart, "in inline attributes started here", SevInfo)
}

// DelimiterMismatch is emphasis closed by a different delimiter than the
// one that opened it.
type DelimiterMismatch struct {
	Loc      source.Span
	ToClose  source.Span
	Expected string
}

func (DelimiterMismatch) Kind() Kind { return KindDelimiterMismatch }
func (DelimiterMismatch) sealed()    {}

func (d DelimiterMismatch) Produce() Log {
	return Error("mismatching delimiter").
		WithID(IDDelimiterMismatch).
		WithExplanation().
		WithExcerpt(d.Loc, fmt.Sprintf("expected ‘%s’ here", d.Expected)).
		WithExcerptSeverity(d.ToClose, fmt.Sprintf("to close ‘%s’ found here", d.Expected), SevInfo)
}

// NewlineInEmphDelimiter is a line break inside an emphasis span.
type NewlineInEmphDelimiter struct {
	DelimStart source.Span
	Newline    source.Span
	Expected   string
}

func (NewlineInEmphDelimiter) Kind() Kind { return KindNewlineInEmphDelimiter }
func (NewlineInEmphDelimiter) sealed()    {}

func (d NewlineInEmphDelimiter) Produce() Log {
	return Error(fmt.Sprintf("newline in ‘%s’ emphasis", d.Expected)).
		WithExcerpt(d.Newline, "newline found here").
		WithExcerptSeverity(d.DelimStart, "in emphasis started here", SevInfo).
		WithHelp(fmt.Sprintf("close it with ‘%s’ before the end of the line", d.Expected))
}

// UnclosedVerbatim is a '!' that starts a word but has no partner on its
// line. The text is kept as is, so this is only a warning.
type UnclosedVerbatim struct {
	Loc source.Span
}

func (UnclosedVerbatim) Kind() Kind { return KindUnclosedVerbatim }
func (UnclosedVerbatim) sealed()    {}

func (d UnclosedVerbatim) Produce() Log {
	return Warning("unclosed verbatim").
		WithExcerpt(d.Loc, "found here").
		WithNote("verbatim text runs from ‘!’ to the next ‘!’ on the same line")
}
