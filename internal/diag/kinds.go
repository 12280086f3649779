package diag

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"emblem/internal/source"
)

// UnexpectedChar is a character no token class accepts.
type UnexpectedChar struct {
	Loc   source.Span
	Found rune
}

func (UnexpectedChar) Kind() Kind { return KindUnexpectedChar }
func (UnexpectedChar) sealed()    {}

func (d UnexpectedChar) Produce() Log {
	shown := displayRune(d.Found)
	if d.Found == utf8.RuneError {
		if raw := d.Loc.Bytes(); len(raw) == 1 {
			shown = fmt.Sprintf(`\x%02x`, raw[0]) // не UTF-8: показываем сам байт
		}
	}
	return Error(fmt.Sprintf("unexpected character ‘%s’", shown)).
		WithExcerpt(d.Loc, "found here")
}

// displayRune prints c verbatim when printable and escaped otherwise.
func displayRune(c rune) string {
	if unicode.IsPrint(c) {
		return string(c)
	}
	q := strconv.QuoteRune(c)
	return q[1 : len(q)-1]
}

// UnexpectedHeading is a heading marker that does not start its line.
type UnexpectedHeading struct {
	Loc source.Span
}

func (UnexpectedHeading) Kind() Kind { return KindUnexpectedHeading }
func (UnexpectedHeading) sealed()    {}

func (d UnexpectedHeading) Produce() Log {
	return Error("unexpected heading").
		WithID(IDUnexpectedHeading).
		WithExplanation().
		WithExcerpt(d.Loc, "found here").
		WithHelp("headings should only appear at the start of lines")
}

// MaxHeadingLevel is the deepest heading level a document may use.
const MaxHeadingLevel = 6

// HeadingTooDeep is a heading marker run longer than MaxHeadingLevel.
type HeadingTooDeep struct {
	Loc   source.Span
	Level int
}

func (HeadingTooDeep) Kind() Kind { return KindHeadingTooDeep }
func (HeadingTooDeep) sealed()    {}

func (d HeadingTooDeep) Produce() Log {
	return Error("heading too deep").
		WithExcerpt(d.Loc, fmt.Sprintf("found a level-%d heading here", d.Level)).
		WithHelp(fmt.Sprintf("headings should be at most level %d", MaxHeadingLevel))
}

// ExtraCommentClose is a block comment closer with no open comment.
type ExtraCommentClose struct {
	Loc source.Span
}

func (ExtraCommentClose) Kind() Kind { return KindExtraCommentClose }
func (ExtraCommentClose) sealed()    {}

func (d ExtraCommentClose) Produce() Log {
	return Error("no comment to close").
		WithExcerpt(d.Loc, "found here")
}

// UnclosedComments lists block comment openers still open at end of input,
// outermost first.
type UnclosedComments struct {
	Unclosed []source.Span
}

func (UnclosedComments) Kind() Kind { return KindUnclosedComments }
func (UnclosedComments) sealed()    {}

func (d UnclosedComments) Produce() Log {
	l := Error(Pluralize(len(d.Unclosed), "unclosed comment", "unclosed comments"))
	for _, loc := range d.Unclosed {
		l = l.WithExcerpt(loc, "found here")
	}
	return l
}

// Pluralize picks singular when count is exactly one, plural otherwise.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// UnexpectedEOF is the end of input where a token was still required.
type UnexpectedEOF struct {
	Loc      source.Span // last consumed location
	Expected []string
}

func (UnexpectedEOF) Kind() Kind { return KindUnexpectedEOF }
func (UnexpectedEOF) sealed()    {}

func (d UnexpectedEOF) Produce() Log {
	return Error("unexpected eof").
		WithID(IDUnexpectedEOF).
		WithExplanation().
		WithExcerpt(d.Loc, "file ended early here").
		ExpectOneOf(d.Expected)
}

// NewlineInInlineArg is a line break inside a braced argument.
type NewlineInInlineArg struct {
	ArgStart source.Span
	Newline  source.Span
}

func (NewlineInInlineArg) Kind() Kind { return KindNewlineInInlineArg }
func (NewlineInInlineArg) sealed()    {}

func (d NewlineInInlineArg) Produce() Log {
	return Error("newline in inline arguments").
		WithID(IDNewlineInInlineArg).
		WithExplanation().
		WithExcerpt(d.Newline, "newline found here").
		WithExcerptSeverity(d.ArgStart, "in inline argument started here", SevInfo).
		WithHelp("consider using a remainder (colon) argument")
}

// UnexpectedToken is a token that cannot appear where it was found.
type UnexpectedToken struct {
	Loc      source.Span
	Found    string
	Expected []string
}

func (UnexpectedToken) Kind() Kind { return KindUnexpectedToken }
func (UnexpectedToken) sealed()    {}

func (d UnexpectedToken) Produce() Log {
	return Error("unexpected token").
		WithID(IDUnexpectedToken).
		WithExplanation().
		WithExcerpt(d.Loc, fmt.Sprintf("found %s here", d.Found)).
		ExpectOneOf(d.Expected)
}

// NoSuchErrorCode is a lookup of an id missing from the explain registry.
// It doubles as the error returned by Explain.
type NoSuchErrorCode struct {
	ID string
}

func (*NoSuchErrorCode) Kind() Kind { return KindNoSuchErrorCode }
func (*NoSuchErrorCode) sealed()    {}

func (d *NoSuchErrorCode) Produce() Log {
	return Error(fmt.Sprintf("no such error code %q", d.ID)).
		WithID(IDNoSuchErrorCode).
		WithExplanation().
		WithHelp("perhaps there is a typo here?")
}

func (d *NoSuchErrorCode) Error() string {
	return fmt.Sprintf("no such error code %q", d.ID)
}
