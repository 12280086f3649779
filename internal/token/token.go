package token

import (
	"strings"

	"emblem/internal/source"
)

// Flags carries positional facts about a token.
type Flags uint8

const (
	// FlagLineStart marks a token preceded only by indentation on its line.
	FlagLineStart Flags = 1 << iota
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Flags Flags
}

// Text returns the source text of the token.
func (t Token) Text() string { return t.Span.Slice() }

// AtLineStart reports whether only indentation precedes the token.
func (t Token) AtLineStart() bool { return t.Flags&FlagLineStart != 0 }

// IsWhitespace reports whether the token is a space run or a newline.
func (t Token) IsWhitespace() bool {
	return t.Kind == Space || t.Kind == Newline
}

// IsCallDelimiter reports whether the token belongs to call syntax.
func (t Token) IsCallDelimiter() bool {
	switch t.Kind {
	case Command, LBrace, RBrace, Colon, LBracket, RBracket, Comma, Attr:
		return true
	default:
		return false
	}
}

// IsComment reports whether the token opens, closes, or belongs to a comment.
func (t Token) IsComment() bool {
	switch t.Kind {
	case LineComment, CommentOpen, CommentClose, CommentText:
		return true
	default:
		return false
	}
}

// HeadingLevel returns the number of '#' markers of a Heading token.
func (t Token) HeadingLevel() int {
	if t.Kind != Heading {
		return 0
	}
	return strings.Count(t.Text(), "#")
}

// Pluses returns the number of trailing '+' of a Heading or Command token.
func (t Token) Pluses() int {
	if t.Kind != Heading && t.Kind != Command {
		return 0
	}
	text := t.Text()
	return len(text) - len(strings.TrimRight(text, "+"))
}
