package lexer

import (
	"emblem/internal/token"
)

// scanLineComment consumes '//' up to, not including, the newline.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.make(token.LineComment, start)
}

// scanInComment lexes inside a block comment, tracking nesting depth.
// Comment text is opaque: no character inside it is reported.
func (lx *Lexer) scanInComment() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case ch == '\n':
		lx.cursor.Bump()
		return lx.make(token.Newline, start)

	case isSpaceByte(ch):
		return lx.scanSpace()

	case lx.cursor.At('/', '*'):
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.depth++
		return lx.make(token.CommentOpen, start)

	case lx.cursor.At('*', '/'):
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.depth--
		return lx.make(token.CommentClose, start)
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpaceByte(b) || b == '\n' || lx.atBlockDelimiter() {
			break
		}
		lx.cursor.Bump()
	}
	return lx.make(token.CommentText, start)
}
