package lexer

import (
	"emblem/internal/diag"
	"emblem/internal/source"
	"emblem/internal/token"
)

// scanWord consumes ordinary text up to whitespace, a brace, a comment
// delimiter, an emphasis delimiter or an unacceptable character.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpaceByte(b) || b == '\n' || b == '{' || b == '}' || isEmphByte(b) || lx.atCommentDelimiter() {
			break
		}
		r, size := lx.peekRune()
		if isBadRune(r, size) {
			break
		}
		lx.bumpRune()
	}
	if lx.cursor.Off == uint32(start) {
		lx.bumpRune()
	}
	return lx.make(token.Word, start)
}

// scanHeading consumes a run of '#' and any trailing '+'. A single '#'
// directly followed by a name is a reference and is left for scanWord.
func (lx *Lexer) scanHeading() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	if !lx.cursor.EOF() && isReferenceByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	for lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
	}
	for lx.cursor.Peek() == '+' {
		lx.cursor.Bump()
	}
	return lx.make(token.Heading, start), true
}

// scanCommand consumes '.', an optionally qualified call name and its
// trailing pluses. Qualifier problems are reported but the command is kept.
func (lx *Lexer) scanCommand() (token.Token, bool) {
	start := lx.cursor.Mark()
	var dots []uint32
	for {
		dots = append(dots, lx.cursor.Off)
		lx.cursor.Bump() // '.'
		lx.scanName()
		// точка продолжает имя, только если за ней снова имя
		b0, b1, ok := lx.cursor.Peek2()
		if !ok || b0 != '.' || !isNameByte(b1) {
			break
		}
	}
	if lx.cursor.Off-uint32(start) < 2 {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	for lx.cursor.Peek() == '+' {
		lx.cursor.Bump()
	}
	tok := lx.make(token.Command, start)

	switch {
	case len(dots) > 2:
		extra := make([]source.Span, 0, len(dots)-2)
		for _, off := range dots[2:] {
			extra = append(extra, source.NewSpan(lx.file, off, off+1))
		}
		lx.report(diag.TooManyQualifiers{Loc: tok.Span, Dots: extra})
	case len(dots) == 2 && dots[1] == dots[0]+1:
		lx.report(diag.EmptyQualifier{Loc: tok.Span, Qualifier: source.NewSpan(lx.file, dots[0], dots[1]+1)})
	}
	return tok, true
}

// scanName consumes name characters up to a delimiter.
func (lx *Lexer) scanName() {
	for !lx.cursor.EOF() && !lx.atCommentDelimiter() {
		r, size := lx.peekRune()
		if isBadRune(r, size) || (size == 1 && !isNameByte(byte(r))) {
			return
		}
		lx.bumpRune()
	}
}

// scanVerbatim consumes '!' text '!' on a single line. A lone '!' that
// starts a word without a partner is reported and left for scanWord.
func (lx *Lexer) scanVerbatim() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '!'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '!':
			if lx.cursor.Off-uint32(start) < 2 {
				lx.cursor.Reset(start)
				return token.Token{}, false
			}
			lx.cursor.Bump()
			return lx.make(token.Verbatim, start), true
		case '\n', '\r':
			lx.unclosedVerbatim(start)
			return token.Token{}, false
		}
		lx.cursor.Bump()
	}
	lx.unclosedVerbatim(start)
	return token.Token{}, false
}

func (lx *Lexer) unclosedVerbatim(start Mark) {
	lx.cursor.Reset(start)
	if b, ok := lx.peekByteAt(1); ok && !isSpaceByte(b) && b != '\n' {
		lx.report(diag.UnclosedVerbatim{Loc: source.NewSpan(lx.file, uint32(start), uint32(start)+1)})
	}
}

// scanEmph consumes one emphasis delimiter. Whether it opens or closes is
// decided by the token before it: text on the left means a closer.
func (lx *Lexer) scanEmph() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	lx.cursor.Bump()
	if ch != '`' && lx.cursor.Peek() == ch && !lx.cursor.At('*', '/') {
		lx.cursor.Bump()
	}
	switch lx.last {
	case token.Word, token.Verbatim, token.EmphClose, token.RBrace, token.RBracket:
		return lx.make(token.EmphClose, start)
	}
	return lx.make(token.EmphOpen, start)
}

// scanInAttrs lexes the bracketed attribute list that may follow a command.
func (lx *Lexer) scanInAttrs() token.Token {
	start := lx.cursor.Mark()
	switch ch := lx.cursor.Peek(); ch {
	case '\n':
		lx.cursor.Bump()
		lx.inAttrs = false
		return lx.make(token.Newline, start)
	case ']':
		lx.cursor.Bump()
		lx.inAttrs = false
		return lx.make(token.RBracket, start)
	case ',':
		lx.cursor.Bump()
		return lx.make(token.Comma, start)
	case '[':
		return lx.scanBadRune('[', 1)
	}
	if r, size := lx.peekRune(); isBadRune(r, size) {
		return lx.scanBadRune(r, size)
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			if next, ok := lx.peekByteAt(1); ok && isAttrEscape(next) {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
		}
		if b == ',' || b == '[' || b == ']' || b == '\n' {
			break
		}
		r, size := lx.peekRune()
		if isBadRune(r, size) {
			break
		}
		lx.bumpRune()
	}
	return lx.make(token.Attr, start)
}
