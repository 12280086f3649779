package lexer

import (
	"emblem/internal/diag"
	"emblem/internal/source"
	"emblem/internal/token"
)

// Lexer turns one source buffer into a forward-only token stream.
// Every byte of the buffer belongs to exactly one token.
type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	look      *token.Token // 1 элементный буфер для токена
	depth     int          // глубина вложенности блочных комментариев
	lineStart bool         // на строке пока только отступ
	inAttrs   bool         // внутри списка атрибутов команды
	last      token.Kind
}

// New creates a lexer over file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
		last:      token.Invalid,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	var tok token.Token
	switch {
	case lx.depth > 0:
		tok = lx.scanInComment()
	case lx.inAttrs:
		tok = lx.scanInAttrs()
	default:
		tok = lx.scanNormal()
	}

	switch tok.Kind {
	case token.Newline:
		lx.lineStart = true
	case token.Space:
		// отступ не сбрасывает начало строки
	default:
		lx.lineStart = false
	}
	lx.last = tok.Kind
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Depth returns the number of block comments open at the cursor.
func (lx *Lexer) Depth() int {
	return lx.depth
}

func (lx *Lexer) scanNormal() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case ch == '\n':
		lx.cursor.Bump()
		return lx.make(token.Newline, start)

	case isSpaceByte(ch):
		return lx.scanSpace()

	case lx.cursor.At('/', '/'):
		return lx.scanLineComment()

	case lx.cursor.At('/', '*'):
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.depth = 1
		return lx.make(token.CommentOpen, start)

	case lx.cursor.At('*', '/'):
		// закрывающий без открытого - решает парсер
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.make(token.CommentClose, start)

	case ch == '{':
		lx.cursor.Bump()
		return lx.make(token.LBrace, start)

	case ch == '}':
		lx.cursor.Bump()
		return lx.make(token.RBrace, start)

	case ch == '[' && lx.last == token.Command:
		lx.cursor.Bump()
		lx.inAttrs = true
		return lx.make(token.LBracket, start)

	case ch == ':' && (lx.last == token.Command || lx.last == token.RBrace || lx.last == token.RBracket):
		lx.cursor.Bump()
		for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
			lx.cursor.Bump()
		}
		return lx.make(token.Colon, start)

	case ch == '#':
		if tok, ok := lx.scanHeading(); ok {
			return tok
		}
		return lx.scanWord()

	case ch == '.':
		if tok, ok := lx.scanCommand(); ok {
			return tok
		}
		return lx.scanWord()

	case ch == '!':
		if tok, ok := lx.scanVerbatim(); ok {
			return tok
		}
		return lx.scanWord()

	case isEmphByte(ch):
		return lx.scanEmph()
	}

	if r, size := lx.peekRune(); isBadRune(r, size) {
		return lx.scanBadRune(r, size)
	}
	return lx.scanWord()
}

// scanBadRune reports and skips exactly one unacceptable character.
func (lx *Lexer) scanBadRune(r rune, size int) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Off += source.Offset(size)
	tok := lx.make(token.Invalid, start)
	lx.report(diag.UnexpectedChar{Loc: tok.Span, Found: r})
	return tok
}

func (lx *Lexer) scanSpace() token.Token {
	start := lx.cursor.Mark()
	for isSpaceByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.make(token.Space, start)
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	tok := token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
	if lx.lineStart {
		tok.Flags |= token.FlagLineStart
	}
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.NewSpan(lx.file, lx.cursor.Off, lx.cursor.Off)
}

// Tokenize lexes the whole file and returns every token, EOF included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
