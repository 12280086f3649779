package lexer

import (
	"unicode"
	"unicode/utf8"

	"emblem/internal/source"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущий символ как руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Off += source.Offset(sz)
}

// ===== Классификаторы =====

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

// isBadRune reports characters no token class accepts: control characters
// other than tab, CR and LF, and bytes that are not valid UTF-8.
func isBadRune(r rune, size int) bool {
	if r == utf8.RuneError && size <= 1 {
		return true
	}
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

// isNameByte reports whether b may continue a command name.
func isNameByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '{', '}', ':', '.', '[', ']', '+':
		return false
	}
	return b >= 0x20 && b != 0x7f
}

// atCommentDelimiter reports whether "//", "/*" or "*/" starts at the cursor.
func (lx *Lexer) atCommentDelimiter() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	return (b0 == '/' && (b1 == '/' || b1 == '*')) || (b0 == '*' && b1 == '/')
}

// atBlockDelimiter reports whether "/*" or "*/" starts at the cursor.
func (lx *Lexer) atBlockDelimiter() bool {
	return lx.cursor.At('/', '*') || lx.cursor.At('*', '/')
}

// isReferenceByte reports whether b may follow '#' in a reference such as
// "#tag". Such a '#' is text, not a heading marker.
func isReferenceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '#', '+', '.', ',', '?', '!', '\'', '"', '(', ')', '{', '}', '[', ']':
		return false
	}
	return true
}

// isEmphByte reports the characters emphasis delimiters are built from.
func isEmphByte(b byte) bool {
	return b == '_' || b == '*' || b == '=' || b == '`'
}

// isAttrEscape reports characters a backslash escapes inside attributes.
func isAttrEscape(b byte) bool {
	return b == ',' || b == '=' || b == '[' || b == ']'
}

// peekByteAt читает байт на n позиций впереди курсора
func (lx *Lexer) peekByteAt(n uint32) (byte, bool) {
	off := lx.cursor.Off + n
	if off >= lx.cursor.Limit {
		return 0, false
	}
	return lx.file.Content[off], true
}
