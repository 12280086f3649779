package lexer

import (
	"testing"

	"emblem/internal/source"
)

func newCursor(content string) Cursor {
	fs := source.NewFileSet()
	return NewCursor(fs.AddVirtual("cursor.em", []byte(content)))
}

// TestCursorWalksMarkup проходит ".a{b}" побайтно
func TestCursorWalksMarkup(t *testing.T) {
	c := newCursor(".a{b}")
	var got []byte
	for !c.EOF() {
		got = append(got, c.Bump())
	}
	if string(got) != ".a{b}" {
		t.Fatalf("bytes = %q", got)
	}
	if c.Peek() != 0 || c.Bump() != 0 {
		t.Error("cursor yields bytes past the end")
	}
	if c.Off != 5 {
		t.Errorf("Off = %d after the end, want 5", c.Off)
	}
}

func TestCursorAtDelimiters(t *testing.T) {
	tests := []struct {
		input string
		a, b  byte
		want  bool
	}{
		{"/* x", '/', '*', true},
		{"*/", '*', '/', true},
		{"// x", '/', '*', false},
		{"*", '*', '/', false},
		{"", '/', '/', false},
	}
	for _, tt := range tests {
		c := newCursor(tt.input)
		if got := c.At(tt.a, tt.b); got != tt.want {
			t.Errorf("%q: At(%q, %q) = %v, want %v", tt.input, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCursorPeek2AtEnd(t *testing.T) {
	c := newCursor("#+")
	if b0, b1, ok := c.Peek2(); !ok || b0 != '#' || b1 != '+' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Error("Peek2() succeeds with one byte left")
	}
}

// TestCursorMarkReset повторяет откат, которым лексер отказывается от команды
func TestCursorMarkReset(t *testing.T) {
	c := newCursor(".toc rest")
	m := c.Mark()
	for !c.EOF() && c.Peek() != ' ' {
		c.Bump()
	}
	span := c.SpanFrom(m)
	if span.Slice() != ".toc" || span.Start != 0 || span.End != 4 {
		t.Errorf("SpanFrom() = %q [%d,%d)", span.Slice(), span.Start, span.End)
	}
	c.Reset(m)
	if c.Off != 0 || c.Peek() != '.' {
		t.Errorf("Reset() left Off = %d", c.Off)
	}
}

func TestCursorLimit(t *testing.T) {
	c := newCursor("word}tail")
	c.Limit = 4
	n := 0
	for !c.EOF() {
		c.Bump()
		n++
	}
	if n != 4 {
		t.Fatalf("read %d bytes under Limit 4", n)
	}
	if _, _, ok := c.Peek2(); ok {
		t.Error("Peek2() reads past Limit")
	}
}
