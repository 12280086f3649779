// Package testkit holds structural checks shared by parser, driver and fuzz
// tests.
package testkit

import (
	"fmt"

	"emblem/internal/ast"
	"emblem/internal/source"
	"emblem/internal/token"
)

// CheckSpanInvariants runs the span invariants of a parsed document:
// 1) leaves are non-empty, belong to the file and tile it without gaps
// 2) every node lies within its parent, siblings in order without overlap
// 3) the document span covers the whole file
func CheckSpanInvariants(doc *ast.Document) error {
	if doc == nil || doc.File == nil {
		return fmt.Errorf("nil document or file")
	}
	sf := doc.File

	// 1) листья покрывают файл без дыр
	var next uint32
	for i, leaf := range ast.Leaves(doc) {
		if leaf.File != sf {
			return fmt.Errorf("leaf %d belongs to another file", i)
		}
		if leaf.Empty() {
			return fmt.Errorf("leaf %d is empty at %d", i, leaf.Start)
		}
		if leaf.Start != next {
			return fmt.Errorf("leaf %d starts at %d, want %d", i, leaf.Start, next)
		}
		next = leaf.End
	}
	if next != sf.Len() {
		return fmt.Errorf("leaves end at %d, file length is %d", next, sf.Len())
	}

	// 2) вложенность и порядок
	if err := checkChildren(doc.Span(), doc.Content); err != nil {
		return err
	}

	// 3) span документа
	if len(doc.Content) > 0 {
		if sp := doc.Span(); sp.Start != 0 || sp.End != sf.Len() {
			return fmt.Errorf("document span %d-%d does not cover file of length %d", sp.Start, sp.End, sf.Len())
		}
	}
	return nil
}

func checkChildren(parent source.Span, children []ast.Content) error {
	prevEnd := parent.Start
	for _, child := range children {
		sp := child.Span()
		if sp.Start < prevEnd {
			return fmt.Errorf("%T at %d overlaps its previous sibling ending at %d", child, sp.Start, prevEnd)
		}
		if sp.End > parent.End {
			return fmt.Errorf("%T span %d-%d escapes parent %d-%d", child, sp.Start, sp.End, parent.Start, parent.End)
		}
		prevEnd = sp.End
		if err := checkChildren(sp, childrenOf(child)); err != nil {
			return err
		}
	}
	return nil
}

func childrenOf(c ast.Content) []ast.Content {
	switch n := c.(type) {
	case *ast.Heading:
		return n.Content
	case *ast.Call:
		return n.Args
	case *ast.Arg:
		return n.Content
	case *ast.Emph:
		return n.Content
	}
	return nil
}

// CheckTokenInvariants verifies a complete token stream of file: tokens are
// contiguous, non-empty and end with a single empty EOF at the end of input.
func CheckTokenInvariants(file *source.File, tokens []token.Token) error {
	if len(tokens) == 0 {
		return fmt.Errorf("no tokens")
	}
	var next uint32
	for i, tok := range tokens {
		if tok.Span.Start != next {
			return fmt.Errorf("token %d (%s) starts at %d, want %d", i, tok.Kind, tok.Span.Start, next)
		}
		last := i == len(tokens)-1
		if tok.Kind == token.EOF {
			if !last {
				return fmt.Errorf("EOF at token %d of %d", i, len(tokens))
			}
			if !tok.Span.Empty() || tok.Span.Start != file.Len() {
				return fmt.Errorf("EOF span %d-%d, want empty at %d", tok.Span.Start, tok.Span.End, file.Len())
			}
			return nil
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d (%s) is empty", i, tok.Kind)
		}
		next = tok.Span.End
	}
	return fmt.Errorf("stream does not end with EOF")
}
